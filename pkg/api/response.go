package api

import (
	"encoding/json"
	"time"
)

// Pagination describes the window of a search response. Total counts every
// row matching the filters, ignoring the window itself.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

type SearchDatasetsResponse struct {
	Datasets   []*DatasetSummary `json:"datasets"`
	Pagination Pagination        `json:"pagination"`
}

// MetricsSummary is the zero-filled metrics shape embedded in search
// results. Completeness, accuracy and timeliness are always reported as 0
// in this view; clients needing them fetch the detail endpoint.
type MetricsSummary struct {
	QualityScore  int     `json:"qualityScore"`
	AverageRating float64 `json:"averageRating"`
	UsageCount    int     `json:"usageCount"`
	Completeness  int     `json:"completeness"`
	Accuracy      int     `json:"accuracy"`
	Timeliness    int     `json:"timeliness"`
}

type DataOwner struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type DatasetSummary struct {
	ID                   string         `json:"id"`
	Name                 string         `json:"name"`
	Description          string         `json:"description"`
	BusinessLine         string         `json:"businessLine"`
	DataDomain           string         `json:"dataDomain"`
	Maturity             string         `json:"maturity"`
	UpdatedAt            *time.Time     `json:"updatedAt"`
	SourceSysID          string         `json:"sourceSysId"`
	SourceSysName        string         `json:"sourceSysName"`
	Metrics              MetricsSummary `json:"metrics"`
	DataOwner            DataOwner      `json:"dataOwner"`
	DataClassification   string         `json:"dataClassification"`
	Tags                 []string       `json:"tags"`
	NumberOfDataElements int            `json:"numberOfDataElements"`
}

// Metrics is the detail-view metrics shape. Unlike MetricsSummary it is
// attached as a pointer: a dataset without a metrics row serializes as
// "metrics": null rather than a zero-filled object.
type Metrics struct {
	QualityScore  int     `json:"qualityScore"`
	Completeness  int     `json:"completeness"`
	Accuracy      int     `json:"accuracy"`
	Timeliness    int     `json:"timeliness"`
	UsageCount    int     `json:"usageCount"`
	AverageRating float64 `json:"averageRating"`
}

type Rating struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	UserName  string     `json:"userName"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt *time.Time `json:"createdAt"`
}

type Story struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Author       string `json:"author"`
	BusinessLine string `json:"businessLine"`
	Summary      string `json:"summary"`
	Content      string `json:"content"`
}

type RelatedDataset struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Description      string  `json:"description"`
	RelationshipType string  `json:"relationshipType"`
	SimilarityScore  float64 `json:"similarityScore"`
}

type Preview struct {
	Columns    json.RawMessage `json:"columns"`
	SampleData json.RawMessage `json:"sampleData"`
	RowCount   int64           `json:"rowCount"`
}

type DatasetDetail struct {
	ID                 string            `json:"id"`
	TechnicalID        string            `json:"technicalId"`
	Name               string            `json:"name"`
	Description        string            `json:"description"`
	BusinessLine       string            `json:"businessLine"`
	BusinessEntity     string            `json:"businessEntity"`
	Maturity           string            `json:"maturity"`
	DataLifecycle      string            `json:"dataLifecycle"`
	Location           string            `json:"location"`
	DataDomain         string            `json:"dataDomain"`
	DataSubDomain      string            `json:"dataSubDomain"`
	DataExpert         string            `json:"dataExpert"`
	DataValidator      string            `json:"dataValidator"`
	DataClassification string            `json:"dataClassification"`
	CreatedAt          *time.Time        `json:"createdAt"`
	UpdatedAt          *time.Time        `json:"updatedAt"`
	SourceSysID        string            `json:"sourceSysId"`
	SourceSysName      string            `json:"sourceSysName"`
	DataOwner          *DataOwner        `json:"dataOwner"`
	DataSteward        *DataOwner        `json:"dataSteward"`
	Tags               []string          `json:"tags"`
	Ratings            []*Rating         `json:"ratings"`
	Stories            []*Story          `json:"stories"`
	RelatedDatasets    []*RelatedDataset `json:"relatedDatasets"`
	Metrics            *Metrics          `json:"metrics"`
	Preview            *Preview          `json:"preview"`
}

// DatasetExistence is the lightweight probe response used by ingestion
// tooling to verify an identifier before pushing child records.
type DatasetExistence struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

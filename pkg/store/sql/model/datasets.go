package model

import (
	"time"

	"github.com/tracebase/datamarket/pkg/api"
)

// Dataset mapped from table <datasets>. Rows are written by upstream
// ingestion; the catalog server only ever reads them.
type Dataset struct {
	ID                 string     `db:"id"                  gorm:"column:id;primaryKey"`
	TechnicalID        string     `db:"technical_id"        gorm:"column:technical_id"`
	Name               string     `db:"name"                gorm:"column:name;not null"`
	Description        string     `db:"description"         gorm:"column:description"`
	BusinessLine       string     `db:"business_line"       gorm:"column:business_line"`
	BusinessEntity     string     `db:"business_entity"     gorm:"column:business_entity"`
	Maturity           string     `db:"maturity"            gorm:"column:maturity"`
	DataLifecycle      string     `db:"data_lifecycle"      gorm:"column:data_lifecycle"`
	Location           string     `db:"location"            gorm:"column:location"`
	DataDomain         string     `db:"data_domain"         gorm:"column:data_domain"`
	DataSubDomain      string     `db:"data_subdomain"      gorm:"column:data_subdomain"`
	DataExpert         string     `db:"data_expert"         gorm:"column:data_expert"`
	DataValidator      string     `db:"data_validator"      gorm:"column:data_validator"`
	DataClassification string     `db:"data_classification" gorm:"column:data_classification"`
	CreatedAt          *time.Time `db:"created_at"          gorm:"column:created_at"`
	UpdatedAt          *time.Time `db:"updated_at"          gorm:"column:updated_at"`
	SourceSysID        string     `db:"source_sys_id"       gorm:"column:source_sys_id"`
	SourceSysName      string     `db:"source_sys_name"     gorm:"column:source_sys_name"`
}

func (Dataset) TableName() string {
	return "datasets"
}

// ToDetail maps the dataset columns onto a detail response. Child
// collections start empty so that a dataset without any serializes them as
// [] rather than null; the store fills them afterwards.
func (d Dataset) ToDetail() *api.DatasetDetail {
	return &api.DatasetDetail{
		ID:                 d.ID,
		TechnicalID:        d.TechnicalID,
		Name:               d.Name,
		Description:        d.Description,
		BusinessLine:       d.BusinessLine,
		BusinessEntity:     d.BusinessEntity,
		Maturity:           d.Maturity,
		DataLifecycle:      d.DataLifecycle,
		Location:           d.Location,
		DataDomain:         d.DataDomain,
		DataSubDomain:      d.DataSubDomain,
		DataExpert:         d.DataExpert,
		DataValidator:      d.DataValidator,
		DataClassification: d.DataClassification,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
		SourceSysID:        d.SourceSysID,
		SourceSysName:      d.SourceSysName,
		Tags:               []string{},
		Ratings:            []*api.Rating{},
		Stories:            []*api.Story{},
		RelatedDatasets:    []*api.RelatedDataset{},
	}
}

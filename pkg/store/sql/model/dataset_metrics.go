package model

import "github.com/tracebase/datamarket/pkg/api"

// DatasetMetrics mapped from table <dataset_metrics>. At most one row per
// dataset; absence means the dataset has not been measured yet.
type DatasetMetrics struct {
	DatasetID     string  `db:"dataset_id"     gorm:"column:dataset_id;primaryKey"`
	QualityScore  int     `db:"quality_score"  gorm:"column:quality_score"`
	Completeness  int     `db:"completeness"   gorm:"column:completeness"`
	Accuracy      int     `db:"accuracy"       gorm:"column:accuracy"`
	Timeliness    int     `db:"timeliness"     gorm:"column:timeliness"`
	UsageCount    int     `db:"usage_count"    gorm:"column:usage_count"`
	AverageRating float64 `db:"average_rating" gorm:"column:average_rating"`
}

func (DatasetMetrics) TableName() string {
	return "dataset_metrics"
}

func (m DatasetMetrics) ToMetrics() *api.Metrics {
	return &api.Metrics{
		QualityScore:  m.QualityScore,
		Completeness:  m.Completeness,
		Accuracy:      m.Accuracy,
		Timeliness:    m.Timeliness,
		UsageCount:    m.UsageCount,
		AverageRating: m.AverageRating,
	}
}

package model

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/tracebase/datamarket/pkg/api"
)

// DatasetPreview mapped from table <dataset_preview>: a point-in-time
// snapshot of column descriptors and sample rows, stored as JSON.
type DatasetPreview struct {
	DatasetID  string         `db:"dataset_id"  gorm:"column:dataset_id;primaryKey"`
	Columns    datatypes.JSON `db:"columns"     gorm:"column:columns"`
	SampleData datatypes.JSON `db:"sample_data" gorm:"column:sample_data"`
	RowCount   int64          `db:"row_count"   gorm:"column:row_count"`
}

func (DatasetPreview) TableName() string {
	return "dataset_preview"
}

func (p DatasetPreview) ToPreview() *api.Preview {
	return &api.Preview{
		Columns:    json.RawMessage(p.Columns),
		SampleData: json.RawMessage(p.SampleData),
		RowCount:   p.RowCount,
	}
}

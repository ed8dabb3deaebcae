package model

// Tag mapped from table <tags>.
type Tag struct {
	ID   string `db:"id"   gorm:"column:id;primaryKey"`
	Name string `db:"name" gorm:"column:name;not null"`
}

func (Tag) TableName() string {
	return "tags"
}

// DatasetTag mapped from join table <dataset_tags>.
type DatasetTag struct {
	DatasetID string `db:"dataset_id" gorm:"column:dataset_id;primaryKey"`
	TagID     string `db:"tag_id"     gorm:"column:tag_id;primaryKey"`
}

func (DatasetTag) TableName() string {
	return "dataset_tags"
}

package model

// RelatedDataset mapped from table <related_datasets>: a directed edge from
// one dataset to another, used for display only.
type RelatedDataset struct {
	DatasetID        string  `db:"dataset_id"         gorm:"column:dataset_id;primaryKey"`
	RelatedDatasetID string  `db:"related_dataset_id" gorm:"column:related_dataset_id;primaryKey"`
	RelationshipType string  `db:"relationship_type"  gorm:"column:relationship_type"`
	SimilarityScore  float64 `db:"similarity_score"   gorm:"column:similarity_score"`
}

func (RelatedDataset) TableName() string {
	return "related_datasets"
}

package model

import "github.com/tracebase/datamarket/pkg/api"

// UseCase mapped from table <use_cases>. Surfaced to clients as "stories".
type UseCase struct {
	ID           string `db:"id"            gorm:"column:id;primaryKey"`
	Title        string `db:"title"         gorm:"column:title;not null"`
	Author       string `db:"author"        gorm:"column:author"`
	BusinessLine string `db:"business_line" gorm:"column:business_line"`
	Summary      string `db:"summary"       gorm:"column:summary"`
	Content      string `db:"content"       gorm:"column:content"`
}

func (UseCase) TableName() string {
	return "use_cases"
}

func (u UseCase) ToStory() *api.Story {
	return &api.Story{
		ID:           u.ID,
		Title:        u.Title,
		Author:       u.Author,
		BusinessLine: u.BusinessLine,
		Summary:      u.Summary,
		Content:      u.Content,
	}
}

// DatasetUseCase mapped from join table <dataset_use_cases>.
type DatasetUseCase struct {
	DatasetID string `db:"dataset_id"  gorm:"column:dataset_id;primaryKey"`
	UseCaseID string `db:"use_case_id" gorm:"column:use_case_id;primaryKey"`
}

func (DatasetUseCase) TableName() string {
	return "dataset_use_cases"
}

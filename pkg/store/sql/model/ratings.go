package model

import "time"

// Rating mapped from table <ratings>. Listings join the user display name
// from <users>; the model itself only carries the foreign key.
type Rating struct {
	ID        string     `db:"id"         gorm:"column:id;primaryKey"`
	DatasetID string     `db:"dataset_id" gorm:"column:dataset_id;not null"`
	UserID    string     `db:"user_id"    gorm:"column:user_id;not null"`
	Rating    int        `db:"rating"     gorm:"column:rating"`
	Comment   string     `db:"comment"    gorm:"column:comment"`
	CreatedAt *time.Time `db:"created_at" gorm:"column:created_at"`
}

func (Rating) TableName() string {
	return "ratings"
}

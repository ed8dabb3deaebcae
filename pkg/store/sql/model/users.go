package model

// User mapped from table <users>. Identity is managed upstream; only the
// display name is joined into rating listings.
type User struct {
	ID   string `db:"id"   gorm:"column:id;primaryKey"`
	Name string `db:"name" gorm:"column:name"`
}

func (User) TableName() string {
	return "users"
}

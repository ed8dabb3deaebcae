package model

import "github.com/tracebase/datamarket/pkg/api"

// OwnerRole tags a DataOwner↔Dataset association. Only the owner and
// steward roles are surfaced; other role values are ignored by the reader.
type OwnerRole string

const (
	OwnerRoleOwner   OwnerRole = "owner"
	OwnerRoleSteward OwnerRole = "steward"
)

// DataOwner mapped from table <data_owners>.
type DataOwner struct {
	ID         string `db:"id"         gorm:"column:id;primaryKey"`
	Name       string `db:"name"       gorm:"column:name;not null"`
	Email      string `db:"email"      gorm:"column:email"`
	Department string `db:"department" gorm:"column:department"`
}

func (DataOwner) TableName() string {
	return "data_owners"
}

func (o DataOwner) ToOwner() *api.DataOwner {
	return &api.DataOwner{
		ID:         o.ID,
		Name:       o.Name,
		Email:      o.Email,
		Department: o.Department,
	}
}

// DatasetOwner mapped from join table <dataset_owners>.
type DatasetOwner struct {
	DatasetID string    `db:"dataset_id" gorm:"column:dataset_id;primaryKey"`
	OwnerID   string    `db:"owner_id"   gorm:"column:owner_id;primaryKey"`
	Role      OwnerRole `db:"role"       gorm:"column:role;primaryKey"`
}

func (DatasetOwner) TableName() string {
	return "dataset_owners"
}

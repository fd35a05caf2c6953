package models

import (
	"time"
)

// Group represents an interest group that posts can be tagged with.
// The slug is immutable once assigned; title and description are editable
// administratively. Deleting a group never deletes its posts.
type Group struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Title       string    `gorm:"type:varchar(200);not null;column:title"`
	Slug        string    `gorm:"type:varchar(64);not null;uniqueIndex:plume_groups_ux1;column:slug"`
	Description string    `gorm:"type:text;not null;default:'';column:description"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Group
func (Group) TableName() string {
	return "plume_groups"
}

package models

import (
	"time"
)

// Author represents a posting identity. Credentials and sessions are owned
// by the external auth collaborator; this service only references authors
// by their unique handle.
type Author struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;column:id"`
	Handle      string    `gorm:"type:varchar(64);not null;uniqueIndex:plume_authors_ux1;column:handle"`
	DisplayName string    `gorm:"type:varchar(128);not null;default:'';column:display_name"`
	CreatedAt   time.Time `gorm:"not null;column:created_at"`
}

// TableName specifies the table name for Author
func (Author) TableName() string {
	return "plume_authors"
}

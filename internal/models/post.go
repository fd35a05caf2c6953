package models

import (
	"database/sql"
	"time"
)

// Post represents a published text post. CreatedAt is assigned once at
// creation and never changes; all listings order by created_at descending.
// GroupID is nullable and is cleared, not cascaded, when its group is
// deleted.
type Post struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	Text      string        `gorm:"type:text;not null;column:text"`
	AuthorID  int64         `gorm:"not null;index:plume_posts_ix_author;column:author_id"`
	GroupID   sql.NullInt64 `gorm:"index:plume_posts_ix_group;column:group_id"`
	ImageRef  string        `gorm:"type:varchar(1024);not null;default:'';column:image_ref"`
	CreatedAt time.Time     `gorm:"not null;index:plume_posts_ix_created;column:created_at"`

	// Relationships
	Author *Author `gorm:"foreignKey:AuthorID;references:ID"`
	Group  *Group  `gorm:"foreignKey:GroupID;references:ID"`
}

// TableName specifies the table name for Post
func (Post) TableName() string {
	return "plume_posts"
}

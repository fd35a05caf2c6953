package models

import (
	"database/sql"
	"time"
)

// Comment represents a comment on a post. PostID is nullable: when a post
// is deleted the reference is cleared and the comment survives, mirroring
// the Post/Group policy.
type Comment struct {
	ID        int64         `gorm:"primaryKey;autoIncrement;column:id"`
	PostID    sql.NullInt64 `gorm:"index:plume_comments_ix_post;column:post_id"`
	AuthorID  int64         `gorm:"not null;index:plume_comments_ix_author;column:author_id"`
	Text      string        `gorm:"type:text;not null;column:text"`
	CreatedAt time.Time     `gorm:"not null;column:created_at"`

	// Relationships
	Post   *Post   `gorm:"foreignKey:PostID;references:ID"`
	Author *Author `gorm:"foreignKey:AuthorID;references:ID"`
}

// TableName specifies the table name for Comment
func (Comment) TableName() string {
	return "plume_comments"
}

package models

import (
	"time"
)

// Follow represents a directed follow edge between two authors. The
// composite primary key enforces at most one edge per (follower, followee)
// pair; concurrent creates race on it and exactly one edge survives.
type Follow struct {
	FollowerID int64     `gorm:"primaryKey;column:follower_id"`
	FolloweeID int64     `gorm:"primaryKey;column:followee_id"`
	CreatedAt  time.Time `gorm:"not null;column:created_at"`

	// Relationships
	Follower *Author `gorm:"foreignKey:FollowerID;references:ID"`
	Followee *Author `gorm:"foreignKey:FolloweeID;references:ID"`
}

// TableName specifies the table name for Follow
func (Follow) TableName() string {
	return "plume_follows"
}

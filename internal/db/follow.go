package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plume-social/plume/internal/models"
)

// FollowRepository provides follow-edge database operations
type FollowRepository struct {
	*Repository
}

// NewFollowRepository creates a new follow repository
func NewFollowRepository(repo *Repository) *FollowRepository {
	return &FollowRepository{Repository: repo}
}

// Upsert creates the (follower, followee) edge if absent and reports
// whether a row was written. Concurrent creates race on the composite
// primary key; ON CONFLICT DO NOTHING makes the loser observe created=false.
func (r *FollowRepository) Upsert(ctx context.Context, follower, followee int64, at time.Time) (bool, error) {
	follow := &models.Follow{
		FollowerID: follower,
		FolloweeID: followee,
		CreatedAt:  at,
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(follow)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Remove deletes the edge if present and reports whether a row was removed.
func (r *FollowRepository) Remove(ctx context.Context, follower, followee int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", follower, followee).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists checks whether the edge is present
func (r *FollowRepository) Exists(ctx context.Context, follower, followee int64) (bool, error) {
	var follow models.Follow
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", follower, followee).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// FolloweeIDs returns the IDs of all authors followed by follower, unordered.
func (r *FollowRepository) FolloweeIDs(ctx context.Context, follower int64) ([]int64, error) {
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ?", follower).
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

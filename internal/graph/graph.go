// Package graph maintains the directed follow relation between authors.
package graph

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/pkg/logging"
)

// EdgeStore is the persistence surface the graph needs. Implemented by
// db.FollowRepository.
type EdgeStore interface {
	Upsert(ctx context.Context, follower, followee int64, at time.Time) (bool, error)
	Remove(ctx context.Context, follower, followee int64) (bool, error)
	Exists(ctx context.Context, follower, followee int64) (bool, error)
	FolloweeIDs(ctx context.Context, follower int64) ([]int64, error)
}

// EdgeResult reports the state of an edge after a follow or unfollow.
// Exists is the state after the call; Changed reports whether this call
// created or removed the edge.
type EdgeResult struct {
	Exists  bool `json:"following"`
	Changed bool `json:"changed"`
}

// Service implements the relationship graph operations. Side effects are
// strictly limited to the follow relation.
type Service struct {
	edges  EdgeStore
	logger *zap.Logger
}

// NewService creates a new graph service
func NewService(edges EdgeStore) *Service {
	return &Service{
		edges:  edges,
		logger: logging.GetLogger().With(zap.String("component", "graph")),
	}
}

// Follow creates the follower→followee edge. Following yourself is a
// guarded no-op, and re-following is idempotent: the call reports the edge
// exists but was not newly created.
func (s *Service) Follow(ctx context.Context, follower, followee int64) (EdgeResult, error) {
	if follower == followee {
		return EdgeResult{}, nil
	}
	created, err := s.edges.Upsert(ctx, follower, followee, time.Now().UTC())
	if err != nil {
		return EdgeResult{}, models.NewInternalError(err)
	}
	if created {
		s.logger.Debug("Follow edge created",
			zap.Int64("follower", follower),
			zap.Int64("followee", followee))
	}
	return EdgeResult{Exists: true, Changed: created}, nil
}

// Unfollow removes the follower→followee edge. Removing an absent edge is
// a no-op, not an error.
func (s *Service) Unfollow(ctx context.Context, follower, followee int64) (EdgeResult, error) {
	removed, err := s.edges.Remove(ctx, follower, followee)
	if err != nil {
		return EdgeResult{}, models.NewInternalError(err)
	}
	if removed {
		s.logger.Debug("Follow edge removed",
			zap.Int64("follower", follower),
			zap.Int64("followee", followee))
	}
	return EdgeResult{Exists: false, Changed: removed}, nil
}

// IsFollowing checks whether the follower→followee edge exists.
func (s *Service) IsFollowing(ctx context.Context, follower, followee int64) (bool, error) {
	exists, err := s.edges.Exists(ctx, follower, followee)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return exists, nil
}

// FolloweesOf returns the IDs of all authors followed by follower, unordered.
func (s *Service) FolloweesOf(ctx context.Context, follower int64) ([]int64, error) {
	ids, err := s.edges.FolloweeIDs(ctx, follower)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}

// Package feed produces the ordered post listings: the personalized
// timeline derived from the follow graph plus the global, group and author
// feeds.
package feed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/cache"
	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/pkg/logging"
)

// DefaultPageSize is the page window used when none is configured.
const DefaultPageSize = 10

const globalFeedTTL = 30 * time.Second

// PostSource is the post listing surface the composer reads from.
// Implemented by db.PostRepository.
type PostSource interface {
	ListAll(ctx context.Context, limit, offset int) ([]models.Post, error)
	ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error)
	ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]models.Post, error)
	ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error)
}

// GroupSource resolves group slugs. Implemented by db.GroupRepository.
type GroupSource interface {
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
}

// AuthorSource resolves author handles. Implemented by db.AuthorRepository.
type AuthorSource interface {
	GetByHandle(ctx context.Context, handle string) (*models.Author, error)
}

// FollowSource is the slice of the relationship graph the composer needs.
// Implemented by graph.Service.
type FollowSource interface {
	FolloweesOf(ctx context.Context, follower int64) ([]int64, error)
	IsFollowing(ctx context.Context, follower, followee int64) (bool, error)
}

// AuthorTimeline is an author feed page plus the derived presentation flag.
type AuthorTimeline struct {
	Author    *models.Author
	Posts     []models.Post
	Following bool
}

// Composer assembles feed pages from the entity store, filtered through
// the follow graph.
type Composer struct {
	posts   PostSource
	groups  GroupSource
	authors AuthorSource
	follows FollowSource
	cache   *cache.Cache
	perPage int
	logger  *zap.Logger
}

// NewComposer creates a new feed composer. redisCache may be nil.
func NewComposer(posts PostSource, groups GroupSource, authors AuthorSource, follows FollowSource, redisCache *cache.Cache, perPage int) *Composer {
	if perPage <= 0 {
		perPage = DefaultPageSize
	}
	return &Composer{
		posts:   posts,
		groups:  groups,
		authors: authors,
		follows: follows,
		cache:   redisCache,
		perPage: perPage,
		logger:  logging.GetLogger().With(zap.String("component", "feed")),
	}
}

// window converts a 1-based page number into a limit/offset pair.
// Pages below 1 are clamped to the first page.
func (c *Composer) window(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	return c.perPage, (page - 1) * c.perPage
}

// Personalized returns one page of posts by the authors the viewer
// follows, newest first. An empty followee set yields an empty feed; the
// viewer's own posts are never implicitly included.
func (c *Composer) Personalized(ctx context.Context, viewerID int64, page int) ([]models.Post, error) {
	followees, err := c.follows.FolloweesOf(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followees) == 0 {
		return []models.Post{}, nil
	}

	limit, offset := c.window(page)
	posts, err := c.posts.ListByAuthors(ctx, followees, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Global returns one page of all posts, newest first, independent of the
// follow graph. Pages are served read-through from Redis when a cache is
// wired.
func (c *Composer) Global(ctx context.Context, page int) ([]models.Post, error) {
	limit, offset := c.window(page)

	key := cache.HashKey("global_feed", fmt.Sprintf("%d", limit), fmt.Sprintf("%d", offset))
	if c.cache != nil {
		var cached []models.Post
		if err := c.cache.GetJSON(key, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := c.posts.ListAll(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(key, posts, globalFeedTTL); err != nil {
			c.logger.Debug("Failed to cache global feed page", zap.Error(err))
		}
	}
	return posts, nil
}

// Group returns one page of the named group's posts, newest first.
func (c *Composer) Group(ctx context.Context, slug string, page int) ([]models.Post, error) {
	group, err := c.groups.GetBySlug(ctx, slug)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if group == nil {
		return nil, models.NewNotFoundError("group", slug)
	}

	limit, offset := c.window(page)
	posts, err := c.posts.ListByGroup(ctx, group.ID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// Author returns one page of the named author's posts, newest first, plus
// whether the viewer follows that author. viewerID 0 means anonymous.
func (c *Composer) Author(ctx context.Context, handle string, page int, viewerID int64) (*AuthorTimeline, error) {
	author, err := c.authors.GetByHandle(ctx, handle)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if author == nil {
		return nil, models.NewNotFoundError("author", handle)
	}

	limit, offset := c.window(page)
	posts, err := c.posts.ListByAuthor(ctx, author.ID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	following := false
	if viewerID != 0 {
		following, err = c.follows.IsFollowing(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &AuthorTimeline{Author: author, Posts: posts, Following: following}, nil
}

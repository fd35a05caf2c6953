package feed

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plume-social/plume/internal/models"
)

// memStore backs all composer source interfaces with in-memory data,
// reproducing the store's ordering and windowing semantics.
type memStore struct {
	posts           []models.Post
	groups          map[string]*models.Group
	authors         map[string]*models.Author
	followees       map[int64][]int64
	byAuthorsCalled bool
}

func newMemStore() *memStore {
	return &memStore{
		groups:    make(map[string]*models.Group),
		authors:   make(map[string]*models.Author),
		followees: make(map[int64][]int64),
	}
}

func (m *memStore) addPost(id, authorID int64, groupID int64, at time.Time) {
	post := models.Post{
		ID:        id,
		Text:      fmt.Sprintf("post %d", id),
		AuthorID:  authorID,
		CreatedAt: at,
	}
	if groupID != 0 {
		post.GroupID = sql.NullInt64{Int64: groupID, Valid: true}
	}
	m.posts = append(m.posts, post)
}

func (m *memStore) window(posts []models.Post, limit, offset int) []models.Post {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
	if offset >= len(posts) {
		return []models.Post{}
	}
	end := offset + limit
	if end > len(posts) {
		end = len(posts)
	}
	return posts[offset:end]
}

func (m *memStore) ListAll(_ context.Context, limit, offset int) ([]models.Post, error) {
	return m.window(append([]models.Post(nil), m.posts...), limit, offset), nil
}

func (m *memStore) ListByAuthor(_ context.Context, authorID int64, limit, offset int) ([]models.Post, error) {
	var filtered []models.Post
	for _, p := range m.posts {
		if p.AuthorID == authorID {
			filtered = append(filtered, p)
		}
	}
	return m.window(filtered, limit, offset), nil
}

func (m *memStore) ListByAuthors(_ context.Context, authorIDs []int64, limit, offset int) ([]models.Post, error) {
	m.byAuthorsCalled = true
	in := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		in[id] = true
	}
	var filtered []models.Post
	for _, p := range m.posts {
		if in[p.AuthorID] {
			filtered = append(filtered, p)
		}
	}
	return m.window(filtered, limit, offset), nil
}

func (m *memStore) ListByGroup(_ context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	var filtered []models.Post
	for _, p := range m.posts {
		if p.GroupID.Valid && p.GroupID.Int64 == groupID {
			filtered = append(filtered, p)
		}
	}
	return m.window(filtered, limit, offset), nil
}

func (m *memStore) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	return m.groups[slug], nil
}

func (m *memStore) GetByHandle(_ context.Context, handle string) (*models.Author, error) {
	return m.authors[handle], nil
}

func (m *memStore) FolloweesOf(_ context.Context, follower int64) ([]int64, error) {
	return m.followees[follower], nil
}

func (m *memStore) IsFollowing(_ context.Context, follower, followee int64) (bool, error) {
	for _, id := range m.followees[follower] {
		if id == followee {
			return true, nil
		}
	}
	return false, nil
}

func newComposer(store *memStore, perPage int) *Composer {
	return NewComposer(store, store, store, store, nil, perPage)
}

func TestPersonalizedEmptyFolloweeSet(t *testing.T) {
	store := newMemStore()
	store.addPost(1, 9, 0, time.Now())

	posts, err := newComposer(store, 10).Personalized(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.False(t, store.byAuthorsCalled, "empty followee set must not query posts")
}

func TestPersonalizedFiltersToFollowedAuthors(t *testing.T) {
	// Viewer 1 follows author 2 only. Author 2 has P1, author 3 has P2.
	store := newMemStore()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.addPost(1, 2, 0, base)
	store.addPost(2, 3, 0, base.Add(time.Hour))
	store.followees[1] = []int64{2}

	posts, err := newComposer(store, 10).Personalized(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, int64(1), posts[0].ID)
}

func TestPersonalizedExcludesViewerOwnPosts(t *testing.T) {
	store := newMemStore()
	store.addPost(1, 1, 0, time.Now())
	store.followees[1] = []int64{2}

	posts, err := newComposer(store, 10).Personalized(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestGroupFeedOrderedByRecency(t *testing.T) {
	store := newMemStore()
	store.groups["gophers"] = &models.Group{ID: 5, Title: "Gophers", Slug: "gophers"}
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store.addPost(1, 2, 5, base)
	store.addPost(2, 2, 5, base.Add(time.Minute))

	posts, err := newComposer(store, 10).Group(context.Background(), "gophers", 1)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, int64(2), posts[0].ID)
	assert.Equal(t, int64(1), posts[1].ID)
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	store := newMemStore()

	_, err := newComposer(store, 10).Group(context.Background(), "missing", 1)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestAuthorFeedPagination(t *testing.T) {
	// 13 posts at page size 10: page 1 has 10, page 2 has 3, page 3 empty.
	store := newMemStore()
	store.authors["ana"] = &models.Author{ID: 2, Handle: "ana"}
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= 13; i++ {
		store.addPost(int64(i), 2, 0, base.Add(time.Duration(i)*time.Minute))
	}

	composer := newComposer(store, 10)
	ctx := context.Background()

	page1, err := composer.Author(ctx, "ana", 1, 0)
	require.NoError(t, err)
	assert.Len(t, page1.Posts, 10)
	assert.Equal(t, int64(13), page1.Posts[0].ID)

	page2, err := composer.Author(ctx, "ana", 2, 0)
	require.NoError(t, err)
	assert.Len(t, page2.Posts, 3)

	page3, err := composer.Author(ctx, "ana", 3, 0)
	require.NoError(t, err)
	assert.Empty(t, page3.Posts)
}

func TestAuthorFeedFollowingFlag(t *testing.T) {
	store := newMemStore()
	store.authors["ana"] = &models.Author{ID: 2, Handle: "ana"}
	store.followees[1] = []int64{2}

	composer := newComposer(store, 10)
	ctx := context.Background()

	viewer, err := composer.Author(ctx, "ana", 1, 1)
	require.NoError(t, err)
	assert.True(t, viewer.Following)

	stranger, err := composer.Author(ctx, "ana", 1, 3)
	require.NoError(t, err)
	assert.False(t, stranger.Following)

	anonymous, err := composer.Author(ctx, "ana", 1, 0)
	require.NoError(t, err)
	assert.False(t, anonymous.Following)
}

func TestAuthorFeedUnknownHandle(t *testing.T) {
	store := newMemStore()

	_, err := newComposer(store, 10).Author(context.Background(), "ghost", 1, 0)
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestGlobalFeedPageClamping(t *testing.T) {
	store := newMemStore()
	store.addPost(1, 2, 0, time.Now())

	composer := newComposer(store, 10)
	ctx := context.Background()

	clamped, err := composer.Global(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, clamped, 1, "page below 1 must be treated as page 1")

	pastEnd, err := composer.Global(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, pastEnd)
}

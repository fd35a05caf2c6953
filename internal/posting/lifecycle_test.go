package posting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plume-social/plume/internal/models"
)

type memLifecycleStore struct {
	nextPostID    int64
	nextCommentID int64
	posts         map[int64]*models.Post
	comments      map[int64]*models.Comment
	groups        map[int64]*models.Group
}

func newMemLifecycleStore() *memLifecycleStore {
	return &memLifecycleStore{
		posts:    make(map[int64]*models.Post),
		comments: make(map[int64]*models.Comment),
		groups:   make(map[int64]*models.Group),
	}
}

func (m *memLifecycleStore) GetByID(_ context.Context, id int64) (*models.Post, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *memLifecycleStore) Create(_ context.Context, post *models.Post) error {
	m.nextPostID++
	post.ID = m.nextPostID
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

func (m *memLifecycleStore) Update(_ context.Context, post *models.Post) error {
	copied := *post
	m.posts[post.ID] = &copied
	return nil
}

type memComments struct {
	nextID   int64
	comments []*models.Comment
}

func (m *memComments) Create(_ context.Context, comment *models.Comment) error {
	m.nextID++
	comment.ID = m.nextID
	copied := *comment
	m.comments = append(m.comments, &copied)
	return nil
}

func (m *memComments) ListByPost(_ context.Context, postID int64) ([]models.Comment, error) {
	var out []models.Comment
	for _, c := range m.comments {
		if c.PostID.Valid && c.PostID.Int64 == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type memGroups struct {
	groups map[int64]*models.Group
}

func (m *memGroups) GetByID(_ context.Context, id int64) (*models.Group, error) {
	return m.groups[id], nil
}

func (m *memGroups) GetBySlug(_ context.Context, slug string) (*models.Group, error) {
	for _, g := range m.groups {
		if g.Slug == slug {
			return g, nil
		}
	}
	return nil, nil
}

func (m *memGroups) Update(_ context.Context, group *models.Group) error {
	m.groups[group.ID] = group
	return nil
}

func newTestService() (*Service, *memLifecycleStore, *memComments, *memGroups) {
	posts := newMemLifecycleStore()
	comments := &memComments{}
	groups := &memGroups{groups: map[int64]*models.Group{
		5: {ID: 5, Title: "Gophers", Slug: "gophers"},
	}}
	return NewService(posts, comments, groups), posts, comments, groups
}

func TestCreatePost(t *testing.T) {
	svc, posts, _, _ := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, PostInput{Text: "hello", GroupSlug: "gophers", ImageRef: "blob-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), post.AuthorID)
	assert.True(t, post.GroupID.Valid)
	assert.Equal(t, int64(5), post.GroupID.Int64)
	assert.Equal(t, "blob-1", post.ImageRef)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Len(t, posts.posts, 1)
}

func TestCreatePostValidation(t *testing.T) {
	svc, posts, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		text string
	}{
		{name: "empty text", text: ""},
		{name: "whitespace only", text: "   \n\t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, 1, PostInput{Text: tt.text})
			require.Error(t, err)
			assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
		})
	}
	assert.Empty(t, posts.posts)
}

func TestCreatePostUnknownGroup(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.CreatePost(context.Background(), 1, PostInput{Text: "hi", GroupSlug: "missing"})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestEditPostByAuthor(t *testing.T) {
	svc, posts, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, PostInput{Text: "first", GroupSlug: "gophers"})
	require.NoError(t, err)

	edited, err := svc.EditPost(ctx, 1, created.ID, PostInput{Text: "second"})
	require.NoError(t, err)
	assert.Equal(t, "second", edited.Text)
	assert.False(t, edited.GroupID.Valid, "empty group slug clears the group")
	assert.Equal(t, created.AuthorID, edited.AuthorID)
	assert.Equal(t, created.CreatedAt, edited.CreatedAt, "created_at is immutable")

	stored := posts.posts[created.ID]
	assert.Equal(t, "second", stored.Text)
}

func TestEditPostByNonAuthor(t *testing.T) {
	svc, posts, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, PostInput{Text: "original", GroupSlug: "gophers"})
	require.NoError(t, err)

	_, err = svc.EditPost(ctx, 2, created.ID, PostInput{Text: "hijacked"})
	require.Error(t, err)
	assert.Equal(t, models.CodeAuthorization, models.ErrorCode(err))

	stored := posts.posts[created.ID]
	assert.Equal(t, "original", stored.Text, "non-author edit must not change text")
	assert.True(t, stored.GroupID.Valid, "non-author edit must not change group")
}

func TestEditPostValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, 1, PostInput{Text: "original"})
	require.NoError(t, err)

	_, err = svc.EditPost(ctx, 1, created.ID, PostInput{Text: "  "})
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestEditPostNotFound(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.EditPost(context.Background(), 1, 99, PostInput{Text: "x"})
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestAddComment(t *testing.T) {
	svc, _, comments, _ := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, PostInput{Text: "post"})
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, 2, post.ID, "nice one")
	require.NoError(t, err)
	assert.Equal(t, int64(2), comment.AuthorID)
	require.True(t, comment.PostID.Valid)
	assert.Equal(t, post.ID, comment.PostID.Int64)
	assert.Len(t, comments.comments, 1)
}

func TestAddCommentValidation(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, PostInput{Text: "post"})
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, 2, post.ID, " ")
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))
}

func TestAddCommentUnknownPost(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.AddComment(context.Background(), 2, 42, "hello")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestGetPostWithComments(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, 1, PostInput{Text: "post"})
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, 2, post.ID, "first")
	require.NoError(t, err)

	got, comments, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.Len(t, comments, 1)
}

func TestUpdateGroup(t *testing.T) {
	svc, _, _, groups := newTestService()
	ctx := context.Background()

	updated, err := svc.UpdateGroup(ctx, 5, "Go Developers", "all things Go")
	require.NoError(t, err)
	assert.Equal(t, "Go Developers", updated.Title)
	assert.Equal(t, "gophers", updated.Slug, "slug is immutable")
	assert.Equal(t, "all things Go", groups.groups[5].Description)

	_, err = svc.UpdateGroup(ctx, 5, "", "")
	require.Error(t, err)
	assert.Equal(t, models.CodeValidation, models.ErrorCode(err))

	_, err = svc.UpdateGroup(ctx, 99, "X", "")
	require.Error(t, err)
	assert.Equal(t, models.CodeNotFound, models.ErrorCode(err))
}

func TestCreatePostTimestampsAreMonotonicEnough(t *testing.T) {
	svc, _, _, _ := newTestService()
	ctx := context.Background()

	before := time.Now().UTC()
	post, err := svc.CreatePost(ctx, 1, PostInput{Text: "x"})
	require.NoError(t, err)
	after := time.Now().UTC()

	assert.False(t, post.CreatedAt.Before(before))
	assert.False(t, post.CreatedAt.After(after))
}

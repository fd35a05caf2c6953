// Package posting implements the post and comment lifecycle: creation and
// edit with validation and ownership checks.
package posting

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plume-social/plume/internal/models"
	"github.com/plume-social/plume/pkg/logging"
)

// PostStore is the post persistence surface. Implemented by
// db.PostRepository.
type PostStore interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
}

// CommentStore is the comment persistence surface. Implemented by
// db.CommentRepository.
type CommentStore interface {
	Create(ctx context.Context, comment *models.Comment) error
	ListByPost(ctx context.Context, postID int64) ([]models.Comment, error)
}

// GroupStore resolves and updates groups. Implemented by
// db.GroupRepository.
type GroupStore interface {
	GetByID(ctx context.Context, id int64) (*models.Group, error)
	GetBySlug(ctx context.Context, slug string) (*models.Group, error)
	Update(ctx context.Context, group *models.Group) error
}

// PostInput carries the caller-editable fields of a post. An empty
// GroupSlug leaves the post ungrouped; ImageRef is an opaque blob
// reference owned by the media collaborator.
type PostInput struct {
	Text      string
	GroupSlug string
	ImageRef  string
}

// Service implements the post/comment lifecycle operations.
type Service struct {
	posts    PostStore
	comments CommentStore
	groups   GroupStore
	logger   *zap.Logger
}

// NewService creates a new lifecycle service
func NewService(posts PostStore, comments CommentStore, groups GroupStore) *Service {
	return &Service{
		posts:    posts,
		comments: comments,
		groups:   groups,
		logger:   logging.GetLogger().With(zap.String("component", "posting")),
	}
}

func (s *Service) resolveGroup(ctx context.Context, slug string) (sql.NullInt64, error) {
	if slug == "" {
		return sql.NullInt64{}, nil
	}
	group, err := s.groups.GetBySlug(ctx, slug)
	if err != nil {
		return sql.NullInt64{}, models.NewInternalError(err)
	}
	if group == nil {
		return sql.NullInt64{}, models.NewNotFoundError("group", slug)
	}
	return sql.NullInt64{Int64: group.ID, Valid: true}, nil
}

// CreatePost publishes a new post for the caller. Creation is
// instantaneous publication: there is no draft state.
func (s *Service) CreatePost(ctx context.Context, authorID int64, input PostInput) (*models.Post, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("post text must not be empty")
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:      input.Text,
		AuthorID:  authorID,
		GroupID:   groupID,
		ImageRef:  input.ImageRef,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.logger.Debug("Post created",
		zap.Int64("post_id", post.ID),
		zap.Int64("author_id", authorID))
	return post, nil
}

// EditPost applies new content to an existing post. Only the post's author
// may edit; the author and creation timestamp are preserved.
func (s *Service) EditPost(ctx context.Context, callerID, postID int64, input PostInput) (*models.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", postID)
	}
	if post.AuthorID != callerID {
		return nil, models.NewAuthorizationError("only the author may edit this post")
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, models.NewValidationError("post text must not be empty")
	}

	groupID, err := s.resolveGroup(ctx, input.GroupSlug)
	if err != nil {
		return nil, err
	}

	post.Text = input.Text
	post.GroupID = groupID
	post.ImageRef = input.ImageRef
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// AddComment attaches a comment by the caller to an existing post.
func (s *Service) AddComment(ctx context.Context, authorID, postID int64, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, models.NewValidationError("comment text must not be empty")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, models.NewNotFoundError("post", postID)
	}

	comment := &models.Comment{
		PostID:    sql.NullInt64{Int64: post.ID, Valid: true},
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// GetPost returns a post with its comments, newest comment first.
func (s *Service) GetPost(ctx context.Context, postID int64) (*models.Post, []models.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	if post == nil {
		return nil, nil, models.NewNotFoundError("post", postID)
	}

	comments, err := s.comments.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}
	return post, comments, nil
}

// UpdateGroup applies an administrative edit to a group's title and
// description. The slug is immutable once assigned.
func (s *Service) UpdateGroup(ctx context.Context, groupID int64, title, description string) (*models.Group, error) {
	if strings.TrimSpace(title) == "" {
		return nil, models.NewValidationError("group title must not be empty")
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if group == nil {
		return nil, models.NewNotFoundError("group", groupID)
	}

	group.Title = title
	group.Description = description
	if err := s.groups.Update(ctx, group); err != nil {
		return nil, models.NewInternalError(err)
	}
	return group, nil
}

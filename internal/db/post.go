package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/plume-social/plume/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	*Repository
}

// NewPostRepository creates a new post repository
func NewPostRepository(repo *Repository) *PostRepository {
	return &PostRepository{Repository: repo}
}

// GetByID retrieves a post by ID
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// Update updates a post
func (r *PostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post, clearing the post reference of its comments
// inside the same transaction. Comments survive the deletion.
func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).
			Where("post_id = ?", id).
			Update("post_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// listQuery applies the shared listing shape: relations preloaded,
// newest first with id as the tiebreak, windowed by limit/offset.
func (r *PostRepository) listQuery(ctx context.Context, limit, offset int) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author").Preload("Group").
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset)
}

// ListAll retrieves a page of all posts, newest first
func (r *PostRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.listQuery(ctx, limit, offset).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthor retrieves a page of one author's posts, newest first
func (r *PostRepository) ListByAuthor(ctx context.Context, authorID int64, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.listQuery(ctx, limit, offset).
		Where("author_id = ?", authorID).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByAuthors retrieves a page of posts by any of the given authors,
// newest first
func (r *PostRepository) ListByAuthors(ctx context.Context, authorIDs []int64, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.listQuery(ctx, limit, offset).
		Where("author_id IN ?", authorIDs).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// ListByGroup retrieves a page of one group's posts, newest first
func (r *PostRepository) ListByGroup(ctx context.Context, groupID int64, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	if err := r.listQuery(ctx, limit, offset).
		Where("group_id = ?", groupID).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CommentRepository provides comment-related database operations
type CommentRepository struct {
	*Repository
}

// NewCommentRepository creates a new comment repository
func NewCommentRepository(repo *Repository) *CommentRepository {
	return &CommentRepository{Repository: repo}
}

// Create creates a new comment
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// ListByPost retrieves the comments of a post, newest first
func (r *CommentRepository) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created_at DESC, id DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

package db

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/plume-social/plume/internal/models"
)

// Repository provides database access methods
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AuthorRepository provides author-related database operations
type AuthorRepository struct {
	*Repository
}

// NewAuthorRepository creates a new author repository
func NewAuthorRepository(repo *Repository) *AuthorRepository {
	return &AuthorRepository{Repository: repo}
}

// GetByID retrieves an author by ID
func (r *AuthorRepository) GetByID(ctx context.Context, id int64) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).First(&author, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// GetByHandle retrieves an author by handle
func (r *AuthorRepository) GetByHandle(ctx context.Context, handle string) (*models.Author, error) {
	var author models.Author
	if err := r.db.WithContext(ctx).Where("handle = ?", handle).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &author, nil
}

// EnsureByHandle returns the author row for handle, creating it if absent.
// Identity itself is owned by the auth collaborator upstream; this only
// materializes the reference row the core needs.
func (r *AuthorRepository) EnsureByHandle(ctx context.Context, handle string) (*models.Author, error) {
	author, err := r.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if author != nil {
		return author, nil
	}
	author = &models.Author{Handle: handle, CreatedAt: time.Now().UTC()}
	if err := r.db.WithContext(ctx).Create(author).Error; err != nil {
		// Lost a race to another request carrying the same identity.
		existing, lookupErr := r.GetByHandle(ctx, handle)
		if lookupErr == nil && existing != nil {
			return existing, nil
		}
		return nil, err
	}
	return author, nil
}

// GroupRepository provides group-related database operations
type GroupRepository struct {
	*Repository
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(repo *Repository) *GroupRepository {
	return &GroupRepository{Repository: repo}
}

// GetByID retrieves a group by ID
func (r *GroupRepository) GetByID(ctx context.Context, id int64) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// GetBySlug retrieves a group by slug
func (r *GroupRepository) GetBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &group, nil
}

// Create creates a new group
func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

// Update updates a group
func (r *GroupRepository) Update(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Save(group).Error
}

// Delete removes a group, clearing the group reference of every post that
// points at it inside the same transaction. Posts are never deleted here.
func (r *GroupRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Post{}).
			Where("group_id = ?", id).
			Update("group_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Group{}, id).Error
	})
}

package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// BlogFilter is the effective query constraint set for a listing request.
// All present conditions apply conjunctively.
type BlogFilter struct {
	AuthorID uint     // 0 means unscoped
	Search   string   // case-insensitive substring over title/content/excerpt
	Tags     []string // non-empty intersection with the stored tag set
	Limit    int
	Offset   int
}

// BlogRepository defines persistence operations for blog posts.
type BlogRepository interface {
	Create(ctx context.Context, blog *models.Blog) error
	GetByID(ctx context.Context, id uint) (*models.Blog, error)
	List(ctx context.Context, f BlogFilter) ([]*models.Blog, int64, error)
	Update(ctx context.Context, blog *models.Blog) error
	Delete(ctx context.Context, id uint) (bool, error)
	CountByAuthor(ctx context.Context, authorID uint) (int64, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository returns a new BlogRepository implementation.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *blogRepository) GetByID(ctx context.Context, id uint) (*models.Blog, error) {
	var blog models.Blog
	key := cache.BlogKey(id)

	err := cache.Aside(ctx, key, &blog, cache.BlogTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Author").
			First(&blog, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Blog", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &blog, nil
}

// applyFilter appends WHERE clauses for the present filter conditions.
// Tag overlap uses jsonb_exists_any, the function form of the `?|` operator,
// which sidesteps the placeholder collision with GORM's `?`.
func applyFilter(db *gorm.DB, f BlogFilter) *gorm.DB {
	if f.AuthorID != 0 {
		db = db.Where("author_id = ?", f.AuthorID)
	}
	if f.Search != "" {
		like := "%" + f.Search + "%"
		db = db.Where("title ILIKE ? OR content ILIKE ? OR excerpt ILIKE ?", like, like, like)
	}
	if len(f.Tags) > 0 {
		db = db.Where("jsonb_exists_any(tags, ARRAY[?])", f.Tags)
	}
	return db
}

func (r *blogRepository) List(ctx context.Context, f BlogFilter) ([]*models.Blog, int64, error) {
	var total int64
	if err := applyFilter(r.db.WithContext(ctx).Model(&models.Blog{}), f).
		Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var blogs []*models.Blog
	if err := applyFilter(r.db.WithContext(ctx), f).
		Preload("Author").
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&blogs).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	return blogs, total, nil
}

func (r *blogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := r.db.WithContext(ctx).Omit("Author").Save(blog).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateBlog(ctx, blog.ID)
	return nil
}

func (r *blogRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.Blog{}, id)
	if res.Error != nil {
		return false, models.NewInternalError(res.Error)
	}
	cache.InvalidateBlog(ctx, id)
	return res.RowsAffected > 0, nil
}

func (r *blogRepository) CountByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Blog{}).
		Where("author_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// Package service contains business logic orchestrating the repositories.
package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	// DefaultPageSize is used when the request does not specify a limit.
	DefaultPageSize = 10
	// MaxPageSize caps the limit to keep result sets bounded.
	MaxPageSize = 100
)

// ListParams are the typed, boundary-validated listing parameters.
type ListParams struct {
	Page   int
	Limit  int
	Search string
	Tags   []string
	Author uint // explicit author filter; 0 means not supplied
}

// ResolveListFilter derives the effective query filter from the caller's
// identity and the request parameters. An explicit author filter wins for any
// caller; otherwise authenticated callers are scoped to their own blogs and
// anonymous callers browse unscoped. Search and tags apply regardless of scope.
func ResolveListFilter(callerID uint, p ListParams) repository.BlogFilter {
	page := p.Page
	if page < 1 {
		page = 1
	}
	limit := p.Limit
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	author := p.Author
	if author == 0 && callerID != 0 {
		author = callerID
	}

	return repository.BlogFilter{
		AuthorID: author,
		Search:   strings.TrimSpace(p.Search),
		Tags:     p.Tags,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	}
}

// SplitTags parses a comma-separated tag parameter into a clean slice.
func SplitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// CreateBlogInput is the payload for creating a blog post.
type CreateBlogInput struct {
	AuthorID  uint
	Title     string
	Content   string
	Excerpt   string
	HeroImage string
	Tags      []string
}

// UpdateBlogInput is the payload for updating a blog post. Empty string
// fields keep the stored value; a nil Tags slice keeps the stored tags.
type UpdateBlogInput struct {
	CallerID  uint
	BlogID    uint
	Title     string
	Content   string
	Excerpt   string
	HeroImage string
	Tags      []string
}

// BlogService implements the blog query and access-control logic.
type BlogService struct {
	blogRepo repository.BlogRepository
}

// NewBlogService creates a new blog service.
func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

// List runs a filtered, paginated listing for the given caller.
func (s *BlogService) List(ctx context.Context, callerID uint, p ListParams) (*models.BlogPage, error) {
	f := ResolveListFilter(callerID, p)

	blogs, total, err := s.blogRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if blogs == nil {
		blogs = []*models.Blog{}
	}

	pages := int((total + int64(f.Limit) - 1) / int64(f.Limit))
	return &models.BlogPage{
		Blogs: blogs,
		Pagination: models.Pagination{
			Page:  f.Offset/f.Limit + 1,
			Limit: f.Limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// Get fetches a single blog with its author.
func (s *BlogService) Get(ctx context.Context, id uint) (*models.Blog, error) {
	return s.blogRepo.GetByID(ctx, id)
}

// Create inserts a blog for the author and re-fetches it with the author join.
// The insert and the re-fetch are sequential store calls, not a transaction.
func (s *BlogService) Create(ctx context.Context, in CreateBlogInput) (*models.Blog, error) {
	blog := &models.Blog{
		Title:     in.Title,
		Content:   in.Content,
		Excerpt:   in.Excerpt,
		HeroImage: in.HeroImage,
		AuthorID:  in.AuthorID,
		Tags:      models.TagList(in.Tags),
	}
	if blog.Tags == nil {
		blog.Tags = models.TagList{}
	}
	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, err
	}
	return s.blogRepo.GetByID(ctx, blog.ID)
}

// Update merges the provided fields into the stored record after the
// ownership check. NotFound is checked before ownership so a non-existent id
// never reports Forbidden.
func (s *BlogService) Update(ctx context.Context, in UpdateBlogInput) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(ctx, in.BlogID)
	if err != nil {
		return nil, err
	}

	if blog.AuthorID != in.CallerID {
		return nil, models.NewForbiddenError("You can only update your own blogs")
	}

	if in.Title != "" {
		blog.Title = in.Title
	}
	if in.Content != "" {
		blog.Content = in.Content
	}
	if in.Excerpt != "" {
		blog.Excerpt = in.Excerpt
	}
	if in.HeroImage != "" {
		blog.HeroImage = in.HeroImage
	}
	if in.Tags != nil {
		blog.Tags = models.TagList(in.Tags)
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, err
	}
	return blog, nil
}

// Delete removes a blog after the ownership check, NotFound first.
func (s *BlogService) Delete(ctx context.Context, callerID, blogID uint) error {
	blog, err := s.blogRepo.GetByID(ctx, blogID)
	if err != nil {
		return err
	}

	if blog.AuthorID != callerID {
		return models.NewForbiddenError("You can only delete your own blogs")
	}

	deleted, err := s.blogRepo.Delete(ctx, blogID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("Blog", blogID)
	}
	return nil
}

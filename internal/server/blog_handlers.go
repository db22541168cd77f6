package server

import (
	"errors"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// CreateBlogRequest is the blog creation payload.
type CreateBlogRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	HeroImage string   `json:"hero_image"`
	Tags      []string `json:"tags"`
}

// UpdateBlogRequest is the blog update payload. Absent fields keep their
// stored values; a nil Tags slice keeps the stored tags while an empty one
// clears them.
type UpdateBlogRequest struct {
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Excerpt   string   `json:"excerpt"`
	HeroImage string   `json:"hero_image"`
	Tags      []string `json:"tags"`
}

func validateBlogFields(title, content, excerpt, heroImage string, tags []string, partial bool) []string {
	var details []string

	if !partial || title != "" {
		if err := validation.ValidateTitle(title); err != nil {
			details = append(details, err.Error())
		}
	}
	if !partial || content != "" {
		if err := validation.ValidateContent(content); err != nil {
			details = append(details, err.Error())
		}
	}
	if excerpt != "" {
		if err := validation.ValidateExcerpt(excerpt); err != nil {
			details = append(details, err.Error())
		}
	}
	if heroImage != "" {
		if err := validation.ValidateURL("hero_image", heroImage); err != nil {
			details = append(details, err.Error())
		}
	}
	if len(tags) > 0 {
		if err := validation.ValidateTags(tags); err != nil {
			details = append(details, err.Error())
		}
	}

	return details
}

// GetBlogs lists blogs with filtering and pagination. Authenticated callers
// see their own blogs unless an explicit author filter is supplied; anonymous
// callers browse everything.
func (s *Server) GetBlogs(c *fiber.Ctx) error {
	params, err := s.parseListParams(c)
	if err != nil {
		return nil
	}

	callerID := currentUserID(c)
	page, err := s.blogService.List(c.Context(), callerID, params)
	if err != nil {
		return models.RespondError(c, err)
	}

	message := "Blogs retrieved successfully"
	if callerID != 0 {
		message = "Your blogs retrieved successfully"
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    message,
		"blogs":      page.Blogs,
		"pagination": page.Pagination,
	})
}

// SearchBlogs searches all blogs regardless of author or caller identity.
func (s *Server) SearchBlogs(c *fiber.Ctx) error {
	search := strings.TrimSpace(c.Query("q"))
	if search == "" {
		search = strings.TrimSpace(c.Query("search"))
	}
	if search == "" {
		return models.RespondError(c, models.NewValidationError("Search term is required"))
	}

	params, err := s.parseListParams(c)
	if err != nil {
		return nil
	}
	params.Search = search
	params.Author = 0

	// Unscoped: search spans all authors even for authenticated callers.
	page, err := s.blogService.List(c.Context(), 0, params)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "Search results retrieved successfully",
		"searchTerm": search,
		"blogs":      page.Blogs,
		"pagination": page.Pagination,
	})
}

// GetMyBlogs lists the authenticated caller's blogs.
func (s *Server) GetMyBlogs(c *fiber.Ctx) error {
	params, err := s.parseListParams(c)
	if err != nil {
		return nil
	}
	params.Author = currentUserID(c)

	page, err := s.blogService.List(c.Context(), currentUserID(c), params)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "User blogs retrieved successfully",
		"blogs":      page.Blogs,
		"pagination": page.Pagination,
	})
}

// GetBlog fetches a single blog by id.
func (s *Server) GetBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}

	blog, err := s.blogService.Get(c.Context(), id)
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Blog retrieved successfully",
		"blog":    blog,
	})
}

// CreateBlog creates a blog owned by the authenticated caller.
func (s *Server) CreateBlog(c *fiber.Ctx) error {
	var req CreateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	if details := validateBlogFields(req.Title, req.Content, req.Excerpt, req.HeroImage, req.Tags, false); len(details) > 0 {
		return models.RespondError(c, models.NewValidationError("Validation failed", details...))
	}

	blog, err := s.blogService.Create(c.Context(), service.CreateBlogInput{
		AuthorID:  currentUserID(c),
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		HeroImage: req.HeroImage,
		Tags:      req.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Blog created successfully",
		"blog":    blog,
	})
}

// UpdateBlog updates a blog the authenticated caller owns.
func (s *Server) UpdateBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}

	var req UpdateBlogRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Title = strings.TrimSpace(req.Title)
	if details := validateBlogFields(req.Title, req.Content, req.Excerpt, req.HeroImage, req.Tags, true); len(details) > 0 {
		return models.RespondError(c, models.NewValidationError("Validation failed", details...))
	}

	blog, err := s.blogService.Update(c.Context(), service.UpdateBlogInput{
		CallerID:  currentUserID(c),
		BlogID:    id,
		Title:     req.Title,
		Content:   req.Content,
		Excerpt:   req.Excerpt,
		HeroImage: req.HeroImage,
		Tags:      req.Tags,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Blog updated successfully",
		"blog":    blog,
	})
}

// DeleteBlog deletes a blog the authenticated caller owns.
func (s *Server) DeleteBlog(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		if errors.Is(err, errResponseWritten) {
			return nil
		}
		return err
	}

	if err := s.blogService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Blog deleted successfully",
	})
}

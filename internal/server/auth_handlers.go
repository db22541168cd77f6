package server

import (
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest carries the mutable profile fields. Absent or empty
// fields keep their stored values.
type UpdateProfileRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// Register handles user registration.
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var details []string
	if err := validation.ValidateUsername(req.Username); err != nil {
		details = append(details, err.Error())
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		details = append(details, err.Error())
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		details = append(details, err.Error())
	}
	if req.Avatar != "" {
		if err := validation.ValidateURL("avatar", req.Avatar); err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		return models.RespondError(c, models.NewValidationError("Validation failed", details...))
	}

	// Pre-checks give precise conflict messages; the unique indexes still
	// back them up under concurrent registration.
	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c, models.NewConflictError("User with this email already exists"))
	}

	existing, err = s.userRepo.GetByUsername(c.Context(), req.Username)
	if err != nil {
		return models.RespondError(c, err)
	}
	if existing != nil {
		return models.RespondError(c, models.NewConflictError("Username already taken"))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Avatar:   req.Avatar,
	}
	if err := s.userRepo.Create(c.Context(), user); err != nil {
		return models.RespondError(c, err)
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"token":   token,
		"user":    user.Public(),
	})
}

// Login handles user authentication. Unknown email and wrong password return
// the same message so the endpoint does not leak which emails exist.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return models.RespondError(c, models.NewValidationError("Email and password are required"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return models.RespondError(c, err)
	}
	if user == nil {
		return models.RespondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.RespondError(c, models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID)
	if err != nil {
		return models.RespondError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
		"token":   token,
		"user":    user.Public(),
	})
}

// Logout acknowledges the logout. Tokens are stateless; the client discards
// its copy.
func (s *Server) Logout(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// GetProfile returns the authenticated user's profile.
func (s *Server) GetProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile retrieved successfully",
		"user":    user.Public(),
	})
}

// UpdateProfile updates the authenticated user's profile fields.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondError(c, models.NewValidationError("Invalid request body"))
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var details []string
	if req.Username != "" {
		if err := validation.ValidateUsername(req.Username); err != nil {
			details = append(details, err.Error())
		}
	}
	if req.Email != "" {
		if err := validation.ValidateEmail(req.Email); err != nil {
			details = append(details, err.Error())
		}
	}
	if req.Avatar != "" {
		if err := validation.ValidateURL("avatar", req.Avatar); err != nil {
			details = append(details, err.Error())
		}
	}
	if len(details) > 0 {
		return models.RespondError(c, models.NewValidationError("Validation failed", details...))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:   currentUserID(c),
		Username: req.Username,
		Email:    req.Email,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user.Public(),
	})
}

// DeleteAccount removes the authenticated user's account. Accounts that still
// own blogs are not deleted.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.userService.DeleteAccount(c.Context(), currentUserID(c)); err != nil {
		return models.RespondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account deleted successfully",
	})
}

package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// UpdateProfileInput carries the profile fields a user may change.
// Empty string fields keep the stored value.
type UpdateProfileInput struct {
	UserID   uint
	Username string
	Email    string
	Avatar   string
}

// UserService implements identity business logic.
type UserService struct {
	userRepo repository.UserRepository
	blogRepo repository.BlogRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, blogRepo repository.BlogRepository) *UserService {
	return &UserService{userRepo: userRepo, blogRepo: blogRepo}
}

// GetProfile returns the user record for the given id.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateProfile merges the provided fields and saves the full record.
// Uniqueness conflicts surface as CONFLICT from the repository.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Avatar != "" {
		user.Avatar = in.Avatar
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount removes the identity. Deletion is rejected while the user
// still owns blogs, so posts are never silently orphaned.
func (s *UserService) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return err
	}

	count, err := s.blogRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("Account still owns blogs; delete them first")
	}

	deleted, err := s.userRepo.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

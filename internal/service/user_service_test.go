package service

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestUserService_UpdateProfile_MergesNonEmptyFields(t *testing.T) {
	userRepo := new(MockUserRepository)
	blogRepo := new(MockBlogRepository)
	svc := NewUserService(userRepo, blogRepo)

	stored := &models.User{ID: 1, Username: "oldname", Email: "old@example.com", Avatar: "old.png"}
	userRepo.On("GetByID", mock.Anything, uint(1)).Return(stored, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).Return(nil)

	user, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   1,
		Username: "newname",
	})

	require.NoError(t, err)
	assert.Equal(t, "newname", user.Username)
	assert.Equal(t, "old@example.com", user.Email)
	assert.Equal(t, "old.png", user.Avatar)
}

func TestUserService_UpdateProfile_ConflictSurfaces(t *testing.T) {
	userRepo := new(MockUserRepository)
	blogRepo := new(MockBlogRepository)
	svc := NewUserService(userRepo, blogRepo)

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1, Username: "a"}, nil)
	userRepo.On("Update", mock.Anything, mock.Anything).
		Return(models.NewConflictError("Username or email already exists"))

	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: "taken"})

	require.Error(t, err)
	assert.Equal(t, 409, models.StatusFor(err))
}

func TestUserService_DeleteAccount_RejectedWhileOwningBlogs(t *testing.T) {
	userRepo := new(MockUserRepository)
	blogRepo := new(MockBlogRepository)
	svc := NewUserService(userRepo, blogRepo)

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)
	blogRepo.On("CountByAuthor", mock.Anything, uint(1)).Return(int64(3), nil)

	err := svc.DeleteAccount(context.Background(), 1)

	require.Error(t, err)
	assert.Equal(t, 409, models.StatusFor(err))
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUserService_DeleteAccount_Succeeds(t *testing.T) {
	userRepo := new(MockUserRepository)
	blogRepo := new(MockBlogRepository)
	svc := NewUserService(userRepo, blogRepo)

	userRepo.On("GetByID", mock.Anything, uint(1)).
		Return(&models.User{ID: 1}, nil)
	blogRepo.On("CountByAuthor", mock.Anything, uint(1)).Return(int64(0), nil)
	userRepo.On("Delete", mock.Anything, uint(1)).Return(true, nil)

	err := svc.DeleteAccount(context.Background(), 1)

	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestUserService_DeleteAccount_MissingUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	blogRepo := new(MockBlogRepository)
	svc := NewUserService(userRepo, blogRepo)

	userRepo.On("GetByID", mock.Anything, uint(99)).
		Return(nil, models.NewNotFoundError("User", 99))

	err := svc.DeleteAccount(context.Background(), 99)

	require.Error(t, err)
	assert.Equal(t, 404, models.StatusFor(err))
	blogRepo.AssertNotCalled(t, "CountByAuthor", mock.Anything, mock.Anything)
}

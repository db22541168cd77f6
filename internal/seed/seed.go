// Package seed populates the database with realistic development data.
package seed

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much data Run generates.
type Options struct {
	Users        int
	BlogsPerUser int
	// Password is assigned to every seeded user so seeded accounts are
	// usable for manual testing. Defaults to "Password1".
	Password string
}

var tagPool = []string{
	"golang", "webdev", "databases", "devops", "testing",
	"tutorials", "opinion", "performance", "security", "tooling",
}

// Run inserts Users fake authors each owning BlogsPerUser posts.
// It is idempotent enough for development: duplicate usernames from repeated
// runs are skipped rather than failing the whole seed.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	if opts.Users <= 0 {
		opts.Users = 10
	}
	if opts.BlogsPerUser <= 0 {
		opts.BlogsPerUser = 5
	}
	if opts.Password == "" {
		opts.Password = "Password1"
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash seed password: %w", err)
	}

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)

	created := 0
	for i := 0; i < opts.Users; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hash),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", username),
		}

		if err := userRepo.Create(ctx, user); err != nil {
			middleware.Logger.Warn("skipping seed user", "username", username, "error", err)
			continue
		}
		created++

		for j := 0; j < opts.BlogsPerUser; j++ {
			if err := blogRepo.Create(ctx, fakeBlog(user.ID)); err != nil {
				return fmt.Errorf("failed to seed blog for user %d: %w", user.ID, err)
			}
		}
	}

	middleware.Logger.Info("seed complete",
		"users", created,
		"blogs_per_user", opts.BlogsPerUser,
	)
	return nil
}

func fakeBlog(authorID uint) *models.Blog {
	paragraphs := gofakeit.Paragraph(3, 4, 12, "\n\n")

	indexes := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	gofakeit.ShuffleInts(indexes)

	tags := models.TagList{}
	for _, idx := range indexes[:gofakeit.Number(1, 3)] {
		tags = append(tags, tagPool[idx])
	}

	excerpt := paragraphs
	if len(excerpt) > 200 {
		excerpt = excerpt[:200]
	}

	return &models.Blog{
		Title:     gofakeit.Sentence(6),
		Content:   paragraphs,
		Excerpt:   excerpt,
		HeroImage: fmt.Sprintf("https://picsum.photos/seed/%d/1200/600", gofakeit.Number(1, 100000)),
		AuthorID:  authorID,
		Tags:      tags,
	}
}

package server

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenIssuer   = "inkwell-api"
	tokenAudience = "inkwell-client"
	tokenTTL      = 7 * 24 * time.Hour
)

// errResponseWritten signals that the handler already wrote the response and
// the caller should just return nil.
var errResponseWritten = errors.New("response written")

// parseID reads a numeric route parameter. On failure it writes a 400 and
// returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	raw := c.Params(param)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		_ = models.RespondError(c, models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// parseListParams reads pagination/filter query parameters. Malformed page or
// limit values are rejected rather than silently defaulted, so a typo'd
// request never returns page one of everything.
func (s *Server) parseListParams(c *fiber.Ctx) (service.ListParams, error) {
	p := service.ListParams{}

	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			_ = models.RespondError(c, models.NewValidationError("page must be a positive integer"))
			return p, errResponseWritten
		}
		p.Page = page
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			_ = models.RespondError(c, models.NewValidationError("limit must be a positive integer"))
			return p, errResponseWritten
		}
		p.Limit = limit
	}

	if raw := c.Query("author"); raw != "" {
		author, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || author == 0 {
			_ = models.RespondError(c, models.NewValidationError("author must be a positive integer"))
			return p, errResponseWritten
		}
		p.Author = uint(author)
	}

	p.Search = c.Query("search")
	p.Tags = service.SplitTags(c.Query("tags"))

	return p, nil
}

// currentUserID returns the authenticated user id placed by the auth gate,
// or 0 when the request is anonymous.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// generateToken signs a JWT for the given user id.
func (s *Server) generateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Audience:  jwt.ClaimStrings{tokenAudience},
		Subject:   strconv.FormatUint(uint64(userID), 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// extractToken pulls the bearer token from the Authorization header.
func extractToken(c *fiber.Ctx) string {
	header := c.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// parseToken validates the signature, issuer, audience, and time claims, and
// returns the user id from the subject.
func (s *Server) parseToken(tokenString string) (uint, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{},
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.config.JWTSecret), nil
		},
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
	)
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || userID == 0 {
		return 0, errors.New("invalid subject claim")
	}
	return uint(userID), nil
}

// AuthRequired returns a middleware that rejects requests without a valid
// token for an existing user. The 401 message distinguishes a missing token,
// an expired token, a malformed/forged token, and a token for a user that no
// longer exists.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return models.RespondError(c,
				models.NewUnauthorizedError("Access denied. No token provided."))
		}

		userID, err := s.parseToken(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return models.RespondError(c,
					models.NewUnauthorizedError("Access denied. Token expired."))
			}
			return models.RespondError(c,
				models.NewUnauthorizedError("Access denied. Invalid token."))
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return models.RespondError(c,
				models.NewUnauthorizedError("Access denied. User not found."))
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

// AuthOptional returns a middleware that resolves the caller's identity when
// a valid token is present and silently continues anonymously otherwise.
// It never writes a 401.
func (s *Server) AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := extractToken(c)
		if tokenString == "" {
			return c.Next()
		}

		userID, err := s.parseToken(tokenString)
		if err != nil {
			return c.Next()
		}

		user, err := s.userRepo.GetByID(c.Context(), userID)
		if err != nil {
			return c.Next()
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		c.SetUserContext(middleware.WithUserID(c.UserContext(), user.ID))
		return c.Next()
	}
}

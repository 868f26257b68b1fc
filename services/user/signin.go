package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	userRepo "hively/database/repository/user"
	"hively/models"
	"hively/utils"

	"golang.org/x/crypto/bcrypt"
)

// tokenLifetime matches utils.AuthCacheTTL so the cached hash outlives
// the token itself.
const tokenLifetime = utils.AuthCacheTTL

// Authenticate verifies credentials and issues a fresh token.
func (s *DefaultUserService) Authenticate(ctx context.Context, input models.LoginInput) (*models.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, u)
}

// issueToken signs a JWT for the user and records its hash in the auth cache
// so revocation takes effect immediately.
func (s *DefaultUserService) issueToken(ctx context.Context, u *models.User) (*models.AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenLifetime)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if s.AuthCache != nil {
		key := utils.AuthCachePrefix + u.ID
		if err := s.AuthCache.Set(ctx, key, utils.HashToken(token), tokenLifetime).Err(); err != nil {
			return nil, fmt.Errorf("failed to record session: %w", err)
		}
	}

	return &models.AuthResponse{Token: token, User: *u}, nil
}

// Revoke invalidates the user's current token.
func (s *DefaultUserService) Revoke(ctx context.Context, userID string) error {
	if s.AuthCache == nil {
		return nil
	}
	if err := s.AuthCache.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// GetByID fetches an account by ID.
func (s *DefaultUserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "hively/database/repository/user"
	"hively/models"
	"hively/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a new account and signs the caller in. New accounts always
// get the user role; administrators are provisioned out of band.
func (s *DefaultUserService) Register(ctx context.Context, input models.RegistrationInput) (*models.AuthResponse, error) {
	logger := utils.GetLogger()
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && !errors.Is(err, userRepo.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: string(hash),
		Role:         models.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	logger.Info("user registered", zap.String("userID", u.ID))
	return s.issueToken(ctx, u)
}

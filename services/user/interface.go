package user

import (
	"context"

	userRepo "hively/database/repository/user"
	"hively/models"

	"github.com/go-redis/redis/v8"
)

// UserService is the identity provider: account creation, token issuance and
// revocation. The booking engine trusts the identity it yields and does no
// password handling itself.
type UserService interface {
	Register(ctx context.Context, input models.RegistrationInput) (*models.AuthResponse, error)
	Authenticate(ctx context.Context, input models.LoginInput) (*models.AuthResponse, error)
	Revoke(ctx context.Context, userID string) error
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// DefaultUserService is the production identity provider.
type DefaultUserService struct {
	Repo      userRepo.UserRepository
	AuthCache *redis.Client
}

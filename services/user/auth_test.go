package user

import (
	"context"
	"errors"
	"testing"

	userRepo "hively/database/repository/user"
	"hively/models"
)

type fakeUserRepo struct {
	byID    map[string]*models.User
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]*models.User),
	}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func newTestService() *DefaultUserService {
	return &DefaultUserService{Repo: newFakeUserRepo()}
}

func TestRegister_IssuesToken(t *testing.T) {
	svc := newTestService()

	resp, err := svc.Register(context.Background(), models.RegistrationInput{
		Email:    "Casey@Example.com",
		Name:     "Casey",
		Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}
	if resp.User.Email != "casey@example.com" {
		t.Errorf("email should be normalized, got %q", resp.User.Email)
	}
	if resp.User.Role != models.RoleUser {
		t.Errorf("new accounts should get the user role, got %q", resp.User.Role)
	}
	if resp.User.PasswordHash == "correct-horse" {
		t.Error("password must not be stored in the clear")
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	input := models.RegistrationInput{Email: "casey@example.com", Name: "Casey", Password: "correct-horse"}

	if _, err := svc.Register(ctx, input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(ctx, input); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthenticate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, models.RegistrationInput{
		Email: "casey@example.com", Name: "Casey", Password: "correct-horse",
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	resp, err := svc.Authenticate(ctx, models.LoginInput{Email: "casey@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}

	if _, err := svc.Authenticate(ctx, models.LoginInput{Email: "casey@example.com", Password: "wrong"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password should fail with ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, models.LoginInput{Email: "nobody@example.com", Password: "x"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email should fail with ErrInvalidCredentials, got %v", err)
	}
}

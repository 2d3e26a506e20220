package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

func registerUser(t *testing.T, repo *fakeUserRepo, username, email, password string) *domain.User {
	t.Helper()

	result, err := newRegister(repo).Execute(context.Background(), RegisterInput{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}
	return result.User
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	user := registerUser(t, repo, "alice", "a@x.com", "Passw0rd")

	uc := NewLogin(repo, fakeHasher{}, &fakeIssuer{}, 0, 0)
	result, err := uc.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.User.ID != user.ID {
		t.Errorf("expected user %s, got %s", user.ID, result.User.ID)
	}

	stored, _ := repo.GetByID(context.Background(), user.ID)
	if stored.LastLoginAt == nil {
		t.Error("expected last login to be recorded")
	}
	if stored.RefreshToken == nil || *stored.RefreshToken != result.Tokens.RefreshToken {
		t.Error("expected refresh token to be rotated")
	}
}

func TestLogin_WrongPasswordAndUnknownEmailIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	registerUser(t, repo, "alice", "a@x.com", "Passw0rd")

	uc := NewLogin(repo, fakeHasher{}, &fakeIssuer{}, 0, 0)

	_, errWrongPassword := uc.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "wrong"})
	_, errUnknownEmail := uc.Execute(context.Background(), LoginInput{Email: "nobody@x.com", Password: "Passw0rd"})

	if !errors.Is(errWrongPassword, domerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, domerrors.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", errUnknownEmail)
	}
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Error("login failures must not reveal which field was wrong")
	}
}

func TestLogin_RotatesRefreshToken(t *testing.T) {
	t.Parallel()

	// Register and login must share one issuer so its token sequence is
	// continuous across both steps.
	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	reg, err := NewRegister(repo, fakeHasher{}, issuer, 0, 0).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}

	uc := NewLogin(repo, fakeHasher{}, issuer, 0, 0)
	result, err := uc.Execute(context.Background(), LoginInput{Email: "a@x.com", Password: "Passw0rd"})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Tokens.RefreshToken == reg.Tokens.RefreshToken {
		t.Error("expected a fresh refresh token on login")
	}

	stored, _ := repo.GetByID(context.Background(), reg.User.ID)
	if stored.RefreshToken == nil || *stored.RefreshToken != result.Tokens.RefreshToken {
		t.Error("expected the stored token to be the login token")
	}
}

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/dkarlsson/taskhive/internal/domain"
	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

func newRegister(repo *fakeUserRepo) *Register {
	return NewRegister(repo, fakeHasher{}, &fakeIssuer{}, 0, 0)
}

func TestRegister_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := newRegister(repo)

	result, err := uc.Execute(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.User.Role != domain.RoleUser {
		t.Errorf("expected role %q, got %q", domain.RoleUser, result.User.Role)
	}
	if result.User.PasswordHash == "Passw0rd" {
		t.Error("password stored in plaintext")
	}
	if result.Tokens.AccessToken == "" || result.Tokens.RefreshToken == "" {
		t.Error("expected token pair to be issued")
	}

	stored, _ := repo.GetByID(context.Background(), result.User.ID)
	if stored == nil {
		t.Fatal("user not persisted")
	}
	if stored.RefreshToken == nil || *stored.RefreshToken != result.Tokens.RefreshToken {
		t.Error("refresh token not persisted against user")
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	t.Parallel()

	uc := newRegister(newFakeUserRepo())

	_, err := uc.Execute(context.Background(), RegisterInput{
		Username:        "alice",
		Email:           "a@x.com",
		Password:        "Passw0rd",
		ConfirmPassword: "other",
	})
	if !errors.Is(err, domerrors.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := newRegister(repo)

	input := RegisterInput{Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd"}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input.Username = "bob"
	_, err := uc.Execute(context.Background(), input)
	if !errors.Is(err, domerrors.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := newRegister(repo)

	input := RegisterInput{Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd"}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	input.Email = "b@x.com"
	_, err := uc.Execute(context.Background(), input)
	if !errors.Is(err, domerrors.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	domerrors "github.com/dkarlsson/taskhive/internal/domain/errors"
)

func TestRefresh_RotatesBothTokens(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	reg, err := NewRegister(repo, fakeHasher{}, issuer, 0, 0).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}

	uc := NewRefresh(repo, issuer, 0, 0)
	result, err := uc.Execute(context.Background(), RefreshInput{
		AccessToken:  reg.Tokens.AccessToken,
		RefreshToken: reg.Tokens.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if result.Tokens.RefreshToken == reg.Tokens.RefreshToken {
		t.Error("expected refresh token to rotate")
	}
	if result.Tokens.AccessToken == reg.Tokens.AccessToken {
		t.Error("expected a new access token")
	}
}

func TestRefresh_OldTokenSingleUse(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	reg, err := NewRegister(repo, fakeHasher{}, issuer, 0, 0).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}

	uc := NewRefresh(repo, issuer, 0, 0)
	input := RefreshInput{AccessToken: reg.Tokens.AccessToken, RefreshToken: reg.Tokens.RefreshToken}
	if _, err := uc.Execute(context.Background(), input); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}

	_, err = uc.Execute(context.Background(), input)
	if !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken on reuse, got %v", err)
	}
}

func TestRefresh_ExpiredRefreshTokenFails(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	reg, err := NewRegister(repo, fakeHasher{}, issuer, 0, 0).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}

	// Force the stored refresh token to be expired.
	if err := repo.StoreRefreshToken(context.Background(), reg.User.ID, reg.Tokens.RefreshToken, time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("failed to expire refresh token: %v", err)
	}

	uc := NewRefresh(repo, issuer, 0, 0)
	_, err = uc.Execute(context.Background(), RefreshInput{
		AccessToken:  reg.Tokens.AccessToken,
		RefreshToken: reg.Tokens.RefreshToken,
	})
	if !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefresh_BadAccessTokenFails(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	uc := NewRefresh(repo, &fakeIssuer{}, 0, 0)

	_, err := uc.Execute(context.Background(), RefreshInput{AccessToken: "garbage", RefreshToken: "whatever"})
	if !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestRefresh_MismatchedRefreshTokenFails(t *testing.T) {
	t.Parallel()

	repo := newFakeUserRepo()
	issuer := &fakeIssuer{}
	reg, err := NewRegister(repo, fakeHasher{}, issuer, 0, 0).Execute(context.Background(), RegisterInput{
		Username: "alice", Email: "a@x.com", Password: "Passw0rd", ConfirmPassword: "Passw0rd",
	})
	if err != nil {
		t.Fatalf("failed to prepare user: %v", err)
	}

	uc := NewRefresh(repo, issuer, 0, 0)
	_, err = uc.Execute(context.Background(), RefreshInput{
		AccessToken:  reg.Tokens.AccessToken,
		RefreshToken: "not-the-stored-one",
	})
	if !errors.Is(err, domerrors.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

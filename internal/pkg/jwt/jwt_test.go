package jwt_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/unibazaar/unibazaar-api/internal/pkg/jwt"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "student", "main", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	claims, err := svc.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user id %s, got %s", userID, claims.UserID)
	}
	if claims.Role != "student" || claims.Campus != "main" || claims.IsBanned {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)

	refresh, _, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("generate refresh failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(refresh); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for refresh-as-access, got %v", err)
	}
	if _, err := svc.ValidateRefreshToken(refresh); err != nil {
		t.Fatalf("validate refresh failed: %v", err)
	}
}

func TestExpiredAccessToken(t *testing.T) {
	svc := jwt.NewService("test-secret", -time.Minute, 24*time.Hour)

	token, err := svc.GenerateAccessToken(uuid.New(), "student", "main", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, jwt.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenFromOtherSecret(t *testing.T) {
	svc := jwt.NewService("test-secret", 15*time.Minute, 24*time.Hour)
	other := jwt.NewService("other-secret", 15*time.Minute, 24*time.Hour)

	token, err := other.GenerateAccessToken(uuid.New(), "student", "main", false)
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	if _, err := svc.ValidateAccessToken(token); !errors.Is(err, jwt.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for foreign secret, got %v", err)
	}
}

func TestHashRefreshTokenIsStable(t *testing.T) {
	a := jwt.HashRefreshToken("some-token")
	b := jwt.HashRefreshToken("some-token")
	c := jwt.HashRefreshToken("other-token")

	if a != b {
		t.Fatal("expected identical hashes for identical tokens")
	}
	if a == c {
		t.Fatal("expected different hashes for different tokens")
	}
}

package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryTokenStore(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.Save(ctx, "hash-1", userID, time.Minute); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.Lookup(ctx, "hash-1")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got != userID {
		t.Fatalf("expected %s, got %s", userID, got)
	}

	if _, err := store.Lookup(ctx, "unknown"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}

	if err := store.Delete(ctx, "hash-1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "hash-1"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken after delete, got %v", err)
	}
}

func TestMemoryTokenStoreExpiry(t *testing.T) {
	store := NewTokenStore(nil)
	ctx := context.Background()

	if err := store.Save(ctx, "hash-2", uuid.New(), -time.Second); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if _, err := store.Lookup(ctx, "hash-2"); !errors.Is(err, ErrInvalidRefreshToken) {
		t.Fatalf("expected ErrInvalidRefreshToken for expired entry, got %v", err)
	}
}

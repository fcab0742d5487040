package item

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

// Without Redis the cache must degrade to a no-op, never panic.
func TestCacheWithoutRedis(t *testing.T) {
	cache := NewCache(nil)
	ctx := context.Background()

	if _, ok := cache.GetApproved(ctx, "main"); ok {
		t.Fatal("expected cache miss without redis")
	}

	cache.SetApproved(ctx, "main", []*Item{{ID: uuid.New()}})
	cache.Invalidate(ctx, "main")

	if _, ok := cache.GetApproved(ctx, "main"); ok {
		t.Fatal("expected cache miss after no-op set")
	}
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	if _, ok := cache.GetApproved(ctx, "main"); ok {
		t.Fatal("expected miss on nil cache")
	}
	cache.SetApproved(ctx, "main", nil)
	cache.Invalidate(ctx, "main")
}

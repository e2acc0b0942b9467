package engine

import (
	"context"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("list_batches", "token-abc")
		k2 := CacheKey("list_batches", "token-abc")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different tokens differ", func(t *testing.T) {
		k1 := CacheKey("list_batches", "token-abc")
		k2 := CacheKey("list_batches", "token-xyz")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("token never appears in the key", func(t *testing.T) {
		k := CacheKey("list_batches", "super-secret-bearer-token")
		if k[:3] != "ge:" {
			t.Errorf("expected ge: prefix, got %q", k[:3])
		}
		if len(k) != 3+24 {
			t.Errorf("key length = %d, want 27", len(k))
		}
	})
}

func TestCacheGetSetBatches(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "round-trip")

	if _, ok := CacheGetBatches(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	val := []BatchInfo{{ID: "b1", Name: "GATE 2027 ME"}}
	CacheSetBatches(ctx, key, val)

	got, ok := CacheGetBatches(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if len(got) != 1 || got[0].Name != "GATE 2027 ME" {
		t.Errorf("got %+v", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 1*time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("test", "expiry")

	CacheSetBatches(ctx, key, []BatchInfo{{ID: "b1", Name: "temp"}})
	time.Sleep(5 * time.Millisecond)

	if _, ok := CacheGetBatches(ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	InitCache("", 1*time.Minute, 3, 5*time.Minute)

	ctx := context.Background()
	for _, token := range []string{"t1", "t2", "t3", "t4", "t5"} {
		CacheSetBatches(ctx, CacheKey("evict", token), []BatchInfo{{ID: token}})
	}

	count := 0
	batchCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("L1 holds %d entries, want <= 3", count)
	}
}

package store_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"moola/internal/domain"
	"moola/internal/store"
)

func newRedisTokenStoreTest(t *testing.T) (*store.RedisTokenStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis start: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return store.NewRedisTokenStore(rdb, "moola:test", 0), mr
}

func TestRedisTokenStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	tokens, mr := newRedisTokenStoreTest(t)

	want := domain.TokenPair{AccessToken: "a.b.c", RefreshToken: "refresh"}
	if err := tokens.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := tokens.Get(ctx)
	if err != nil || !ok || got != want {
		t.Fatalf("got %+v ok=%v err=%v", got, ok, err)
	}
	if v, _ := mr.Get("moola:test:accessToken"); v != "a.b.c" {
		t.Fatalf("access key = %q", v)
	}
}

func TestRedisTokenStore_MissingKeyReadsAbsent(t *testing.T) {
	ctx := context.Background()
	tokens, mr := newRedisTokenStoreTest(t)

	if err := mr.Set("moola:test:accessToken", "orphan"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok, err := tokens.Get(ctx); err != nil || ok {
		t.Fatalf("half pair: ok=%v err=%v", ok, err)
	}
}

func TestRedisTokenStore_ClearIdempotent(t *testing.T) {
	ctx := context.Background()
	tokens, mr := newRedisTokenStoreTest(t)

	if err := tokens.Save(ctx, domain.TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := tokens.Clear(ctx); err != nil {
		t.Fatalf("first clear: %v", err)
	}
	if err := tokens.Clear(ctx); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if mr.Exists("moola:test:accessToken") || mr.Exists("moola:test:refreshToken") {
		t.Fatal("keys survived clear")
	}
}

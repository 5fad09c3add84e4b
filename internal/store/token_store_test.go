package store_test

import (
	"context"
	"errors"
	"testing"

	"moola/internal/domain"
	"moola/internal/store"
)

func TestFileTokenStore_SaveGet_RoundTrip(t *testing.T) {
	ctx := context.Background()
	var tokens domain.TokenStore = store.NewFileTokenStore(t.TempDir(), "pass")

	want := domain.TokenPair{AccessToken: "access.jwt", RefreshToken: "refresh-opaque"}
	if err := tokens.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := tokens.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("got %+v ok=%v, want %+v", got, ok, want)
	}
}

func TestFileTokenStore_ClearIsIdempotent(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewFileTokenStore(t.TempDir(), "pass")

	if err := tokens.Save(ctx, domain.TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := tokens.Clear(ctx); err != nil {
			t.Fatalf("clear #%d: %v", i+1, err)
		}
		if _, ok, err := tokens.Get(ctx); err != nil || ok {
			t.Fatalf("after clear #%d: ok=%v err=%v", i+1, ok, err)
		}
	}
}

func TestFileTokenStore_EmptyReadsAbsent(t *testing.T) {
	tokens := store.NewFileTokenStore(t.TempDir(), "pass")
	if _, ok, err := tokens.Get(context.Background()); err != nil || ok {
		t.Fatalf("empty store: ok=%v err=%v", ok, err)
	}
}

func TestFileTokenStore_WrongPassphrase_Fails(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	if err := store.NewFileTokenStore(dir, "correct").Save(ctx, domain.TokenPair{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	_, ok, err := store.NewFileTokenStore(dir, "wrong").Get(ctx)
	if !errors.Is(err, store.ErrWrongPassphrase) {
		t.Fatalf("err = %v, want ErrWrongPassphrase", err)
	}
	if ok {
		t.Fatal("wrong passphrase must not report a pair")
	}
}

func TestTokenStores_RejectHalfPair(t *testing.T) {
	ctx := context.Background()
	stores := map[string]domain.TokenStore{
		"file":   store.NewFileTokenStore(t.TempDir(), "pass"),
		"memory": store.NewMemoryTokenStore(),
	}
	for name, s := range stores {
		if err := s.Save(ctx, domain.TokenPair{AccessToken: "only-access"}); !errors.Is(err, store.ErrIncompleteTokenPair) {
			t.Fatalf("%s: err = %v, want ErrIncompleteTokenPair", name, err)
		}
		if _, ok, _ := s.Get(ctx); ok {
			t.Fatalf("%s: half pair was stored", name)
		}
	}
}

func TestMemoryTokenStore_RoundTripAndClear(t *testing.T) {
	ctx := context.Background()
	tokens := store.NewMemoryTokenStore()
	want := domain.TokenPair{AccessToken: "a", RefreshToken: "r"}

	if err := tokens.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, ok, _ := tokens.Get(ctx); !ok || got != want {
		t.Fatalf("got %+v ok=%v", got, ok)
	}
	_ = tokens.Clear(ctx)
	_ = tokens.Clear(ctx)
	if _, ok, _ := tokens.Get(ctx); ok {
		t.Fatal("pair survived clear")
	}
}

func TestDeviceSecret_StableAcrossCalls(t *testing.T) {
	dir := t.TempDir()
	first, err := store.LoadOrCreateDeviceSecret(dir)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := store.LoadOrCreateDeviceSecret(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first == "" || first != second {
		t.Fatalf("secrets differ: %q vs %q", first, second)
	}
}

func TestFingerprint_DoesNotLeakToken(t *testing.T) {
	fp := store.Fingerprint("secret-token")
	if fp == "" || fp == "secret-token" || len(fp) != 12 {
		t.Fatalf("fingerprint = %q", fp)
	}
	if store.Fingerprint("") != "" {
		t.Fatal("empty token should have empty fingerprint")
	}
}

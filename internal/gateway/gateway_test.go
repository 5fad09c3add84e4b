package gateway_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"moola/internal/domain"
	"moola/internal/events"
	"moola/internal/gateway"
	"moola/internal/store"
)

type logoutCounter struct{ n int }

func newGatewayTest(t *testing.T, h http.HandlerFunc) (*gateway.Gateway, *store.MemoryTokenStore, *logoutCounter) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	tokens := store.NewMemoryTokenStore()
	bus := events.New(nil)
	c := &logoutCounter{}
	bus.On(domain.EventLogout, func() { c.n++ })
	return gateway.New(srv.URL, tokens, bus, gateway.WithHTTPClient(srv.Client())), tokens, c
}

func TestGateway_AttachesBearerAndRequestID(t *testing.T) {
	var auth, reqID string
	gw, tokens, _ := newGatewayTest(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(gateway.RequestIDHeader)
		_, _ = w.Write([]byte(`{"success":true}`))
	})
	ctx := context.Background()
	if err := tokens.Save(ctx, domain.TokenPair{AccessToken: "acc", RefreshToken: "ref"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	var out struct {
		Success bool `json:"success"`
	}
	if err := gw.Get(ctx, "/ping", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if auth != "Bearer acc" {
		t.Fatalf("Authorization = %q", auth)
	}
	if reqID == "" {
		t.Fatal("missing request id")
	}
	if !out.Success {
		t.Fatal("response not decoded")
	}
}

func TestGateway_NoTokenNoAuthorizationHeader(t *testing.T) {
	var auth string
	gw, _, _ := newGatewayTest(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})
	if err := gw.Post(context.Background(), "/auth/login", map[string]string{"username": "u"}, nil); err != nil {
		t.Fatalf("post: %v", err)
	}
	if auth != "" {
		t.Fatalf("Authorization = %q, want empty", auth)
	}
}

func TestGateway_401ClearsTokensAndEmitsOneLogout(t *testing.T) {
	gw, tokens, logouts := newGatewayTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	ctx := context.Background()
	if err := tokens.Save(ctx, domain.TokenPair{AccessToken: "old", RefreshToken: "r"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	err := gw.Get(ctx, "/clients/me", nil)
	var se *gateway.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
		t.Fatalf("err = %v, want 401 StatusError", err)
	}
	if se.Message != "token expired" {
		t.Fatalf("message = %q", se.Message)
	}
	if _, ok, _ := tokens.Get(ctx); ok {
		t.Fatal("tokens survived 401")
	}
	if logouts.n != 1 {
		t.Fatalf("LOGOUT emitted %d times, want 1", logouts.n)
	}

	// Immediate retry without a token: still a 401, but no second LOGOUT.
	if err := gw.Get(ctx, "/clients/me", nil); !gateway.IsUnauthorized(err) {
		t.Fatalf("retry err = %v", err)
	}
	if logouts.n != 1 {
		t.Fatalf("LOGOUT emitted %d times after retry, want 1", logouts.n)
	}
}

func TestGateway_401WithoutListenersDoesNotFail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := store.NewMemoryTokenStore()
	_ = tokens.Save(context.Background(), domain.TokenPair{AccessToken: "a", RefreshToken: "r"})
	gw := gateway.New(srv.URL, tokens, events.New(nil))

	if err := gw.Get(context.Background(), "/x", nil); !gateway.IsUnauthorized(err) {
		t.Fatalf("err = %v", err)
	}
	if _, ok, _ := tokens.Get(context.Background()); ok {
		t.Fatal("tokens survived 401")
	}
}

func TestGateway_OtherErrorsPassThrough(t *testing.T) {
	gw, tokens, logouts := newGatewayTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Invalid customer account"}`))
	})
	ctx := context.Background()
	_ = tokens.Save(ctx, domain.TokenPair{AccessToken: "a", RefreshToken: "r"})

	err := gw.Post(ctx, "/clients/validation/validate/vendor", map[string]string{}, nil)
	if got := gateway.MessageOf(err, "fallback"); got != "Invalid customer account" {
		t.Fatalf("message = %q (err %v)", got, err)
	}
	if _, ok, _ := tokens.Get(ctx); !ok {
		t.Fatal("tokens cleared on non-401")
	}
	if logouts.n != 0 {
		t.Fatalf("LOGOUT emitted on non-401")
	}
}

func TestGateway_TransportErrorReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	gw := gateway.New(url, store.NewMemoryTokenStore(), events.New(nil))
	err := gw.Get(context.Background(), "/x", nil)
	if err == nil {
		t.Fatal("expected transport error")
	}
	var se *gateway.StatusError
	if errors.As(err, &se) {
		t.Fatalf("transport error wrapped as status: %v", err)
	}
	if got := gateway.MessageOf(err, "Network error"); got != "Network error" {
		t.Fatalf("MessageOf = %q", got)
	}
}

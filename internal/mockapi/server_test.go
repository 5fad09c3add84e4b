package mockapi_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"moola/internal/mockapi"
)

const validatePath = "/v1/clients/validation/validate/vendor"

func newServer(t *testing.T) *mockapi.Server {
	t.Helper()
	s, err := mockapi.New(mockapi.Config{Secret: []byte("server-secret"), AccessTTL: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func post(t *testing.T, h http.Handler, path, bearer, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestVendorRoutesRequireValidToken(t *testing.T) {
	s := newServer(t)
	h := s.Router()
	body := `{"customerAccountNumber":"+250723456789","serviceType":"airtime"}`

	foreign, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "mallory",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("other-secret"))
	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "alice",
	}).SignedString([]byte("server-secret"))
	expired, _ := s.IssueAccess("alice", -time.Minute)

	for name, tok := range map[string]string{
		"missing": "",
		"foreign": foreign,
		"no exp":  noExp,
		"expired": expired,
	} {
		if rec := post(t, h, validatePath, tok, body); rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s token: status %d", name, rec.Code)
		}
	}

	good, _ := s.IssueAccess("alice", time.Minute)
	rec := post(t, h, validatePath, good, body)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "trxId") {
		t.Fatalf("valid token: %d %s", rec.Code, rec.Body.String())
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := mockapi.New(mockapi.Config{}); err == nil {
		t.Fatalf("accepted empty secret")
	}
}

func TestCORSPreflight(t *testing.T) {
	h := newServer(t).Router()
	req := httptest.NewRequest(http.MethodOptions, "/v1/auth/login", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatalf("no CORS headers: %v", rec.Header())
	}
}

package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"moola/internal/api"
	"moola/internal/domain"
	"moola/internal/events"
	"moola/internal/gateway"
	"moola/internal/mockapi"
	"moola/internal/store"
)

type apiHarness struct {
	client  *api.Client
	tokens  *store.MemoryTokenStore
	mock    *mockapi.Server
	logouts int
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	mock, err := mockapi.New(mockapi.Config{Secret: []byte("test-secret"), AccessTTL: time.Minute})
	if err != nil {
		t.Fatalf("mockapi: %v", err)
	}
	srv := httptest.NewServer(mock.Router())
	t.Cleanup(srv.Close)

	h := &apiHarness{tokens: store.NewMemoryTokenStore(), mock: mock}
	bus := events.New(nil)
	bus.On(domain.EventLogout, func() { h.logouts++ })
	gw := gateway.New(srv.URL+"/v1", h.tokens, bus, gateway.WithHTTPClient(srv.Client()))
	h.client = api.New(gw)
	return h
}

func (h *apiHarness) login(t *testing.T, username, password string) domain.TokenPair {
	t.Helper()
	if err := h.mock.AddUser(username, password); err != nil {
		t.Fatalf("add user: %v", err)
	}
	pair, err := h.client.Login(context.Background(), domain.Credentials{Username: username, Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := h.tokens.Save(context.Background(), pair); err != nil {
		t.Fatalf("save tokens: %v", err)
	}
	return pair
}

func TestLogin_BadCredentialsIsUnauthorizedWithoutLogout(t *testing.T) {
	h := newAPIHarness(t)
	_, err := h.client.Login(context.Background(), domain.Credentials{Username: "ghost", Password: "nope123"})
	if !gateway.IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if h.logouts != 0 {
		t.Fatalf("LOGOUT emitted without a session")
	}
}

func TestRegisterAndFind(t *testing.T) {
	h := newAPIHarness(t)
	ctx := context.Background()

	exists, err := h.client.UsernameExists(ctx, "alfred")
	if err != nil || exists {
		t.Fatalf("before register: exists=%v err=%v", exists, err)
	}
	reg := domain.Registration{
		Email: "alfred@example.com", Username: "alfred", Password: "secret1",
		FirstName: "Alfred", LastName: "M", Identity: "1199", PhoneNumber: "0788123456",
	}
	if err := h.client.Register(ctx, reg); err != nil {
		t.Fatalf("register: %v", err)
	}
	if exists, _ := h.client.UsernameExists(ctx, "alfred"); !exists {
		t.Fatal("registered username not found")
	}

	var se *gateway.StatusError
	if err := h.client.Register(ctx, reg); !errors.As(err, &se) || se.Status != http.StatusConflict {
		t.Fatalf("duplicate register err = %v", err)
	}
}

func TestVendorValidateThenExecute(t *testing.T) {
	h := newAPIHarness(t)
	h.login(t, "payer", "secret1")
	ctx := context.Background()

	res, err := h.client.ValidateVendor(ctx, domain.VendorValidation{
		CustomerAccountNumber: "+250723456789",
		ServiceType:           domain.ServiceAirtime,
	})
	if err != nil || !res.Success || res.Data.TrxID == "" {
		t.Fatalf("validate: %+v err=%v", res, err)
	}

	pay := domain.VendorPayment{
		PhoneNumber: "+250723456789", Amount: "500", CurrencySymbol: "Rwf",
		ServiceType: domain.ServiceAirtime, TrxID: res.Data.TrxID,
	}
	out, err := h.client.ExecuteVendorPayment(ctx, pay)
	if err != nil || !out.Success {
		t.Fatalf("execute: %+v err=%v", out, err)
	}
	again, err := h.client.ExecuteVendorPayment(ctx, pay)
	if err != nil || again.Success {
		t.Fatalf("second execute should be refused: %+v err=%v", again, err)
	}
	if n := len(h.mock.Payments()); n != 1 {
		t.Fatalf("payments = %d", n)
	}
}

func TestVendorValidate_RejectedNumber(t *testing.T) {
	h := newAPIHarness(t)
	h.login(t, "payer", "secret1")

	res, err := h.client.ValidateVendor(context.Background(), domain.VendorValidation{
		CustomerAccountNumber: "+250753456789",
		ServiceType:           domain.ServiceAirtime,
	})
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if res.Success || res.Message == "" {
		t.Fatalf("expected a refusal with a message, got %+v", res)
	}
}

func TestExpiredToken_ForcesLogout(t *testing.T) {
	h := newAPIHarness(t)
	ctx := context.Background()
	expired, err := h.mock.IssueAccess("payer", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	_ = h.tokens.Save(ctx, domain.TokenPair{AccessToken: expired, RefreshToken: "r"})

	_, err = h.client.ValidateVendor(ctx, domain.VendorValidation{
		CustomerAccountNumber: "+250723456789", ServiceType: domain.ServiceAirtime,
	})
	if !gateway.IsUnauthorized(err) {
		t.Fatalf("err = %v, want 401", err)
	}
	if _, ok, _ := h.tokens.Get(ctx); ok {
		t.Fatal("tokens survived 401")
	}
	if h.logouts != 1 {
		t.Fatalf("logouts = %d", h.logouts)
	}
}

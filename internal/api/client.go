package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"moola/internal/domain"
	"moola/internal/gateway"
)

// Endpoint paths, relative to the API base URL.
const (
	PathLogin          = "/auth/login"
	PathRegister       = "/auth/register"
	PathFindUser       = "/auth/find/"
	PathValidateVendor = "/clients/validation/validate/vendor"
	PathExecutePayment = "/clients/payment/execute/vendor"
)

// ErrMissingTokens is returned when login succeeds without a usable token pair.
var ErrMissingTokens = errors.New("login response did not include both tokens")

// Client implements domain.APIClient on top of a gateway.
type Client struct {
	gw *gateway.Gateway
}

// New returns a Client using gw for transport.
func New(gw *gateway.Gateway) *Client { return &Client{gw: gw} }

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.TokenPair, error) {
	var out domain.TokenPair
	if err := c.gw.Post(ctx, PathLogin, creds, &out); err != nil {
		return domain.TokenPair{}, err
	}
	if !out.Complete() {
		return domain.TokenPair{}, ErrMissingTokens
	}
	return out, nil
}

// Register creates an account. Any 2xx (200 or 201) is success.
func (c *Client) Register(ctx context.Context, reg domain.Registration) error {
	return c.gw.Post(ctx, PathRegister, reg, nil)
}

// UsernameExists reports whether username is already taken.
func (c *Client) UsernameExists(ctx context.Context, username domain.Username) (bool, error) {
	var out struct {
		Success bool `json:"success"`
	}
	if err := c.gw.Get(ctx, PathFindUser+url.PathEscape(username.String()), &out); err != nil {
		return false, err
	}
	return out.Success, nil
}

// ValidateVendor checks a customer account with the vendor and reserves a trxId.
func (c *Client) ValidateVendor(
	ctx context.Context,
	req domain.VendorValidation,
) (domain.VendorValidationResult, error) {
	var out domain.VendorValidationResult
	if err := c.gw.Post(ctx, PathValidateVendor, req, &out); err != nil {
		return domain.VendorValidationResult{}, err
	}
	if out.Success && out.Data.TrxID == "" {
		return out, fmt.Errorf("vendor validation for %s returned no trxId", req.ServiceType)
	}
	return out, nil
}

// ExecuteVendorPayment submits a payment against a validated trxId.
func (c *Client) ExecuteVendorPayment(
	ctx context.Context,
	req domain.VendorPayment,
) (domain.PaymentResult, error) {
	var out domain.PaymentResult
	if err := c.gw.Post(ctx, PathExecutePayment, req, &out); err != nil {
		return domain.PaymentResult{}, err
	}
	return out, nil
}

// Compile-time assertion that Client implements domain.APIClient.
var _ domain.APIClient = (*Client)(nil)

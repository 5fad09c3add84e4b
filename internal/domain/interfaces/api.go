package interfaces

import (
	"context"

	domaintypes "moola/internal/domain/types"
)

// APIClient is how we talk to the remote API server, all with context.
type APIClient interface {
	Login(ctx context.Context, creds domaintypes.Credentials) (domaintypes.TokenPair, error)
	Register(ctx context.Context, reg domaintypes.Registration) error
	UsernameExists(ctx context.Context, username domaintypes.Username) (bool, error)

	ValidateVendor(
		ctx context.Context,
		req domaintypes.VendorValidation,
	) (domaintypes.VendorValidationResult, error)
	ExecuteVendorPayment(
		ctx context.Context,
		req domaintypes.VendorPayment,
	) (domaintypes.PaymentResult, error)
}

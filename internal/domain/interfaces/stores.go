package interfaces

import (
	"context"

	domaintypes "moola/internal/domain/types"
)

// TokenStore persists the access/refresh token pair.
//
// Save and Clear act on both tokens as one unit. Get reports ok=false when either
// token is missing; callers treat that as logged out.
type TokenStore interface {
	Save(ctx context.Context, pair domaintypes.TokenPair) error
	Get(ctx context.Context) (domaintypes.TokenPair, bool, error)
	Clear(ctx context.Context) error
}

// HistoryStore keeps a local record of payment attempts.
type HistoryStore interface {
	Append(ctx context.Context, tx domaintypes.Transaction) error
	List(ctx context.Context, limit int) ([]domaintypes.Transaction, error)
}

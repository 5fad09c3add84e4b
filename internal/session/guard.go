package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"moola/internal/domain"
	"moola/internal/store"
)

// Guard resolves the initial session state from the token store.
type Guard struct {
	tokens domain.TokenStore
	now    func() time.Time
	logger *slog.Logger
	parser *jwt.Parser
}

// NewGuard returns a Guard reading from tokens.
func NewGuard(tokens domain.TokenStore, logger *slog.Logger) *Guard {
	if logger == nil {
		logger = slog.Default()
	}
	return &Guard{
		tokens: tokens,
		now:    time.Now,
		logger: logger,
		parser: jwt.NewParser(),
	}
}

// WithClock overrides the time source.
func (g *Guard) WithClock(now func() time.Time) *Guard {
	g.now = now
	return g
}

// Resolve reports authenticated only for a stored, decodable access token whose
// exp claim lies in the future. It never returns SessionUnknown.
func (g *Guard) Resolve(ctx context.Context) domain.SessionState {
	pair, ok, err := g.tokens.Get(ctx)
	if err != nil {
		g.logger.Warn("reading stored tokens failed", "error", err)
		return domain.SessionUnauthenticated
	}
	if !ok {
		return domain.SessionUnauthenticated
	}

	exp, err := g.expiry(pair.AccessToken)
	if err != nil {
		g.logger.Info("stored access token is not decodable",
			"token_fp", store.Fingerprint(pair.AccessToken), "error", err)
		return domain.SessionUnauthenticated
	}
	if !exp.After(g.now()) {
		g.logger.Info("stored access token expired",
			"token_fp", store.Fingerprint(pair.AccessToken), "exp", exp)
		return domain.SessionUnauthenticated
	}
	return domain.SessionAuthenticated
}

// expiry decodes the exp claim without verifying the signature; the client does
// not hold the server's key.
func (g *Guard) expiry(token string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := g.parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, jwt.ErrTokenRequiredClaimMissing
	}
	return exp.Time, nil
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"moola/internal/api"
	"moola/internal/config"
	"moola/internal/contacts"
	"moola/internal/domain"
	"moola/internal/events"
	"moola/internal/gateway"
	"moola/internal/services/auth"
	"moola/internal/services/payment"
	"moola/internal/session"
	"moola/internal/store"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Tokens   domain.TokenStore
	History  domain.HistoryStore
	Contacts domain.ContactBook
	Events   *events.Bus
	Gateway  *gateway.Gateway
	API      *api.Client
	Session  *session.Manager
	Auth     *auth.Service
	Payments *payment.Service
	Logger   *slog.Logger

	redis *redis.Client
}

// NewWire constructs the dependency graph from cfg. The session manager is
// built but not initialised; call Session.Init once before use.
func NewWire(cfg Config) (*Wire, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	w := &Wire{Logger: logger}

	// Token store backend
	if err := w.buildTokens(cfg); err != nil {
		return nil, err
	}

	// Local file stores
	w.History = store.NewHistoryFileStore(cfg.Home)
	book, err := contacts.NewFileBook(cfg.ContactsFile, cfg.ContactsAccess, cfg.Prompt)
	if err != nil {
		w.Close()
		return nil, err
	}
	w.Contacts = book

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = gateway.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	// Session plumbing
	w.Events = events.New(logger)
	w.Gateway = gateway.New(cfg.APIBaseURL, w.Tokens, w.Events,
		gateway.WithHTTPClient(httpClient),
		gateway.WithLogger(logger),
	)
	w.API = api.New(w.Gateway)
	w.Session = session.NewManager(w.Tokens, w.Events, session.NewGuard(w.Tokens, logger), logger)

	// High-level services
	w.Auth = auth.New(w.API, w.Session, logger)
	w.Payments = payment.New(w.API, w.History, w.Contacts, payment.Settings{
		Currency:    cfg.Currency,
		CountryCode: cfg.CountryCode,
		Payment:     payment.Variant{Pattern: cfg.Payment.Pattern, MinAmount: cfg.Payment.MinAmount},
		Airtime:     payment.Variant{Pattern: cfg.Airtime.Pattern, MinAmount: cfg.Airtime.MinAmount},
	}, logger)

	return w, nil
}

func (w *Wire) buildTokens(cfg Config) error {
	switch cfg.TokenBackend {
	case config.BackendMemory:
		w.Tokens = store.NewMemoryTokenStore()
	case config.BackendRedis:
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("redis url: %w", err)
		}
		w.redis = redis.NewClient(opts)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := w.redis.Ping(ctx).Err(); err != nil {
			w.redis.Close()
			w.redis = nil
			return fmt.Errorf("%w: %w", store.ErrRedisUnavailable, err)
		}
		w.Tokens = store.NewRedisTokenStore(w.redis, cfg.RedisPrefix, 0)
	default:
		passphrase := cfg.StorePassphrase
		if passphrase == "" {
			secret, err := store.LoadOrCreateDeviceSecret(cfg.Home)
			if err != nil {
				return fmt.Errorf("device secret: %w", err)
			}
			passphrase = secret
		}
		w.Tokens = store.NewFileTokenStore(cfg.Home, passphrase)
	}
	return nil
}

// Close tears down the session bus and releases backend connections.
func (w *Wire) Close() {
	if w.Session != nil {
		w.Session.Teardown()
	}
	if w.Events != nil {
		w.Events.Teardown()
	}
	if w.redis != nil {
		_ = w.redis.Close()
	}
}

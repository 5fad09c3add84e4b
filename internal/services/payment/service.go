package payment

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"moola/internal/domain"
	"moola/internal/wizard"
)

// Variant overrides a wizard preset. Zero fields keep the preset value.
type Variant struct {
	Pattern   string
	MinAmount int64
}

// Settings are the configurable parts of every wizard.
type Settings struct {
	Currency    string
	CountryCode string
	Payment     Variant
	Airtime     Variant
}

// Service hands out wizards wired to the API, the history and the address book.
type Service struct {
	vendor   wizard.Vendor
	history  domain.HistoryStore
	book     domain.ContactBook
	settings Settings
	logger   *slog.Logger
}

// New constructs a payment Service. book may be nil.
func New(
	vendor wizard.Vendor,
	history domain.HistoryStore,
	book domain.ContactBook,
	settings Settings,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		vendor:   vendor,
		history:  history,
		book:     book,
		settings: settings,
		logger:   logger,
	}
}

// Services lists what can be paid.
func (s *Service) Services() []domain.Service { return domain.Catalog }

// Start returns a fresh wizard for service. Airtime gets the airtime preset;
// every other catalog entry gets the generic service payment.
func (s *Service) Start(service domain.ServiceType) (*wizard.Wizard, error) {
	entry, ok := domain.LookupService(string(service))
	if !ok {
		return nil, fmt.Errorf("unknown service %q", service)
	}
	service = entry.Type

	cfg := wizard.PaymentConfig(service)
	v := s.settings.Payment
	if service == domain.ServiceAirtime {
		cfg = wizard.AirtimeConfig()
		v = s.settings.Airtime
		if s.settings.CountryCode != "" {
			cfg.CountryCode = s.settings.CountryCode
		}
	}
	if v.Pattern != "" {
		re, err := regexp.Compile(v.Pattern)
		if err != nil {
			return nil, fmt.Errorf("recipient pattern for %s: %w", service, err)
		}
		cfg.Pattern = re
	}
	if v.MinAmount > 0 {
		cfg.MinAmount = v.MinAmount
	}
	if s.settings.Currency != "" {
		cfg.Currency = s.settings.Currency
	}

	opts := []wizard.Option{
		wizard.WithRecorder(s.history),
		wizard.WithLogger(s.logger),
	}
	if s.book != nil {
		opts = append(opts, wizard.WithContacts(s.book))
	}
	return wizard.New(cfg, s.vendor, opts...)
}

// History returns up to limit recorded transactions, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.history.List(ctx, limit)
}

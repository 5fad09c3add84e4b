package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"moola/internal/contacts"
	"moola/internal/domain"
	"moola/internal/gateway"
)

// Vendor is the part of the API client the wizard needs.
type Vendor interface {
	ValidateVendor(ctx context.Context, req domain.VendorValidation) (domain.VendorValidationResult, error)
	ExecuteVendorPayment(ctx context.Context, req domain.VendorPayment) (domain.PaymentResult, error)
}

// Recorder receives one Transaction per submission attempt.
type Recorder interface {
	Append(ctx context.Context, tx domain.Transaction) error
}

// Option configures a Wizard.
type Option func(*Wizard)

// WithRecorder records every submission outcome.
func WithRecorder(r Recorder) Option { return func(w *Wizard) { w.recorder = r } }

// WithContacts enables Search and contact selection over book.
func WithContacts(book domain.ContactBook) Option {
	return func(w *Wizard) { w.book = book }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(w *Wizard) { w.logger = l } }

// WithClock overrides the time source used for history records.
func WithClock(now func() time.Time) Option { return func(w *Wizard) { w.now = now } }

// Wizard is one payment flow. It is safe for concurrent use, but only one
// Next/Back/Submit runs at a time; the others get ErrBusy.
type Wizard struct {
	cfg      Config
	vendor   Vendor
	recorder Recorder
	book     domain.ContactBook
	searcher *contacts.Searcher
	logger   *slog.Logger
	now      func() time.Time

	mu      sync.Mutex
	step    Step
	input   Input
	status  Status
	loading bool
	errs    *ValidationError
	message string
}

// New returns a wizard at the recipient step.
func New(cfg Config, vendor Vendor, opts ...Option) (*Wizard, error) {
	if err := cfg.check(); err != nil {
		return nil, err
	}
	w := &Wizard{
		cfg:    cfg,
		vendor: vendor,
		logger: slog.Default(),
		now:    time.Now,
		step:   RecipientStep{},
		status: StatusIdle,
	}
	for _, o := range opts {
		o(w)
	}
	if w.book != nil {
		w.searcher = contacts.NewSearcher(w.book, contacts.Options{
			Pattern:      cfg.Pattern,
			MatchNumbers: cfg.MatchNumbers,
			MinQuery:     cfg.MinQuery,
		})
	}
	w.logger = w.logger.With("service", string(cfg.Service))
	return w, nil
}

// Config returns the variant configuration.
func (w *Wizard) Config() Config { return w.cfg }

// Step returns the current step.
func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Input returns the raw input.
func (w *Wizard) Input() Input {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.input
}

// Status returns the submission state.
func (w *Wizard) Status() Status {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.status
}

// Loading reports whether a step or submission is in flight.
func (w *Wizard) Loading() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.loading
}

// Errors returns the field errors from the last failed transition, or nil.
func (w *Wizard) Errors() *ValidationError {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errs
}

// Message is the vendor's message from the last submission.
func (w *Wizard) Message() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.message
}

// SetRecipient sets the raw recipient.
func (w *Wizard) SetRecipient(s string) { w.edit(func(in *Input) { in.Recipient = s }) }

// SetAmount sets the raw amount.
func (w *Wizard) SetAmount(s string) { w.edit(func(in *Input) { in.Amount = s }) }

// SetReference sets the raw reference.
func (w *Wizard) SetReference(s string) { w.edit(func(in *Input) { in.Reference = s }) }

func (w *Wizard) edit(fn func(*Input)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.input)
}

// Search looks query up. A query that is already a valid number becomes the
// recipient without touching the address book.
func (w *Wizard) Search(ctx context.Context, query string) (contacts.Result, error) {
	w.edit(func(in *Input) { in.Query = query })
	if w.searcher == nil {
		if d := contacts.Digits(query); w.cfg.Pattern.MatchString(d) {
			w.SetRecipient(d)
			return contacts.Result{Direct: d}, nil
		}
		return contacts.Result{Unavailable: true}, nil
	}
	res, err := w.searcher.Search(ctx, query)
	if err != nil {
		return res, err
	}
	if res.Direct != "" {
		w.SetRecipient(res.Direct)
	}
	return res, nil
}

// SelectContact makes c's first number the recipient. When the variant checks
// the recipient with the vendor, the wizard also advances.
func (w *Wizard) SelectContact(ctx context.Context, c domain.Contact) error {
	number := ""
	if len(c.PhoneNumbers) > 0 {
		number = contacts.Digits(c.PhoneNumbers[0])
	}
	if number == "" {
		return ErrNoContactNo
	}
	w.edit(func(in *Input) {
		in.Query = c.Name
		in.Recipient = number
	})
	if _, ok := w.Step().(RecipientStep); ok && w.cfg.Verify == VerifyRecipient {
		return w.Next(ctx)
	}
	return nil
}

// Next validates the current step and, when it passes and any vendor check
// succeeds, moves to the following step. On failure the step is unchanged and
// the returned *ValidationError is also available from Errors.
func (w *Wizard) Next(ctx context.Context) error {
	step, in, err := w.begin()
	if err != nil {
		return err
	}

	next, err := advance(w.cfg, step, in)
	if err == nil {
		next, err = w.verify(ctx, next)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			w.errs = verr
		}
		return err
	}
	w.step, w.errs = next, nil
	w.logger.Debug("wizard advanced", "step", next.Number())
	return nil
}

// Back returns to the previous step, keeping all input.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.status == StatusSuccess:
		return ErrCompleted
	case w.loading:
		return ErrBusy
	}
	w.step = retreat(w.cfg, w.step)
	w.errs = nil
	w.status, w.message = StatusIdle, ""
	return nil
}

// Submit executes the payment from the confirmation step. A failure leaves the
// wizard on the confirmation step with status failed, so Submit may be retried.
func (w *Wizard) Submit(ctx context.Context) error {
	step, _, err := w.begin()
	if err != nil {
		return err
	}
	confirm, ok := step.(ConfirmStep)
	if !ok {
		w.mu.Lock()
		w.loading = false
		w.mu.Unlock()
		return ErrNotConfirm
	}

	w.mu.Lock()
	w.status, w.message = StatusPending, ""
	w.mu.Unlock()

	res, err := w.vendor.ExecuteVendorPayment(ctx, domain.VendorPayment{
		PhoneNumber:    confirm.Recipient,
		Amount:         strconv.FormatInt(confirm.Amount, 10),
		CurrencySymbol: w.cfg.Currency,
		ServiceType:    w.cfg.Service,
		TrxID:          confirm.TrxID,
	})

	status, message := StatusSuccess, res.Message
	switch {
	case err != nil:
		status, message = StatusFailed, gateway.MessageOf(err, "Network error")
	case !res.Success:
		status = StatusFailed
		if message == "" {
			message = "Payment failed"
		}
		err = fmt.Errorf("%w: %s", ErrDeclined, message)
	}

	w.record(ctx, confirm, status, message)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.loading = false
	w.status, w.message = status, message
	w.logger.Info("payment submitted", "status", string(status), "trx_id", confirm.TrxID)
	return err
}

func (w *Wizard) begin() (Step, Input, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch {
	case w.status == StatusSuccess:
		return nil, Input{}, ErrCompleted
	case w.loading:
		return nil, Input{}, ErrBusy
	}
	w.loading = true
	return w.step, w.input, nil
}

// verify runs the vendor check attached to entering next, if any.
func (w *Wizard) verify(ctx context.Context, next Step) (Step, error) {
	switch s := next.(type) {
	case AmountStep:
		if w.cfg.Verify != VerifyRecipient {
			return s, nil
		}
		trx, err := w.validate(ctx, s.Recipient, FieldRecipient)
		if err != nil {
			return nil, err
		}
		s.TrxID = trx
		return s, nil
	case ConfirmStep:
		if w.cfg.Verify != VerifyAccount {
			return s, nil
		}
		account, field := s.Recipient, FieldRecipient
		if s.Reference != "" {
			account, field = s.Reference, FieldReference
		}
		trx, err := w.validate(ctx, account, field)
		if err != nil {
			return nil, err
		}
		s.TrxID = trx
		return s, nil
	}
	return next, nil
}

func (w *Wizard) validate(ctx context.Context, account string, field Field) (string, error) {
	res, err := w.vendor.ValidateVendor(ctx, domain.VendorValidation{
		CustomerAccountNumber: account,
		ServiceType:           w.cfg.Service,
	})
	if err != nil {
		e := invalid(field, gateway.MessageOf(err, "Network error"))
		e.Err = err
		return "", e
	}
	if !res.Success {
		msg := res.Message
		if msg == "" {
			msg = "Validation failed"
		}
		return "", invalid(field, msg)
	}
	return res.Data.TrxID, nil
}

func (w *Wizard) record(ctx context.Context, c ConfirmStep, status Status, message string) {
	if w.recorder == nil {
		return
	}
	tx := domain.Transaction{
		ID:        uuid.NewString(),
		Service:   w.cfg.Service,
		Recipient: c.Recipient,
		Reference: c.Reference,
		Amount:    c.Amount,
		Currency:  w.cfg.Currency,
		TrxID:     c.TrxID,
		Status:    domain.TransactionFailed,
		Message:   message,
		CreatedAt: w.now().UTC(),
	}
	if status == StatusSuccess {
		tx.Status = domain.TransactionSuccess
	}
	if err := w.recorder.Append(ctx, tx); err != nil {
		w.logger.Warn("recording transaction failed", "error", err)
	}
}

// advance is the pure part of a forward transition.
func advance(cfg Config, step Step, in Input) (Step, error) {
	switch s := step.(type) {
	case RecipientStep:
		r, verr := cfg.recipient(in.Recipient)
		if verr != nil {
			return nil, verr
		}
		return AmountStep{Recipient: r}, nil
	case AmountStep:
		amount, verr := cfg.amount(in.Amount)
		if verr != nil {
			return nil, verr
		}
		return ConfirmStep{
			Recipient: s.Recipient,
			TrxID:     s.TrxID,
			Amount:    amount,
			Reference: strings.TrimSpace(in.Reference),
		}, nil
	default:
		return nil, ErrFinalStep
	}
}

func retreat(cfg Config, step Step) Step {
	switch s := step.(type) {
	case ConfirmStep:
		back := AmountStep{Recipient: s.Recipient}
		if cfg.Verify == VerifyRecipient {
			back.TrxID = s.TrxID
		}
		return back
	default:
		return RecipientStep{}
	}
}

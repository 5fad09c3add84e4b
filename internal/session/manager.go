package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"moola/internal/domain"
)

// ErrNotInitialized is returned by operations that need Init to have run.
var ErrNotInitialized = errors.New("session manager not initialized")

// ChangeFunc observes session state changes.
type ChangeFunc func(state domain.SessionState, root domain.Root)

// Manager owns the session state for the life of the process.
type Manager struct {
	tokens domain.TokenStore
	events domain.SessionEvents
	guard  *Guard
	logger *slog.Logger

	once      sync.Once
	mu        sync.Mutex
	state     domain.SessionState
	observers []ChangeFunc
}

// NewManager wires a Manager. Call Init before use and Teardown at shutdown.
func NewManager(tokens domain.TokenStore, events domain.SessionEvents, guard *Guard, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		tokens: tokens,
		events: events,
		guard:  guard,
		logger: logger,
		state:  domain.SessionUnknown,
	}
}

// Init runs the startup check exactly once and subscribes to session events.
// Later calls return the current state without re-checking.
func (m *Manager) Init(ctx context.Context) domain.SessionState {
	m.once.Do(func() {
		initial := m.guard.Resolve(ctx)
		m.events.On(domain.EventLoginSuccess, func() { m.apply(domain.EventLoginSuccess) })
		m.events.On(domain.EventLogout, func() { m.apply(domain.EventLogout) })
		m.set(initial)
	})
	return m.State()
}

// State returns the current state.
func (m *Manager) State() domain.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Root returns the navigator for the current state.
func (m *Manager) Root() domain.Root { return domain.RootFor(m.State()) }

// OnChange registers fn to be called after every state change.
func (m *Manager) OnChange(fn ChangeFunc) {
	if fn == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.observers = append(m.observers, fn)
}

// Login stores pair and announces LOGIN_SUCCESS.
func (m *Manager) Login(ctx context.Context, pair domain.TokenPair) error {
	if err := m.tokens.Save(ctx, pair); err != nil {
		return err
	}
	m.events.Emit(domain.EventLoginSuccess)
	return nil
}

// Logout clears the stored tokens and announces LOGOUT.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.tokens.Clear(ctx); err != nil {
		return err
	}
	m.events.Emit(domain.EventLogout)
	return nil
}

// Teardown drops every event subscription and observer.
func (m *Manager) Teardown() {
	m.events.RemoveAllListeners()
	m.mu.Lock()
	m.observers = nil
	m.mu.Unlock()
}

func (m *Manager) apply(ev domain.SessionEvent) {
	m.set(transition(m.State(), ev))
}

func (m *Manager) set(next domain.SessionState) {
	m.mu.Lock()
	prev := m.state
	m.state = next
	obs := append([]ChangeFunc(nil), m.observers...)
	m.mu.Unlock()

	if prev == next {
		return
	}
	root := domain.RootFor(next)
	m.logger.Info("session state changed", "from", prev.String(), "to", next.String(), "root", string(root))
	for _, fn := range obs {
		fn(next, root)
	}
}

// transition is the session state machine. Unknown only exists before Init.
func transition(_ domain.SessionState, ev domain.SessionEvent) domain.SessionState {
	switch ev {
	case domain.EventLoginSuccess:
		return domain.SessionAuthenticated
	default:
		return domain.SessionUnauthenticated
	}
}

package events

import (
	"log/slog"
	"sync"

	"moola/internal/domain"
)

// Bus is an owned, typed observer list for session events.
type Bus struct {
	mu       sync.Mutex
	handlers map[domain.SessionEvent][]func()
	logger   *slog.Logger
}

// New returns an empty bus. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus{
		handlers: make(map[domain.SessionEvent][]func()),
		logger:   logger,
	}
}

// On registers handler for event. Handlers run in registration order.
func (b *Bus) On(event domain.SessionEvent, handler func()) {
	if handler == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[event] = append(b.handlers[event], handler)
}

// Emit calls every handler currently registered for event, synchronously.
//
// The handler list is snapshotted first, so a handler may register more handlers
// or tear the bus down without deadlocking; such changes apply to later emits.
func (b *Bus) Emit(event domain.SessionEvent) {
	b.mu.Lock()
	hs := append([]func(){}, b.handlers[event]...)
	b.mu.Unlock()

	b.logger.Debug("session event", "event", string(event), "listeners", len(hs))
	for _, h := range hs {
		h()
	}
}

// Listeners returns the number of handlers registered for event.
func (b *Bus) Listeners(event domain.SessionEvent) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[event])
}

// RemoveAllListeners drops every handler for every event.
func (b *Bus) RemoveAllListeners() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = make(map[domain.SessionEvent][]func())
}

// Teardown is called once at shutdown.
func (b *Bus) Teardown() { b.RemoveAllListeners() }

// Compile-time assertion that Bus implements domain.SessionEvents.
var _ domain.SessionEvents = (*Bus)(nil)

package events_test

import (
	"testing"

	"moola/internal/domain"
	"moola/internal/events"
)

func TestEmit_NoListeners_DoesNotBlock(t *testing.T) {
	bus := events.New(nil)
	done := make(chan struct{})
	go func() {
		bus.Emit(domain.EventLogout)
		close(done)
	}()
	<-done
	if n := bus.Listeners(domain.EventLogout); n != 0 {
		t.Fatalf("listeners = %d, want 0", n)
	}
}

func TestEmit_RegistrationOrder(t *testing.T) {
	bus := events.New(nil)
	var got []int
	bus.On(domain.EventLoginSuccess, func() { got = append(got, 1) })
	bus.On(domain.EventLoginSuccess, func() { got = append(got, 2) })
	bus.On(domain.EventLogout, func() { got = append(got, 99) })

	bus.Emit(domain.EventLoginSuccess)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("delivery = %v, want [1 2]", got)
	}
}

func TestEmit_LostWhenNoListenerYet(t *testing.T) {
	bus := events.New(nil)
	bus.Emit(domain.EventLogout)

	calls := 0
	bus.On(domain.EventLogout, func() { calls++ })
	if calls != 0 {
		t.Fatalf("event was buffered: calls = %d", calls)
	}
	bus.Emit(domain.EventLogout)
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRemoveAllListeners(t *testing.T) {
	bus := events.New(nil)
	calls := 0
	bus.On(domain.EventLoginSuccess, func() { calls++ })
	bus.On(domain.EventLogout, func() { calls++ })

	bus.RemoveAllListeners()
	bus.Emit(domain.EventLoginSuccess)
	bus.Emit(domain.EventLogout)

	if calls != 0 {
		t.Fatalf("calls = %d after teardown", calls)
	}
}

func TestHandlerMayTearDownDuringEmit(t *testing.T) {
	bus := events.New(nil)
	second := false
	bus.On(domain.EventLogout, func() { bus.Teardown() })
	bus.On(domain.EventLogout, func() { second = true })

	bus.Emit(domain.EventLogout)
	if !second {
		t.Fatal("snapshotted handler was not called")
	}
	if n := bus.Listeners(domain.EventLogout); n != 0 {
		t.Fatalf("listeners = %d after teardown", n)
	}
}

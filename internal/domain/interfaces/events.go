package interfaces

import domaintypes "moola/internal/domain/types"

// SessionEvents is a synchronous publish/subscribe channel for session signals.
type SessionEvents interface {
	On(event domaintypes.SessionEvent, handler func())
	Emit(event domaintypes.SessionEvent)
	RemoveAllListeners()
}

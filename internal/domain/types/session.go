package types

// SessionState is derived from the stored tokens and session events.
type SessionState int

const (
	SessionUnknown SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

// String returns a lowercase name for the state.
func (s SessionState) String() string {
	switch s {
	case SessionAuthenticated:
		return "authenticated"
	case SessionUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// Root is the top-level navigator chosen for a session state.
type Root string

const (
	RootNone Root = ""
	RootAuth Root = "auth"
	RootApp  Root = "app"
)

// RootFor maps a session state to the navigator that should be shown.
func RootFor(s SessionState) Root {
	switch s {
	case SessionAuthenticated:
		return RootApp
	case SessionUnauthenticated:
		return RootAuth
	default:
		return RootNone
	}
}

// SessionEvent is a fire-and-forget signal broadcast on the session bus.
type SessionEvent string

const (
	EventLoginSuccess SessionEvent = "LOGIN_SUCCESS"
	EventLogout       SessionEvent = "LOGOUT"
)

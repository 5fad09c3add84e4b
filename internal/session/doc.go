// Package session decides and tracks whether the user is signed in.
//
// Guard runs once at startup and inspects the stored access token's expiry.
// Manager owns the resulting state and afterwards changes it only in response to
// LOGIN_SUCCESS and LOGOUT events; it never re-polls token expiry, so a token
// that lapses while the process runs is noticed on the next 401.
package session

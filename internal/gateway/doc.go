// Package gateway is the authenticated request layer for every outbound API call.
//
// It attaches the stored access token as a bearer credential and treats a 401 as
// the transition from authenticated to unauthenticated: the token store is
// cleared and LOGOUT is emitted before the caller sees the error. It never
// retries and never renews tokens; the refresh token is stored but unused.
//
// Non-2xx responses are returned as *StatusError carrying the HTTP status and
// the server's message. Transport errors are returned as they came.
package gateway

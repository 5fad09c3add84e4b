// Package auth signs users in, registers new accounts and signs them out.
//
// Form validation happens here, before any request; the session manager owns
// what happens to the tokens afterwards.
package auth

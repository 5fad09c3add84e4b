// Package contacts reads the local address book and searches it for payment
// recipients.
//
// Access is asked for once per Book. A refusal is reported as a result, never as
// an error, and leaves search inert: callers fall back to typed numbers.
package contacts

// Package payment builds payment wizards from configuration and keeps the local
// transaction history.
package payment

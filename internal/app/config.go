package app

import (
	"log/slog"
	"net/http"

	"moola/internal/config"
	"moola/internal/contacts"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	config.Config

	HTTP   *http.Client        // optional; defaults to a client with Timeout
	Logger *slog.Logger        // optional; defaults to slog.Default()
	Prompt contacts.PromptFunc // asks for address-book access under the prompt policy
}

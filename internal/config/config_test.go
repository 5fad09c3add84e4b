package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"moola/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Home != home || cfg.TokenBackend != config.BackendFile {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Timeout != 120*time.Second {
		t.Fatalf("timeout = %s", cfg.Timeout)
	}
	if cfg.Airtime.MinAmount != 100 || cfg.Airtime.Pattern != `^07[2389]\d{7}$` {
		t.Fatalf("airtime = %+v", cfg.Airtime)
	}
	if cfg.ContactsFile != filepath.Join(home, "contacts.json") {
		t.Fatalf("contacts file = %s", cfg.ContactsFile)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	yaml := "api_base_url: http://file.example/v1\npayment:\n  min_amount: 250\ncurrency: USD\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("MOOLA_API_BASE_URL", "http://env.example/v1")
	t.Setenv("MOOLA_PAYMENT_MIN_AMOUNT", "300")
	t.Setenv("MOOLA_TOKEN_BACKEND", "memory")

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://env.example/v1" {
		t.Fatalf("api base = %s", cfg.APIBaseURL)
	}
	if cfg.Payment.MinAmount != 300 {
		t.Fatalf("min amount = %d", cfg.Payment.MinAmount)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("file value lost: currency = %s", cfg.Currency)
	}
	if cfg.TokenBackend != config.BackendMemory {
		t.Fatalf("backend = %s", cfg.TokenBackend)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("MOOLA_TOKEN_BACKEND", "carrier-pigeon")
	if _, err := config.Load(t.TempDir()); !errors.Is(err, config.ErrUnknownBackend) {
		t.Fatalf("want ErrUnknownBackend, got %v", err)
	}
}

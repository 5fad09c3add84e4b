package store

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"path/filepath"
	"strings"
)

const deviceSecretFilename = "device.key"

// LoadOrCreateDeviceSecret returns the per-install secret used to seal the token
// file when no passphrase is configured, creating it on first use.
func LoadOrCreateDeviceSecret(dir string) (string, error) {
	path := filepath.Join(dir, deviceSecretFilename)
	b, err := readFile(path)
	if err != nil {
		return "", err
	}
	if b != nil {
		secret := strings.TrimSpace(string(b))
		if secret == "" {
			return "", errors.New("device secret file is empty")
		}
		return secret, nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	secret := hex.EncodeToString(raw)
	if err := writeFile(path, []byte(secret+"\n"), 0o600); err != nil {
		return "", err
	}
	return secret, nil
}

package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"path/filepath"
	"sync"

	"moola/internal/domain"
)

const tokensFilename = "tokens.json.enc"

// Storage keys for the two tokens. They name the entries in every backend.
const (
	AccessTokenKey  = "accessToken"
	RefreshTokenKey = "refreshToken"
)

// ErrIncompleteTokenPair is returned when saving a pair with a missing member.
var ErrIncompleteTokenPair = errors.New("token pair must carry both access and refresh tokens")

// FileTokenStore persists the token pair to a single sealed file.
//
// Both tokens live in one blob written via temp file + rename, so a reader never
// observes half a pair.
type FileTokenStore struct {
	dir        string
	passphrase string
	mu         sync.Mutex
}

// NewFileTokenStore returns a FileTokenStore rooted at dir, sealing with passphrase.
func NewFileTokenStore(dir, passphrase string) *FileTokenStore {
	return &FileTokenStore{dir: dir, passphrase: passphrase}
}

// Save seals and writes pair, replacing any stored pair.
func (s *FileTokenStore) Save(_ context.Context, pair domain.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompleteTokenPair
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(map[string]string{
		AccessTokenKey:  pair.AccessToken,
		RefreshTokenKey: pair.RefreshToken,
	})
	if err != nil {
		return err
	}
	defer wipe(raw)

	N, r, p := scryptParamsDefault()
	blob, err := seal(s.passphrase, raw, N, r, p)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(s.dir, tokensFilename), blob, 0o600)
}

// Get reads the stored pair. ok is false when nothing (or half a pair) is stored.
func (s *FileTokenStore) Get(_ context.Context) (domain.TokenPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := readFile(filepath.Join(s.dir, tokensFilename))
	if err != nil || blob == nil {
		return domain.TokenPair{}, false, err
	}
	raw, err := open(s.passphrase, blob)
	if err != nil {
		return domain.TokenPair{}, false, err
	}
	defer wipe(raw)

	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return domain.TokenPair{}, false, err
	}
	return pairFromEntries(entries[AccessTokenKey], entries[RefreshTokenKey])
}

// Clear removes the stored pair. Clearing an empty store is a no-op.
func (s *FileTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return removeFile(filepath.Join(s.dir, tokensFilename))
}

// MemoryTokenStore keeps the pair in process memory only.
type MemoryTokenStore struct {
	mu   sync.Mutex
	pair domain.TokenPair
}

// NewMemoryTokenStore returns an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore { return &MemoryTokenStore{} }

// Save replaces the stored pair.
func (s *MemoryTokenStore) Save(_ context.Context, pair domain.TokenPair) error {
	if !pair.Complete() {
		return ErrIncompleteTokenPair
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = pair
	return nil
}

// Get returns the stored pair.
func (s *MemoryTokenStore) Get(_ context.Context) (domain.TokenPair, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pairFromEntries(s.pair.AccessToken, s.pair.RefreshToken)
}

// Clear drops the stored pair.
func (s *MemoryTokenStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pair = domain.TokenPair{}
	return nil
}

func pairFromEntries(access, refresh string) (domain.TokenPair, bool, error) {
	if access == "" || refresh == "" {
		return domain.TokenPair{}, false, nil
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, true, nil
}

// Fingerprint returns a short hex digest of a token, safe to log.
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:6])
}

// Compile-time assertions that the token stores implement domain.TokenStore.
var (
	_ domain.TokenStore = (*FileTokenStore)(nil)
	_ domain.TokenStore = (*MemoryTokenStore)(nil)
)

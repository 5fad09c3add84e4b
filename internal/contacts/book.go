package contacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"moola/internal/domain"
)

// Access policies understood by NewFileBook.
const (
	PolicyPrompt  = "prompt"
	PolicyGranted = "granted"
	PolicyDenied  = "denied"
)

// ErrUnknownPolicy is returned for an unrecognised access policy.
var ErrUnknownPolicy = errors.New("contacts: unknown access policy")

// PromptFunc asks the user whether the address book may be read.
type PromptFunc func(ctx context.Context) (bool, error)

// FileBook is an address book backed by a JSON file of contacts.
type FileBook struct {
	path   string
	policy string
	prompt PromptFunc

	mu     sync.Mutex
	access domain.ContactAccess
}

// NewFileBook returns a book reading path. With PolicyPrompt, prompt decides on
// the first RequestAccess; a nil prompt under PolicyPrompt denies.
func NewFileBook(path, policy string, prompt PromptFunc) (*FileBook, error) {
	switch policy {
	case "", PolicyPrompt:
		policy = PolicyPrompt
	case PolicyGranted, PolicyDenied:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, policy)
	}
	return &FileBook{path: path, policy: policy, prompt: prompt}, nil
}

// RequestAccess resolves access once and remembers the answer.
func (b *FileBook) RequestAccess(ctx context.Context) (domain.ContactAccess, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.access != domain.ContactAccessUndetermined {
		return b.access, nil
	}

	switch b.policy {
	case PolicyGranted:
		b.access = domain.ContactAccessGranted
	case PolicyDenied:
		b.access = domain.ContactAccessDenied
	default:
		allowed := false
		if b.prompt != nil {
			ok, err := b.prompt(ctx)
			if err != nil {
				return domain.ContactAccessUndetermined, err
			}
			allowed = ok
		}
		b.access = domain.ContactAccessDenied
		if allowed {
			b.access = domain.ContactAccessGranted
		}
	}
	return b.access, nil
}

// Contacts returns every entry in the file. A missing file is an empty book.
func (b *FileBook) Contacts(_ context.Context) ([]domain.Contact, error) {
	b.mu.Lock()
	granted := b.access == domain.ContactAccessGranted
	b.mu.Unlock()
	if !granted {
		return nil, nil
	}

	raw, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var out []domain.Contact
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("contacts: parse %s: %w", b.path, err)
	}
	return out, nil
}

// Digits strips everything but ASCII digits.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// stripSpace removes all whitespace.
func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

var _ domain.ContactBook = (*FileBook)(nil)

package contacts

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"moola/internal/domain"
)

// Options tunes a Searcher.
type Options struct {
	// Pattern recognises a complete recipient number typed directly.
	Pattern *regexp.Regexp

	// MatchNumbers also matches the query against whitespace-stripped numbers.
	MatchNumbers bool

	// MinQuery is the shortest query that triggers a lookup.
	MinQuery int
}

// Result is the outcome of one search.
type Result struct {
	// Direct is set when the query itself is a valid number.
	Direct string

	// Matches lists contacts with at least one number.
	Matches []domain.Contact

	// Unavailable reports that address-book access was refused.
	Unavailable bool
}

// Searcher filters a ContactBook by free-text queries.
type Searcher struct {
	book domain.ContactBook
	opts Options

	mu      sync.Mutex
	decided bool
	access  domain.ContactAccess
}

// NewSearcher returns a Searcher over book.
func NewSearcher(book domain.ContactBook, opts Options) *Searcher {
	return &Searcher{book: book, opts: opts}
}

// Search resolves query to a direct number or a list of matching contacts.
// Access is requested on the first lookup that needs the book.
func (s *Searcher) Search(ctx context.Context, query string) (Result, error) {
	if s.opts.Pattern != nil {
		if digits := Digits(query); s.opts.Pattern.MatchString(digits) {
			return Result{Direct: digits}, nil
		}
	}
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" || len(q) < s.opts.MinQuery {
		return Result{}, nil
	}

	access, err := s.requestAccess(ctx)
	if err != nil {
		return Result{}, err
	}
	if access != domain.ContactAccessGranted {
		return Result{Unavailable: true}, nil
	}

	all, err := s.book.Contacts(ctx)
	if err != nil {
		return Result{}, err
	}
	var res Result
	for _, c := range all {
		if len(c.PhoneNumbers) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), q) || (s.opts.MatchNumbers && numberContains(c, q)) {
			res.Matches = append(res.Matches, c)
		}
	}
	return res, nil
}

func (s *Searcher) requestAccess(ctx context.Context) (domain.ContactAccess, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.decided {
		return s.access, nil
	}
	access, err := s.book.RequestAccess(ctx)
	if err != nil {
		return access, err
	}
	s.decided, s.access = true, access
	return access, nil
}

func numberContains(c domain.Contact, q string) bool {
	for _, n := range c.PhoneNumbers {
		if strings.Contains(stripSpace(n), q) {
			return true
		}
	}
	return false
}

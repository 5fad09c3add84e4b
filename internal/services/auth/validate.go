package auth

import (
	"regexp"
	"sort"
	"strings"

	"moola/internal/domain"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10,15}$`)
)

// Sign-up has three steps.
const (
	StepAccount  = 1 // email, username, password
	StepName     = 2 // first and last name
	StepIdentity = 3 // national id and phone number
)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "invalid form: " + strings.Join(parts, "; ")
}

func (e FieldErrors) orNil() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ValidateCredentials checks the sign-in form. The login field accepts either a
// username or an e-mail address.
func ValidateCredentials(c domain.Credentials) error {
	errs := FieldErrors{}
	login := strings.TrimSpace(c.Username)
	if strings.Contains(login, "@") {
		if !emailPattern.MatchString(login) {
			errs["username"] = "Invalid email address"
		}
	} else if len(login) < 3 {
		errs["username"] = "Username must be at least 3 characters"
	}
	if len(c.Password) < 6 {
		errs["password"] = "Password must be at least 6 characters"
	}
	return errs.orNil()
}

// ValidateStep checks the fields belonging to one sign-up step.
func ValidateStep(step int, r domain.Registration) error {
	errs := FieldErrors{}
	switch step {
	case StepAccount:
		if !emailPattern.MatchString(r.Email) {
			errs["email"] = "Invalid email address"
		}
		if len(r.Username) < 3 {
			errs["username"] = "Username must be at least 3 characters"
		}
		if len(r.Password) < 6 {
			errs["password"] = "Password must be at least 6 characters"
		}
	case StepName:
		if strings.TrimSpace(r.FirstName) == "" {
			errs["firstName"] = "First name is required"
		}
		if strings.TrimSpace(r.LastName) == "" {
			errs["lastName"] = "Last name is required"
		}
	case StepIdentity:
		if strings.TrimSpace(r.Identity) == "" {
			errs["identity"] = "ID is required"
		}
		if !phonePattern.MatchString(r.PhoneNumber) {
			errs["phoneNumber"] = "Phone number must be 10-15 digits"
		}
	}
	return errs.orNil()
}

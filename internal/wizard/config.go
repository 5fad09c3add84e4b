package wizard

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"moola/internal/contacts"
	"moola/internal/domain"
)

// Verify selects where the vendor validation call happens.
type Verify int

const (
	// VerifyNone never calls the vendor before submitting.
	VerifyNone Verify = iota
	// VerifyRecipient validates the number when leaving the recipient step.
	VerifyRecipient
	// VerifyAccount validates the reference (or the number) when leaving the
	// amount step.
	VerifyAccount
)

// Default patterns and limits.
const (
	PaymentPattern   = `^07[2-9]\d{7}$`
	AirtimePattern   = `^07[2389]\d{7}$`
	AirtimeMinAmount = 100
	DefaultCurrency  = "Rwf"
	DefaultCountry   = "250"
)

// Config describes one wizard variant.
type Config struct {
	Service domain.ServiceType

	// Pattern validates the recipient's digits.
	Pattern *regexp.Regexp

	// MatchTail, when positive, checks only the last MatchTail digits.
	MatchTail int

	// CountryCode, when set, sends recipients in +<code> international form.
	CountryCode string
	MinAmount   int64
	Currency    string
	Verify      Verify

	// MatchNumbers lets contact search match on phone numbers too.
	MatchNumbers bool
	MinQuery     int
}

// AirtimeConfig is the airtime preset.
func AirtimeConfig() Config {
	return Config{
		Service:     domain.ServiceAirtime,
		Pattern:     regexp.MustCompile(AirtimePattern),
		MatchTail:   10,
		CountryCode: DefaultCountry,
		MinAmount:   AirtimeMinAmount,
		Currency:    DefaultCurrency,
		Verify:      VerifyRecipient,
	}
}

// PaymentConfig is the generic service payment preset.
func PaymentConfig(service domain.ServiceType) Config {
	return Config{
		Service:      service,
		Pattern:      regexp.MustCompile(PaymentPattern),
		MinAmount:    1,
		Currency:     DefaultCurrency,
		Verify:       VerifyAccount,
		MatchNumbers: true,
		MinQuery:     2,
	}
}

func (c Config) check() error {
	switch {
	case c.Service == "":
		return errors.New("wizard: service type required")
	case c.Pattern == nil:
		return errors.New("wizard: recipient pattern required")
	case c.Currency == "":
		return errors.New("wizard: currency required")
	}
	return nil
}

// recipient validates raw and returns the form sent to the vendor.
func (c Config) recipient(raw string) (string, *ValidationError) {
	digits := contacts.Digits(raw)
	candidate := digits
	if c.MatchTail > 0 && len(digits) > c.MatchTail {
		candidate = digits[len(digits)-c.MatchTail:]
	}
	if digits == "" || !c.Pattern.MatchString(candidate) {
		return "", invalid(FieldRecipient, "Enter a valid phone number")
	}
	if c.CountryCode == "" {
		return digits, nil
	}
	return international(digits, c.CountryCode), nil
}

func (c Config) amount(raw string) (int64, *ValidationError) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < c.MinAmount || n <= 0 {
		return 0, invalid(FieldAmount, fmt.Sprintf("Enter a valid amount (min %d)", max(c.MinAmount, 1)))
	}
	return n, nil
}

func international(digits, cc string) string {
	switch {
	case strings.HasPrefix(digits, cc):
		return "+" + digits
	case strings.HasPrefix(digits, "0"):
		return "+" + cc + digits[1:]
	default:
		return "+" + digits
	}
}

package types

// Contact is an address-book entry offered as a payment recipient.
type Contact struct {
	Name         string   `json:"name"`
	PhoneNumbers []string `json:"phoneNumbers"`
}

// ContactAccess is the outcome of asking for address-book access.
type ContactAccess int

const (
	ContactAccessUndetermined ContactAccess = iota
	ContactAccessGranted
	ContactAccessDenied
)

// String returns a lowercase name for the access result.
func (a ContactAccess) String() string {
	switch a {
	case ContactAccessGranted:
		return "granted"
	case ContactAccessDenied:
		return "denied"
	default:
		return "undetermined"
	}
}

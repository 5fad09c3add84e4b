package interfaces

import (
	"context"

	domaintypes "moola/internal/domain/types"
)

// ContactBook is the device address book.
type ContactBook interface {
	// RequestAccess asks for permission to read contacts. A denial is a result,
	// not an error.
	RequestAccess(ctx context.Context) (domaintypes.ContactAccess, error)
	Contacts(ctx context.Context) ([]domaintypes.Contact, error)
}

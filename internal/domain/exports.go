package domain

import (
	interfaces "moola/internal/domain/interfaces"
	types "moola/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username               = types.Username
	ServiceType            = types.ServiceType
	Service                = types.Service
	TokenPair              = types.TokenPair
	SessionState           = types.SessionState
	SessionEvent           = types.SessionEvent
	Root                   = types.Root
	Contact                = types.Contact
	ContactAccess          = types.ContactAccess
	Credentials            = types.Credentials
	Registration           = types.Registration
	VendorValidation       = types.VendorValidation
	VendorValidationResult = types.VendorValidationResult
	VendorPayment          = types.VendorPayment
	PaymentResult          = types.PaymentResult
	Transaction            = types.Transaction
	TransactionStatus      = types.TransactionStatus
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	TokenStore    = interfaces.TokenStore
	HistoryStore  = interfaces.HistoryStore
	SessionEvents = interfaces.SessionEvents
	APIClient     = interfaces.APIClient
	ContactBook   = interfaces.ContactBook
)

// Re-exported constants.
const (
	ServiceAirtime     = types.ServiceAirtime
	ServiceElectricity = types.ServiceElectricity
	ServiceRRA         = types.ServiceRRA
	ServiceWater       = types.ServiceWater
	ServiceInternet    = types.ServiceInternet

	SessionUnknown         = types.SessionUnknown
	SessionAuthenticated   = types.SessionAuthenticated
	SessionUnauthenticated = types.SessionUnauthenticated

	RootNone = types.RootNone
	RootAuth = types.RootAuth
	RootApp  = types.RootApp

	EventLoginSuccess = types.EventLoginSuccess
	EventLogout       = types.EventLogout

	ContactAccessUndetermined = types.ContactAccessUndetermined
	ContactAccessGranted      = types.ContactAccessGranted
	ContactAccessDenied       = types.ContactAccessDenied

	TransactionPending = types.TransactionPending
	TransactionSuccess = types.TransactionSuccess
	TransactionFailed  = types.TransactionFailed
)

// Catalog lists the payable services in display order.
var Catalog = types.Catalog

// LookupService finds a catalog entry by type or label.
func LookupService(name string) (Service, bool) { return types.LookupService(name) }

// RootFor maps a session state to the navigator that should be shown.
func RootFor(s SessionState) Root { return types.RootFor(s) }

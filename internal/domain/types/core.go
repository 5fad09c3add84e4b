package types

import "strings"

// Username identifies an account on the API server.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// ServiceType names a payable service as understood by the vendor endpoints.
type ServiceType string

// String returns the wire form of the service type.
func (s ServiceType) String() string { return string(s) }

// Known service types.
const (
	ServiceAirtime     ServiceType = "airtime"
	ServiceElectricity ServiceType = "electricity"
	ServiceRRA         ServiceType = "rra"
	ServiceWater       ServiceType = "water"
	ServiceInternet    ServiceType = "internet"
)

// Service is a catalog entry shown to the user.
type Service struct {
	Type  ServiceType `json:"type"`
	Label string      `json:"label"`
	// ReferenceHint describes what the reference field holds for this service.
	ReferenceHint string `json:"reference_hint,omitempty"`
}

// Catalog lists the services offered on the home screen, in display order.
var Catalog = []Service{
	{Type: ServiceAirtime, Label: "Buy Airtime"},
	{Type: ServiceElectricity, Label: "Electricity", ReferenceHint: "Meter number"},
	{Type: ServiceRRA, Label: "RRA Payment", ReferenceHint: "Tax ID"},
	{Type: ServiceWater, Label: "Water", ReferenceHint: "Customer number"},
	{Type: ServiceInternet, Label: "Internet", ReferenceHint: "Account number"},
}

// LookupService finds a catalog entry by type or label, case-insensitively.
func LookupService(name string) (Service, bool) {
	name = strings.TrimSpace(name)
	for _, s := range Catalog {
		if strings.EqualFold(s.Type.String(), name) || strings.EqualFold(s.Label, name) {
			return s, true
		}
	}
	return Service{}, false
}

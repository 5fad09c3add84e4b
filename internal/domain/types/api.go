package types

// Credentials is the body of POST /auth/login.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	Email       string `json:"email"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Identity    string `json:"identity"`
	PhoneNumber string `json:"phoneNumber"`
}

// VendorValidation is the body of POST /clients/validation/validate/vendor.
type VendorValidation struct {
	CustomerAccountNumber string      `json:"customerAccountNumber"`
	ServiceType           ServiceType `json:"serviceType"`
}

// VendorValidationResult is the server's answer to a vendor validation.
type VendorValidationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    struct {
		TrxID string `json:"trxId"`
	} `json:"data"`
}

// VendorPayment is the body of POST /clients/payment/execute/vendor.
type VendorPayment struct {
	PhoneNumber    string      `json:"phoneNumber"`
	Amount         string      `json:"amount"`
	CurrencySymbol string      `json:"currencySymbol"`
	ServiceType    ServiceType `json:"serviceType"`
	TrxID          string      `json:"trxId"`
}

// PaymentResult is the server's answer to a vendor payment.
type PaymentResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

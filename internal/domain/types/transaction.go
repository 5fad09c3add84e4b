package types

import "time"

// TransactionStatus mirrors the statuses shown in the transaction list.
type TransactionStatus string

const (
	TransactionPending TransactionStatus = "pending"
	TransactionSuccess TransactionStatus = "success"
	TransactionFailed  TransactionStatus = "failed"
)

// Transaction is one recorded payment attempt.
type Transaction struct {
	ID        string            `json:"id"`
	Service   ServiceType       `json:"service"`
	Recipient string            `json:"recipient"`
	Reference string            `json:"reference,omitempty"`
	Amount    int64             `json:"amount"`
	Currency  string            `json:"currency"`
	TrxID     string            `json:"trxId,omitempty"`
	Status    TransactionStatus `json:"status"`
	Message   string            `json:"message,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

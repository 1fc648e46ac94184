package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// InvoicePayment records a provider payment settled against an invoice.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (invoice_code-index): invoice_code
//
// Provider payload:
//   - ProviderPayloadRaw keeps the original body (JSON) for traceability/audit.
//   - ProviderPayload is an optional parsed representation, useful for
//     querying/debugging. Both are persisted because provider schemas vary.

type InvoicePayment struct {
	ID          string        `json:"id"`
	InvoiceCode string        `json:"invoice_code"`
	Date        time.Time     `json:"date"`
	Status      PaymentStatus `json:"status"`

	ProviderPayloadRaw json.RawMessage        `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

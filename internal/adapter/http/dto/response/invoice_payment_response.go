package response

import (
	"time"

	"crm_backoffice/internal/domain/entities"
)

type InvoicePaymentResponse struct {
	ID          string    `json:"id"`
	InvoiceCode string    `json:"invoice_code"`
	Date        time.Time `json:"date"`
	Status      string    `json:"status"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromInvoicePayment(p entities.InvoicePayment) InvoicePaymentResponse {
	return InvoicePaymentResponse{
		ID:                 p.ID,
		InvoiceCode:        p.InvoiceCode,
		Date:               p.Date,
		Status:             string(p.Status),
		ProviderPayloadRaw: string(p.ProviderPayloadRaw),
		ProviderPayload:    p.ProviderPayload,
	}
}

func FromInvoicePayments(payments []entities.InvoicePayment) []InvoicePaymentResponse {
	out := make([]InvoicePaymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, FromInvoicePayment(p))
	}
	return out
}

package response

import (
	"time"

	"crm_backoffice/internal/domain/entities"
)

type InvoiceItemResponse struct {
	ServiceType string  `json:"service_type"`
	Description string  `json:"description,omitempty"`
	Hours       float64 `json:"hours"`
	RatePerHour float64 `json:"rate_per_hour"`
	FixedPrice  float64 `json:"fixed_price"`
	Quantity    int     `json:"quantity"`
	Total       float64 `json:"total"`
}

type InvoiceResponse struct {
	Code        string                `json:"code"`
	ClientID    string                `json:"client_id"`
	ProjectID   string                `json:"project_id,omitempty"`
	Items       []InvoiceItemResponse `json:"items"`
	Subtotal    float64               `json:"subtotal"`
	TaxRate     *float64              `json:"tax_rate,omitempty"`
	TaxAmount   *float64              `json:"tax_amount,omitempty"`
	TotalAmount float64               `json:"total_amount"`
	Status      string                `json:"status"`
	InvoiceDate time.Time             `json:"invoice_date"`
	DueDate     time.Time             `json:"due_date"`
	PaymentDate *time.Time            `json:"payment_date,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

func FromInvoice(inv entities.Invoice) InvoiceResponse {
	resp := InvoiceResponse{
		Code:        inv.Code,
		ClientID:    inv.ClientID,
		ProjectID:   inv.ProjectID,
		Items:       make([]InvoiceItemResponse, 0, len(inv.Items)),
		Subtotal:    inv.Subtotal.InexactFloat64(),
		TotalAmount: inv.TotalAmount.InexactFloat64(),
		Status:      string(inv.Status),
		InvoiceDate: inv.InvoiceDate,
		DueDate:     inv.DueDate,
		PaymentDate: inv.PaymentDate,
		CreatedAt:   inv.CreatedAt,
		UpdatedAt:   inv.UpdatedAt,
	}
	if inv.TaxRate != nil {
		rate := inv.TaxRate.InexactFloat64()
		resp.TaxRate = &rate
	}
	if inv.TaxAmount != nil {
		tax := inv.TaxAmount.InexactFloat64()
		resp.TaxAmount = &tax
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, InvoiceItemResponse{
			ServiceType: string(it.ServiceType),
			Description: it.Description,
			Hours:       it.Hours.InexactFloat64(),
			RatePerHour: it.RatePerHour.InexactFloat64(),
			FixedPrice:  it.FixedPrice.InexactFloat64(),
			Quantity:    it.Quantity,
			Total:       it.Total.InexactFloat64(),
		})
	}
	return resp
}

func FromInvoices(invoices []entities.Invoice) []InvoiceResponse {
	out := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		out = append(out, FromInvoice(inv))
	}
	return out
}

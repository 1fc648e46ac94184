package request

import (
	"errors"
	"time"

	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase"

	"github.com/shopspring/decimal"
)

var ErrInvalidDate = errors.New("invalid date")

// dateLayouts accepted on the wire; storage is always UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseRequestDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

type InvoiceItemRequest struct {
	ServiceType string  `json:"service_type" binding:"required"`
	Description string  `json:"description"`
	Hours       float64 `json:"hours"`
	RatePerHour float64 `json:"rate_per_hour"`
	FixedPrice  float64 `json:"fixed_price"`
	Quantity    int     `json:"quantity"`
}

func (r InvoiceItemRequest) toEntity() entities.InvoiceItem {
	return entities.InvoiceItem{
		ServiceType: entities.ServiceType(r.ServiceType),
		Description: r.Description,
		Hours:       decimal.NewFromFloat(r.Hours),
		RatePerHour: decimal.NewFromFloat(r.RatePerHour),
		FixedPrice:  decimal.NewFromFloat(r.FixedPrice),
		Quantity:    r.Quantity,
	}
}

type CreateInvoiceRequest struct {
	ClientID    string               `json:"client_id" binding:"required"`
	ProjectID   string               `json:"project_id"`
	Items       []InvoiceItemRequest `json:"items" binding:"required"`
	TaxRate     *float64             `json:"tax_rate"`
	InvoiceDate string               `json:"invoice_date"`
	DueDate     string               `json:"due_date" binding:"required"`
}

func (r CreateInvoiceRequest) ToInput() (usecase.CreateInvoiceInput, error) {
	in := usecase.CreateInvoiceInput{
		ClientID:  r.ClientID,
		ProjectID: r.ProjectID,
	}
	for _, it := range r.Items {
		in.Items = append(in.Items, it.toEntity())
	}
	if r.TaxRate != nil {
		rate := decimal.NewFromFloat(*r.TaxRate)
		in.TaxRate = &rate
	}
	if r.InvoiceDate != "" {
		t, err := parseRequestDate(r.InvoiceDate)
		if err != nil {
			return usecase.CreateInvoiceInput{}, err
		}
		in.InvoiceDate = t
	}
	due, err := parseRequestDate(r.DueDate)
	if err != nil {
		return usecase.CreateInvoiceInput{}, err
	}
	in.DueDate = due
	return in, nil
}

type UpdateInvoiceRequest struct {
	Items        []InvoiceItemRequest `json:"items"`
	TaxRate      *float64             `json:"tax_rate"`
	ClearTaxRate bool                 `json:"clear_tax_rate"`
	DueDate      *string              `json:"due_date"`
	Status       *string              `json:"status"`
}

func (r UpdateInvoiceRequest) ToInput() (usecase.UpdateInvoiceInput, error) {
	in := usecase.UpdateInvoiceInput{ClearTaxRate: r.ClearTaxRate}
	if r.Items != nil {
		in.Items = make([]entities.InvoiceItem, 0, len(r.Items))
		for _, it := range r.Items {
			in.Items = append(in.Items, it.toEntity())
		}
	}
	if r.TaxRate != nil {
		rate := decimal.NewFromFloat(*r.TaxRate)
		in.TaxRate = &rate
	}
	if r.DueDate != nil {
		t, err := parseRequestDate(*r.DueDate)
		if err != nil {
			return usecase.UpdateInvoiceInput{}, err
		}
		in.DueDate = &t
	}
	if r.Status != nil {
		status := entities.InvoiceStatus(*r.Status)
		in.Status = &status
	}
	return in, nil
}

type MarkInvoicePaidRequest struct {
	PaymentDate *string `json:"payment_date"`
}

func (r MarkInvoicePaidRequest) ResolvePaymentDate() (*time.Time, error) {
	if r.PaymentDate == nil || *r.PaymentDate == "" {
		return nil, nil
	}
	t, err := parseRequestDate(*r.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

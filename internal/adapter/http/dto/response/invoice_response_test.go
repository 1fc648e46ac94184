package response

import (
	"testing"
	"time"

	"crm_backoffice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func TestFromInvoice(t *testing.T) {
	now := time.Now().UTC()
	rate := decimal.NewFromInt(10)
	tax := decimal.NewFromInt(90)
	inv := entities.Invoice{
		Code:     "INV-2024-001",
		ClientID: "client-1",
		Items: []entities.InvoiceItem{
			{ServiceType: entities.ServiceTypeHourly, Hours: decimal.NewFromInt(10), RatePerHour: decimal.NewFromInt(50), Total: decimal.NewFromInt(500)},
			{ServiceType: entities.ServiceTypeFixed, FixedPrice: decimal.NewFromInt(200), Quantity: 2, Total: decimal.NewFromInt(400)},
		},
		Subtotal:    decimal.NewFromInt(900),
		TaxRate:     &rate,
		TaxAmount:   &tax,
		TotalAmount: decimal.NewFromInt(990),
		Status:      entities.InvoiceStatusPending,
		InvoiceDate: now,
		DueDate:     now.AddDate(0, 1, 0),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := FromInvoice(inv)
	if res.Code != "INV-2024-001" || res.ClientID != "client-1" {
		t.Fatalf("unexpected identity fields: %+v", res)
	}
	if res.Subtotal != 900 || res.TotalAmount != 990 {
		t.Fatalf("unexpected amounts: %+v", res)
	}
	if res.TaxRate == nil || *res.TaxRate != 10 || res.TaxAmount == nil || *res.TaxAmount != 90 {
		t.Fatalf("unexpected tax fields: %+v", res)
	}
	if len(res.Items) != 2 || res.Items[0].Total != 500 || res.Items[1].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", res.Items)
	}
	if res.PaymentDate != nil {
		t.Fatalf("payment date must stay nil for unpaid invoices")
	}
}

func TestFromInvoice_NoTax(t *testing.T) {
	inv := entities.Invoice{
		Code:        "INV-2024-002",
		Subtotal:    decimal.NewFromInt(500),
		TotalAmount: decimal.NewFromInt(500),
		Status:      entities.InvoiceStatusPending,
	}

	res := FromInvoice(inv)
	if res.TaxRate != nil || res.TaxAmount != nil {
		t.Fatalf("expected nil tax fields: %+v", res)
	}
	if res.Items == nil || len(res.Items) != 0 {
		t.Fatalf("expected empty items slice, got %+v", res.Items)
	}
}

func TestFromInvoices(t *testing.T) {
	out := FromInvoices([]entities.Invoice{{Code: "INV-2024-001"}, {Code: "INV-2024-002"}})
	if len(out) != 2 || out[1].Code != "INV-2024-002" {
		t.Fatalf("unexpected result: %+v", out)
	}
	if empty := FromInvoices(nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty slice for nil input")
	}
}

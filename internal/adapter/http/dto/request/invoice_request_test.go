package request

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseRequestDate(t *testing.T) {
	got, err := parseRequestDate("2024-07-15")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}

	got, err = parseRequestDate("2024-07-15T10:30:00-03:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.UTC {
		t.Fatalf("expected UTC, got %v", got.Location())
	}

	if _, err = parseRequestDate("15/07/2024"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestCreateInvoiceRequest_ToInput(t *testing.T) {
	rate := 10.0
	r := CreateInvoiceRequest{
		ClientID: "client-1",
		Items: []InvoiceItemRequest{
			{ServiceType: "hourly", Hours: 10, RatePerHour: 50},
			{ServiceType: "fixed", FixedPrice: 200, Quantity: 2},
		},
		TaxRate: &rate,
		DueDate: "2024-07-15",
	}

	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(in.Items))
	}
	if in.TaxRate == nil || !in.TaxRate.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("unexpected tax rate: %v", in.TaxRate)
	}
	if !in.DueDate.Equal(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %v", in.DueDate)
	}
	if !in.InvoiceDate.IsZero() {
		t.Fatalf("expected zero invoice date when omitted, got %v", in.InvoiceDate)
	}

	r.DueDate = "soon"
	if _, err := r.ToInput(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestUpdateInvoiceRequest_ToInput(t *testing.T) {
	due := "2024-08-01"
	status := "Pending"
	r := UpdateInvoiceRequest{
		ClearTaxRate: true,
		DueDate:      &due,
		Status:       &status,
	}

	in, err := r.ToInput()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !in.ClearTaxRate || in.TaxRate != nil {
		t.Fatalf("unexpected tax fields: %+v", in)
	}
	if in.Items != nil {
		t.Fatalf("omitted items must stay nil")
	}
	if in.DueDate == nil || !in.DueDate.Equal(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %v", in.DueDate)
	}
	if in.Status == nil || string(*in.Status) != "Pending" {
		t.Fatalf("unexpected status: %v", in.Status)
	}
}

func TestMarkInvoicePaidRequest_ResolvePaymentDate(t *testing.T) {
	r := MarkInvoicePaidRequest{}
	got, err := r.ResolvePaymentDate()
	if err != nil || got != nil {
		t.Fatalf("expected nil date for empty request, got %v %v", got, err)
	}

	date := "2024-06-10"
	r = MarkInvoicePaidRequest{PaymentDate: &date}
	got, err = r.ResolvePaymentDate()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || !got.Equal(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date: %v", got)
	}

	bad := "whenever"
	r = MarkInvoicePaidRequest{PaymentDate: &bad}
	if _, err := r.ResolvePaymentDate(); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the billing lifecycle of an invoice.
//
// Pending becomes Overdue automatically once the due date passes; Paid is only
// reachable through an explicit payment transition and is terminal for
// deletion purposes.

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "Pending"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// ServiceType discriminates how an invoice line is priced.
type ServiceType string

const (
	ServiceTypeHourly       ServiceType = "hourly"
	ServiceTypeFixed        ServiceType = "fixed"
	ServiceTypeSubscription ServiceType = "subscription"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceTypeHourly, ServiceTypeFixed, ServiceTypeSubscription:
		return true
	}
	return false
}

// InvoiceItem is one billed line. Total is always derived, never accepted
// from the caller.
type InvoiceItem struct {
	ServiceType ServiceType     `json:"service_type"`
	Description string          `json:"description,omitempty"`
	Hours       decimal.Decimal `json:"hours"`
	RatePerHour decimal.Decimal `json:"rate_per_hour"`
	FixedPrice  decimal.Decimal `json:"fixed_price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
}

// ComputeTotal derives the line total: hours*rate for hourly lines,
// fixed_price*quantity otherwise. A zero quantity counts as one.
func (it InvoiceItem) ComputeTotal() decimal.Decimal {
	if it.ServiceType == ServiceTypeHourly {
		return it.Hours.Mul(it.RatePerHour)
	}
	qty := it.Quantity
	if qty == 0 {
		qty = 1
	}
	return it.FixedPrice.Mul(decimal.NewFromInt(int64(qty)))
}

// Validate checks the fields the pricing formula depends on.
func (it InvoiceItem) Validate() error {
	if !it.ServiceType.Valid() {
		return fmt.Errorf("invalid service_type %q", it.ServiceType)
	}
	if it.Quantity < 0 {
		return fmt.Errorf("quantity must not be negative")
	}
	if it.ServiceType == ServiceTypeHourly {
		if !it.Hours.IsPositive() || !it.RatePerHour.IsPositive() {
			return fmt.Errorf("hourly item requires positive hours and rate_per_hour")
		}
		return nil
	}
	if !it.FixedPrice.IsPositive() {
		return fmt.Errorf("%s item requires positive fixed_price", it.ServiceType)
	}
	return nil
}

// Invoice is the billed document issued to a client.
//
// Storage model (DynamoDB):
//   - PK: code (the generated "INV-<year>-<seq>" string)
//   - GSI: client_id-index (PK: client_id)
//
// Subtotal, TaxAmount and TotalAmount are derived from Items and TaxRate by
// Recalculate; any mutation path that touches those sources must recompute
// before persisting.

type Invoice struct {
	Code        string           `json:"code"`
	ClientID    string           `json:"client_id"`
	ProjectID   string           `json:"project_id,omitempty"`
	Items       []InvoiceItem    `json:"items"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	TaxRate     *decimal.Decimal `json:"tax_rate,omitempty"`
	TaxAmount   *decimal.Decimal `json:"tax_amount,omitempty"`
	TotalAmount decimal.Decimal  `json:"total_amount"`
	Status      InvoiceStatus    `json:"status"`
	InvoiceDate time.Time        `json:"invoice_date"`
	DueDate     time.Time        `json:"due_date"`
	PaymentDate *time.Time       `json:"payment_date,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// Recalculate rederives every money field from the items and tax rate.
// It is idempotent: running it twice on an unchanged invoice yields identical
// amounts.
func (inv *Invoice) Recalculate() {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].Total = inv.Items[i].ComputeTotal()
		subtotal = subtotal.Add(inv.Items[i].Total)
	}
	inv.Subtotal = subtotal

	if inv.TaxRate != nil {
		tax := subtotal.Mul(*inv.TaxRate).Div(decimal.NewFromInt(100))
		inv.TaxAmount = &tax
		inv.TotalAmount = subtotal.Add(tax)
		return
	}
	inv.TaxAmount = nil
	inv.TotalAmount = subtotal
}

// EffectiveStatus reports the status as of now: a Pending invoice whose due
// date has passed reads as Overdue without requiring a write.
func (inv Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if inv.Status == InvoiceStatusPending && inv.DueDate.Before(now) {
		return InvoiceStatusOverdue
	}
	return inv.Status
}

// ApplyOverdue folds the read-time derivation back into the entity.
func (inv *Invoice) ApplyOverdue(now time.Time) {
	inv.Status = inv.EffectiveStatus(now)
}

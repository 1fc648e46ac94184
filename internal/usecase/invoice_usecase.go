package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInvoiceCode     = domainerr.New(domainerr.KindInvalidInput, "invalid invoice code")
	ErrInvalidInvoiceClientID = domainerr.New(domainerr.KindInvalidInput, "invalid client_id")
	ErrInvalidInvoiceItems    = domainerr.New(domainerr.KindInvalidInput, "invalid invoice items")
	ErrInvalidInvoiceTaxRate  = domainerr.New(domainerr.KindInvalidInput, "tax_rate must not be negative")
	ErrInvalidInvoiceDueDate  = domainerr.New(domainerr.KindInvalidInput, "invalid due_date")
	ErrInvalidInvoiceStatus   = domainerr.New(domainerr.KindInvalidInput, "invalid invoice status")
	ErrInvalidInvoiceAmount   = domainerr.New(domainerr.KindInvalidInput, "invoice amount must be positive")
	ErrInvoiceNotFound        = domainerr.New(domainerr.KindNotFound, "invoice not found")
	ErrInvoiceAlreadyPaid     = domainerr.New(domainerr.KindInvalidStateTransition, "invoice already paid")
	ErrPaidInvoiceImmutable   = domainerr.New(domainerr.KindInvalidStateTransition, "paid invoice cannot be deleted")
	ErrStatusPaidViaPayment   = domainerr.New(domainerr.KindInvalidInput, "status Paid can only be set through the payment transition")
)

// CreateInvoiceInput carries the caller-supplied fields for a new invoice.
// Line totals, subtotal, tax amount and total amount are always derived.
type CreateInvoiceInput struct {
	ClientID    string
	ProjectID   string
	Items       []entities.InvoiceItem
	TaxRate     *decimal.Decimal
	InvoiceDate time.Time
	DueDate     time.Time
}

// UpdateInvoiceInput describes a field-level invoice update. Nil means leave
// the field alone; ClearTaxRate removes the tax rate entirely.
type UpdateInvoiceInput struct {
	Items        []entities.InvoiceItem
	TaxRate      *decimal.Decimal
	ClearTaxRate bool
	DueDate      *time.Time
	Status       *entities.InvoiceStatus
}

// IInvoiceUseCase owns the invoice lifecycle: derived money fields, the
// Pending-to-Overdue transition and the payment/deletion guards.

type IInvoiceUseCase interface {
	Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error)
	GetByCode(ctx context.Context, code string) (entities.Invoice, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error)
	UpdateDetails(ctx context.Context, code string, in UpdateInvoiceInput) (entities.Invoice, error)
	MarkPaid(ctx context.Context, code string, paymentDate *time.Time) (entities.Invoice, error)
	Delete(ctx context.Context, code string) error
}

type InvoiceUseCase struct {
	repo  interfaces.IInvoiceRepository
	codes ICodeGenerator
	clock interfaces.IClock
}

var _ IInvoiceUseCase = (*InvoiceUseCase)(nil)

func NewInvoiceUseCase(repo interfaces.IInvoiceRepository, codes ICodeGenerator, clock interfaces.IClock) *InvoiceUseCase {
	return &InvoiceUseCase{repo: repo, codes: codes, clock: clock}
}

func (u *InvoiceUseCase) Create(ctx context.Context, in CreateInvoiceInput) (entities.Invoice, error) {
	in.ClientID = strings.TrimSpace(in.ClientID)
	if in.ClientID == "" {
		return entities.Invoice{}, ErrInvalidInvoiceClientID
	}
	if len(in.Items) == 0 {
		return entities.Invoice{}, ErrInvalidInvoiceItems
	}
	for _, it := range in.Items {
		if err := it.Validate(); err != nil {
			return entities.Invoice{}, fmt.Errorf("%w: %v", ErrInvalidInvoiceItems, err)
		}
	}
	if in.TaxRate != nil && in.TaxRate.IsNegative() {
		return entities.Invoice{}, ErrInvalidInvoiceTaxRate
	}
	if in.DueDate.IsZero() {
		return entities.Invoice{}, ErrInvalidInvoiceDueDate
	}

	now := u.clock.Now()
	invoiceDate := in.InvoiceDate
	if invoiceDate.IsZero() {
		invoiceDate = now
	}

	inv := entities.Invoice{
		ClientID:    in.ClientID,
		ProjectID:   strings.TrimSpace(in.ProjectID),
		Items:       in.Items,
		TaxRate:     in.TaxRate,
		Status:      entities.InvoiceStatusPending,
		InvoiceDate: invoiceDate,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	inv.Recalculate()
	if !inv.TotalAmount.IsPositive() {
		return entities.Invoice{}, ErrInvalidInvoiceAmount
	}
	inv.ApplyOverdue(now)

	code, err := u.codes.Generate(ctx, entities.SeriesInvoice, now.Year(), InvoiceCodeFormat(now.Year()), u.repo.ExistsByCode)
	if err != nil {
		return entities.Invoice{}, err
	}
	inv.Code = code

	return u.repo.Create(ctx, inv)
}

func (u *InvoiceUseCase) GetByCode(ctx context.Context, code string) (entities.Invoice, error) {
	inv, err := u.get(ctx, code)
	if err != nil {
		return entities.Invoice{}, err
	}
	// Read-time derivation: a long-untouched invoice reports Overdue without
	// requiring a write.
	inv.ApplyOverdue(u.clock.Now())
	return inv, nil
}

func (u *InvoiceUseCase) ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error) {
	clientID = strings.TrimSpace(clientID)
	if clientID == "" {
		return nil, ErrInvalidInvoiceClientID
	}
	invoices, err := u.repo.ListByClientID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	now := u.clock.Now()
	for i := range invoices {
		invoices[i].ApplyOverdue(now)
	}
	return invoices, nil
}

func (u *InvoiceUseCase) UpdateDetails(ctx context.Context, code string, in UpdateInvoiceInput) (entities.Invoice, error) {
	inv, err := u.get(ctx, code)
	if err != nil {
		return entities.Invoice{}, err
	}

	if in.Status != nil {
		if !in.Status.Valid() {
			return entities.Invoice{}, ErrInvalidInvoiceStatus
		}
		if *in.Status == entities.InvoiceStatusPaid {
			return entities.Invoice{}, ErrStatusPaidViaPayment
		}
		inv.Status = *in.Status
	}
	if in.Items != nil {
		for _, it := range in.Items {
			if err := it.Validate(); err != nil {
				return entities.Invoice{}, fmt.Errorf("%w: %v", ErrInvalidInvoiceItems, err)
			}
		}
		inv.Items = in.Items
	}
	if in.ClearTaxRate {
		inv.TaxRate = nil
	} else if in.TaxRate != nil {
		if in.TaxRate.IsNegative() {
			return entities.Invoice{}, ErrInvalidInvoiceTaxRate
		}
		inv.TaxRate = in.TaxRate
	}
	if in.DueDate != nil {
		if in.DueDate.IsZero() {
			return entities.Invoice{}, ErrInvalidInvoiceDueDate
		}
		inv.DueDate = *in.DueDate
	}

	now := u.clock.Now()
	inv.Recalculate()
	if !inv.TotalAmount.IsPositive() {
		return entities.Invoice{}, ErrInvalidInvoiceAmount
	}
	inv.ApplyOverdue(now)
	inv.UpdatedAt = now

	return u.repo.Update(ctx, inv)
}

// MarkPaid is the only path that sets payment_date.
func (u *InvoiceUseCase) MarkPaid(ctx context.Context, code string, paymentDate *time.Time) (entities.Invoice, error) {
	inv, err := u.get(ctx, code)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return entities.Invoice{}, ErrInvoiceAlreadyPaid
	}

	now := u.clock.Now()
	inv.Status = entities.InvoiceStatusPaid
	if inv.PaymentDate == nil {
		paidAt := now
		if paymentDate != nil {
			paidAt = *paymentDate
		}
		inv.PaymentDate = &paidAt
	}
	inv.UpdatedAt = now

	return u.repo.Update(ctx, inv)
}

func (u *InvoiceUseCase) Delete(ctx context.Context, code string) error {
	inv, err := u.get(ctx, code)
	if err != nil {
		return err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return ErrPaidInvoiceImmutable
	}
	return u.repo.DeleteByCode(ctx, inv.Code)
}

func (u *InvoiceUseCase) get(ctx context.Context, code string) (entities.Invoice, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return entities.Invoice{}, ErrInvalidInvoiceCode
	}
	inv, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		return entities.Invoice{}, err
	}
	if inv.Code == "" {
		return entities.Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"
)

var (
	ErrInvalidPaymentInvoiceCode = domainerr.New(domainerr.KindInvalidInput, "invalid invoice code")
	ErrInvalidPaymentPayload     = domainerr.New(domainerr.KindInvalidInput, "invalid payment payload")
	ErrPaymentNotFound           = domainerr.New(domainerr.KindNotFound, "payment not found")
	ErrPaymentGatewayFailed      = domainerr.New(domainerr.KindStorage, "payment gateway call failed")
	ErrPaymentNotConfigured      = domainerr.New(domainerr.KindStorage, "payment gateway not configured")
)

// IInvoicePaymentUseCase settles an invoice through the external payment
// provider. An approved provider payment is persisted for audit and marks the
// invoice Paid through the invoice lifecycle (the only path that may set
// payment_date).

type IInvoicePaymentUseCase interface {
	CreateByInvoiceCode(ctx context.Context, invoiceCode string, payload json.RawMessage) (entities.InvoicePayment, error)
	ListByInvoiceCode(ctx context.Context, invoiceCode string) ([]entities.InvoicePayment, error)
}

type InvoicePaymentUseCase struct {
	repo     interfaces.IInvoicePaymentRepository
	invoices IInvoiceUseCase
	gateway  interfaces.IPaymentGateway
	clock    interfaces.IClock
}

var _ IInvoicePaymentUseCase = (*InvoicePaymentUseCase)(nil)

func NewInvoicePaymentUseCase(repo interfaces.IInvoicePaymentRepository, invoices IInvoiceUseCase, gateway interfaces.IPaymentGateway, clock interfaces.IClock) *InvoicePaymentUseCase {
	return &InvoicePaymentUseCase{repo: repo, invoices: invoices, gateway: gateway, clock: clock}
}

func (u *InvoicePaymentUseCase) CreateByInvoiceCode(ctx context.Context, invoiceCode string, payload json.RawMessage) (entities.InvoicePayment, error) {
	log.Printf("[payment][usecase] create start invoice_code=%q payload_len=%d", invoiceCode, len(payload))

	invoiceCode = strings.TrimSpace(invoiceCode)
	if invoiceCode == "" {
		return entities.InvoicePayment{}, ErrInvalidPaymentInvoiceCode
	}
	if len(payload) == 0 {
		payload = json.RawMessage("{}")
	}
	if !json.Valid(payload) {
		return entities.InvoicePayment{}, ErrInvalidPaymentPayload
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured invoice_code=%s", invoiceCode)
		return entities.InvoicePayment{}, ErrPaymentNotConfigured
	}

	inv, err := u.invoices.GetByCode(ctx, invoiceCode)
	if err != nil {
		return entities.InvoicePayment{}, err
	}
	if inv.Status == entities.InvoiceStatusPaid {
		return entities.InvoicePayment{}, ErrInvoiceAlreadyPaid
	}

	// The source of truth for the amount is the stored invoice total; the
	// caller's payload never overrides it. external_reference lets the
	// provider's events reconcile back to the invoice.
	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil {
		return entities.InvoicePayment{}, ErrInvalidPaymentPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = invoiceCode
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Invoice %s", invoiceCode)
	}
	amount, _ := inv.TotalAmount.Float64()
	reqMap["transaction_amount"] = amount
	if b, err := json.Marshal(reqMap); err == nil {
		payload = b
	}

	log.Printf("[payment][usecase] calling payment gateway invoice_code=%s amount=%.2f", invoiceCode, amount)
	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Printf("[payment][usecase] payment gateway failed invoice_code=%s err=%v", invoiceCode, err)
		return entities.InvoicePayment{}, fmt.Errorf("%w: %v", ErrPaymentGatewayFailed, err)
	}
	log.Printf("[payment][usecase] payment gateway success invoice_code=%s provider_payment_id=%s provider_status=%s", invoiceCode, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[payment][usecase] provider response unmarshal failed invoice_code=%s err=%v", invoiceCode, err)
	}

	now := u.clock.Now()
	p := entities.InvoicePayment{
		ID:                 providerPaymentID,
		InvoiceCode:        invoiceCode,
		Date:               now,
		Status:             entities.PaymentStatusApproved,
		ProviderPayloadRaw: providerResp,
		ProviderPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed invoice_code=%s payment_id=%s err=%v", invoiceCode, p.ID, err)
		return entities.InvoicePayment{}, err
	}

	if _, err := u.invoices.MarkPaid(ctx, invoiceCode, &now); err != nil {
		log.Printf("[payment][usecase] mark paid failed invoice_code=%s payment_id=%s err=%v", invoiceCode, created.ID, err)
		return entities.InvoicePayment{}, err
	}

	log.Printf("[payment][usecase] create success invoice_code=%s payment_id=%s status=%s", invoiceCode, created.ID, created.Status)
	return created, nil
}

func (u *InvoicePaymentUseCase) ListByInvoiceCode(ctx context.Context, invoiceCode string) ([]entities.InvoicePayment, error) {
	invoiceCode = strings.TrimSpace(invoiceCode)
	if invoiceCode == "" {
		return nil, ErrInvalidPaymentInvoiceCode
	}
	return u.repo.ListByInvoiceCode(ctx, invoiceCode)
}

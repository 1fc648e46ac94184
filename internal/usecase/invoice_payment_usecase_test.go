package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"crm_backoffice/internal/domain/entities"
	mock_interfaces "crm_backoffice/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

// paymentFixture wires a payment use case over a real invoice use case so the
// invoice-side guards (already paid, MarkPaid stamping) run for real.
type paymentFixture struct {
	payments *mock_interfaces.MockIInvoicePaymentRepository
	invoices *mock_interfaces.MockIInvoiceRepository
	gateway  *mock_interfaces.MockIPaymentGateway
	uc       *InvoicePaymentUseCase
}

func newPaymentFixture(ctrl *gomock.Controller) paymentFixture {
	payments := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
	invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
	gateway := mock_interfaces.NewMockIPaymentGateway(ctrl)
	invoiceUC := NewInvoiceUseCase(invoices, nil, fixedClock{testNow})
	return paymentFixture{
		payments: payments,
		invoices: invoices,
		gateway:  gateway,
		uc:       NewInvoicePaymentUseCase(payments, invoiceUC, gateway, fixedClock{testNow}),
	}
}

func pendingInvoice() entities.Invoice {
	return entities.Invoice{
		Code:        "INV-2024-001",
		ClientID:    "client-1",
		Status:      entities.InvoiceStatusPending,
		TotalAmount: dec("990"),
		DueDate:     testNow.AddDate(0, 1, 0),
	}
}

func TestInvoicePaymentUseCase_CreateByInvoiceCode(t *testing.T) {
	t.Run("empty invoice code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		_, err := f.uc.CreateByInvoiceCode(context.Background(), "  ", nil)
		if !errors.Is(err, ErrInvalidPaymentInvoiceCode) {
			t.Fatalf("expected ErrInvalidPaymentInvoiceCode, got %v", err)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		_, err := f.uc.CreateByInvoiceCode(context.Background(), "INV-2024-001", json.RawMessage("{not json"))
		if !errors.Is(err, ErrInvalidPaymentPayload) {
			t.Fatalf("expected ErrInvalidPaymentPayload, got %v", err)
		}
	})

	t.Run("gateway not configured", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		payments := mock_interfaces.NewMockIInvoicePaymentRepository(ctrl)
		invoices := mock_interfaces.NewMockIInvoiceRepository(ctrl)
		invoiceUC := NewInvoiceUseCase(invoices, nil, fixedClock{testNow})
		uc := NewInvoicePaymentUseCase(payments, invoiceUC, nil, fixedClock{testNow})

		_, err := uc.CreateByInvoiceCode(context.Background(), "INV-2024-001", nil)
		if !errors.Is(err, ErrPaymentNotConfigured) {
			t.Fatalf("expected ErrPaymentNotConfigured, got %v", err)
		}
	})

	t.Run("already paid invoice rejects", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		paid := pendingInvoice()
		paid.Status = entities.InvoiceStatusPaid
		f.invoices.EXPECT().GetByCode(gomock.Any(), "INV-2024-001").Return(paid, nil)

		_, err := f.uc.CreateByInvoiceCode(context.Background(), "INV-2024-001", nil)
		if !errors.Is(err, ErrInvoiceAlreadyPaid) {
			t.Fatalf("expected ErrInvoiceAlreadyPaid, got %v", err)
		}
	})

	t.Run("gateway failure wraps", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		f.invoices.EXPECT().GetByCode(gomock.Any(), "INV-2024-001").Return(pendingInvoice(), nil)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return("", "", nil, errors.New("provider timeout"))

		_, err := f.uc.CreateByInvoiceCode(context.Background(), "INV-2024-001", nil)
		if !errors.Is(err, ErrPaymentGatewayFailed) {
			t.Fatalf("expected ErrPaymentGatewayFailed, got %v", err)
		}
	})

	t.Run("success settles the invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		f.invoices.EXPECT().GetByCode(gomock.Any(), "INV-2024-001").Return(pendingInvoice(), nil).Times(2)
		f.gateway.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, payload json.RawMessage) (string, string, json.RawMessage, error) {
				var req map[string]any
				if err := json.Unmarshal(payload, &req); err != nil {
					t.Fatalf("gateway payload not json: %v", err)
				}
				if req["external_reference"] != "INV-2024-001" {
					t.Fatalf("expected external_reference, got %v", req["external_reference"])
				}
				if req["transaction_amount"] != 990.0 {
					t.Fatalf("expected amount from stored invoice, got %v", req["transaction_amount"])
				}
				if req["description"] != "Invoice INV-2024-001" {
					t.Fatalf("unexpected description %v", req["description"])
				}
				return "pay-123", "approved", json.RawMessage(`{"id":"pay-123","status":"approved"}`), nil
			},
		)
		f.payments.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error) {
				if p.ID != "pay-123" || p.InvoiceCode != "INV-2024-001" {
					t.Fatalf("unexpected payment: %+v", p)
				}
				if p.Status != entities.PaymentStatusApproved {
					t.Fatalf("expected Approved, got %s", p.Status)
				}
				if p.ProviderPayload["status"] != "approved" {
					t.Fatalf("expected parsed provider payload, got %+v", p.ProviderPayload)
				}
				return p, nil
			},
		)
		f.invoices.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, inv entities.Invoice) (entities.Invoice, error) {
				if inv.Status != entities.InvoiceStatusPaid {
					t.Fatalf("expected invoice marked Paid, got %s", inv.Status)
				}
				if inv.PaymentDate == nil || !inv.PaymentDate.Equal(testNow) {
					t.Fatalf("expected payment date stamped, got %v", inv.PaymentDate)
				}
				return inv, nil
			},
		)

		created, err := f.uc.CreateByInvoiceCode(context.Background(), "INV-2024-001", json.RawMessage(`{"payment_method_id":"pix"}`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !created.Date.Equal(testNow) {
			t.Fatalf("expected payment dated %v, got %v", testNow, created.Date)
		}
	})
}

func TestInvoicePaymentUseCase_ListByInvoiceCode(t *testing.T) {
	t.Run("empty code", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		_, err := f.uc.ListByInvoiceCode(context.Background(), " ")
		if !errors.Is(err, ErrInvalidPaymentInvoiceCode) {
			t.Fatalf("expected ErrInvalidPaymentInvoiceCode, got %v", err)
		}
	})

	t.Run("returns stored payments", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		f := newPaymentFixture(ctrl)

		stored := []entities.InvoicePayment{
			{ID: "pay-1", InvoiceCode: "INV-2024-001", Date: testNow.Add(-time.Hour)},
			{ID: "pay-2", InvoiceCode: "INV-2024-001", Date: testNow},
		}
		f.payments.EXPECT().ListByInvoiceCode(gomock.Any(), "INV-2024-001").Return(stored, nil)

		res, err := f.uc.ListByInvoiceCode(context.Background(), "INV-2024-001")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res) != 2 || res[1].ID != "pay-2" {
			t.Fatalf("unexpected result: %+v", res)
		}
	})
}

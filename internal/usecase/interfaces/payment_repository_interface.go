package interfaces

import (
	"context"

	"crm_backoffice/internal/domain/entities"
)

// IInvoicePaymentRepository abstracts DynamoDB persistence for InvoicePayment.
type IInvoicePaymentRepository interface {
	Create(ctx context.Context, p entities.InvoicePayment) (entities.InvoicePayment, error)
	GetByID(ctx context.Context, id string) (entities.InvoicePayment, error)
	ListByInvoiceCode(ctx context.Context, invoiceCode string) ([]entities.InvoicePayment, error)
}

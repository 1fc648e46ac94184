package interfaces

import (
	"context"

	"crm_backoffice/internal/domain/entities"
)

// IInvoiceRepository abstracts DynamoDB persistence for Invoice.
//
// Create must refuse a duplicate code (conditional put); Update replaces the
// full document since lifecycle operations recompute the aggregate before
// persisting.
type IInvoiceRepository interface {
	Create(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	GetByCode(ctx context.Context, code string) (entities.Invoice, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, inv entities.Invoice) (entities.Invoice, error)
	DeleteByCode(ctx context.Context, code string) error
	ListByClientID(ctx context.Context, clientID string) ([]entities.Invoice, error)
}

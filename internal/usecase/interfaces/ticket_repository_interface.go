package interfaces

import (
	"context"

	"crm_backoffice/internal/domain/entities"
)

// ITicketRepository abstracts DynamoDB persistence for Ticket.
type ITicketRepository interface {
	Create(ctx context.Context, t entities.Ticket) (entities.Ticket, error)
	GetByCode(ctx context.Context, code string) (entities.Ticket, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Update(ctx context.Context, t entities.Ticket) (entities.Ticket, error)
	DeleteByCode(ctx context.Context, code string) error
	ListByClientID(ctx context.Context, clientID string) ([]entities.Ticket, error)
}

package interfaces

import (
	"context"

	"crm_backoffice/internal/domain/entities"
)

// ILeaveRepository abstracts DynamoDB persistence for LeaveRequest.
//
// ListByEmployeeID returns requests of every status; the overlap rule blocks
// on all of them.
type ILeaveRepository interface {
	Create(ctx context.Context, r entities.LeaveRequest) (entities.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (entities.LeaveRequest, error)
	Update(ctx context.Context, r entities.LeaveRequest) (entities.LeaveRequest, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.LeaveRequest, error)
}

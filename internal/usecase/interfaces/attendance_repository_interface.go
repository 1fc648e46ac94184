package interfaces

import (
	"context"

	"crm_backoffice/internal/domain/entities"
)

// IAttendanceRepository abstracts DynamoDB persistence for AttendanceLog.
//
// The (employee_id, date) composite key is the uniqueness constraint; Create
// must refuse a second log for the same key. GetOpenByEmployeeID looks across
// dates because an open session may span midnight.
type IAttendanceRepository interface {
	Create(ctx context.Context, l entities.AttendanceLog) (entities.AttendanceLog, error)
	Update(ctx context.Context, l entities.AttendanceLog) (entities.AttendanceLog, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (entities.AttendanceLog, error)
	GetOpenByEmployeeID(ctx context.Context, employeeID string) (entities.AttendanceLog, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.AttendanceLog, error)
}

package usecase

import (
	"context"
	"strings"
	"time"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"
)

var (
	ErrInvalidAttendanceEmployee = domainerr.New(domainerr.KindInvalidInput, "invalid employee_id")
	ErrInvalidAttendanceDate     = domainerr.New(domainerr.KindInvalidInput, "invalid attendance date")
	ErrAttendanceSessionOpen     = domainerr.New(domainerr.KindConflict, "an open attendance session already exists for this employee")
	ErrAttendanceAlreadyLogged   = domainerr.New(domainerr.KindConflict, "attendance already recorded for this date")
	ErrNoOpenAttendanceSession   = domainerr.New(domainerr.KindNotFound, "no open attendance session for this employee")
	ErrAttendanceLogNotFound     = domainerr.New(domainerr.KindNotFound, "attendance log not found")
)

// IAttendanceUseCase owns the punch-in/punch-out state machine. A session is
// Open while punch_out is unset and Closed afterwards; closing always derives
// total hours and status together.

type IAttendanceUseCase interface {
	CheckIn(ctx context.Context, employeeID string) (entities.AttendanceLog, error)
	CheckOut(ctx context.Context, employeeID string) (entities.AttendanceLog, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (entities.AttendanceLog, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.AttendanceLog, error)
}

type AttendanceUseCase struct {
	repo  interfaces.IAttendanceRepository
	clock interfaces.IClock
}

var _ IAttendanceUseCase = (*AttendanceUseCase)(nil)

func NewAttendanceUseCase(repo interfaces.IAttendanceRepository, clock interfaces.IClock) *AttendanceUseCase {
	return &AttendanceUseCase{repo: repo, clock: clock}
}

// CheckIn opens a session for the employee. Openness is tracked per employee,
// not per date: a session left open yesterday still blocks today's check-in.
func (u *AttendanceUseCase) CheckIn(ctx context.Context, employeeID string) (entities.AttendanceLog, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return entities.AttendanceLog{}, ErrInvalidAttendanceEmployee
	}

	open, err := u.repo.GetOpenByEmployeeID(ctx, employeeID)
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if open.EmployeeID != "" {
		return entities.AttendanceLog{}, ErrAttendanceSessionOpen
	}

	now := u.clock.Now()
	date := now.Format(entities.AttendanceDateLayout)

	existing, err := u.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if existing.EmployeeID != "" {
		return entities.AttendanceLog{}, ErrAttendanceAlreadyLogged
	}

	l := entities.AttendanceLog{
		EmployeeID: employeeID,
		Date:       date,
		PunchIn:    now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return u.repo.Create(ctx, l)
}

// CheckOut closes the employee's open session, deriving total hours and
// status in one atomic recompute.
func (u *AttendanceUseCase) CheckOut(ctx context.Context, employeeID string) (entities.AttendanceLog, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return entities.AttendanceLog{}, ErrInvalidAttendanceEmployee
	}

	open, err := u.repo.GetOpenByEmployeeID(ctx, employeeID)
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if open.EmployeeID == "" {
		return entities.AttendanceLog{}, ErrNoOpenAttendanceSession
	}

	now := u.clock.Now()
	open.Close(now)
	open.UpdatedAt = now

	return u.repo.Update(ctx, open)
}

func (u *AttendanceUseCase) GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (entities.AttendanceLog, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return entities.AttendanceLog{}, ErrInvalidAttendanceEmployee
	}
	if _, err := time.Parse(entities.AttendanceDateLayout, date); err != nil {
		return entities.AttendanceLog{}, ErrInvalidAttendanceDate
	}

	l, err := u.repo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return entities.AttendanceLog{}, err
	}
	if l.EmployeeID == "" {
		return entities.AttendanceLog{}, ErrAttendanceLogNotFound
	}
	return l, nil
}

func (u *AttendanceUseCase) ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.AttendanceLog, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrInvalidAttendanceEmployee
	}
	return u.repo.ListByEmployeeID(ctx, employeeID)
}

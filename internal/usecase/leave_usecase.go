package usecase

import (
	"context"
	"strings"
	"time"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase/interfaces"

	"github.com/google/uuid"
)

var (
	ErrInvalidLeaveID        = domainerr.New(domainerr.KindInvalidInput, "invalid leave request id")
	ErrInvalidLeaveEmployee  = domainerr.New(domainerr.KindInvalidInput, "invalid employee_id")
	ErrInvalidLeaveType      = domainerr.New(domainerr.KindInvalidInput, "invalid leave_type")
	ErrInvalidLeaveRange     = domainerr.New(domainerr.KindInvalidInput, "from_date must not be after to_date")
	ErrLeaveInPast           = domainerr.New(domainerr.KindInvalidInput, "from_date must not be in the past")
	ErrInvalidLeaveApprover  = domainerr.New(domainerr.KindInvalidInput, "invalid approver id")
	ErrOverlappingLeave      = domainerr.New(domainerr.KindConflict, "leave dates overlap an existing request")
	ErrLeaveRequestNotFound  = domainerr.New(domainerr.KindNotFound, "leave request not found")
	ErrLeaveAlreadyDecided   = domainerr.New(domainerr.KindInvalidStateTransition, "leave request already decided")
)

type ApplyLeaveInput struct {
	EmployeeID string
	LeaveType  string
	FromDate   time.Time
	ToDate     time.Time
	Reason     string
}

// ILeaveUseCase owns leave request creation and the one-shot approval
// decision. The overlap rule blocks a new request against every existing
// request for the employee, whatever its status.

type ILeaveUseCase interface {
	Apply(ctx context.Context, in ApplyLeaveInput) (entities.LeaveRequest, error)
	CheckOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error)
	Approve(ctx context.Context, id, approverID string) (entities.LeaveRequest, error)
	Reject(ctx context.Context, id, approverID string) (entities.LeaveRequest, error)
	GetByID(ctx context.Context, id string) (entities.LeaveRequest, error)
	ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.LeaveRequest, error)
}

type LeaveUseCase struct {
	repo  interfaces.ILeaveRepository
	clock interfaces.IClock
}

var _ ILeaveUseCase = (*LeaveUseCase)(nil)

func NewLeaveUseCase(repo interfaces.ILeaveRepository, clock interfaces.IClock) *LeaveUseCase {
	return &LeaveUseCase{repo: repo, clock: clock}
}

func (u *LeaveUseCase) Apply(ctx context.Context, in ApplyLeaveInput) (entities.LeaveRequest, error) {
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	if in.EmployeeID == "" {
		return entities.LeaveRequest{}, ErrInvalidLeaveEmployee
	}
	in.LeaveType = strings.TrimSpace(in.LeaveType)
	if in.LeaveType == "" {
		return entities.LeaveRequest{}, ErrInvalidLeaveType
	}

	from := entities.TruncateToDate(in.FromDate)
	to := entities.TruncateToDate(in.ToDate)
	if from.IsZero() || to.IsZero() || from.After(to) {
		return entities.LeaveRequest{}, ErrInvalidLeaveRange
	}

	now := u.clock.Now()
	if from.Before(entities.TruncateToDate(now)) {
		return entities.LeaveRequest{}, ErrLeaveInPast
	}

	overlaps, err := u.CheckOverlap(ctx, in.EmployeeID, from, to)
	if err != nil {
		return entities.LeaveRequest{}, err
	}
	if overlaps {
		return entities.LeaveRequest{}, ErrOverlappingLeave
	}

	r := entities.LeaveRequest{
		ID:           uuid.NewString(),
		EmployeeID:   in.EmployeeID,
		LeaveType:    in.LeaveType,
		FromDate:     from,
		ToDate:       to,
		NumberOfDays: entities.InclusiveDays(from, to),
		Reason:       strings.TrimSpace(in.Reason),
		Status:       entities.LeaveStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return u.repo.Create(ctx, r)
}

// CheckOverlap tests the requested range against every existing request for
// the employee. Rejected requests block too; this mirrors the historical
// behavior of the overlap rule.
func (u *LeaveUseCase) CheckOverlap(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	existing, err := u.repo.ListByEmployeeID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	for _, r := range existing {
		if r.OverlapsRange(from, to) {
			return true, nil
		}
	}
	return false, nil
}

func (u *LeaveUseCase) Approve(ctx context.Context, id, approverID string) (entities.LeaveRequest, error) {
	return u.decide(ctx, id, approverID, entities.LeaveStatusApproved)
}

func (u *LeaveUseCase) Reject(ctx context.Context, id, approverID string) (entities.LeaveRequest, error) {
	return u.decide(ctx, id, approverID, entities.LeaveStatusRejected)
}

// decide finalizes a pending request. A request that already left Pending
// cannot be re-decided.
func (u *LeaveUseCase) decide(ctx context.Context, id, approverID string, status entities.LeaveStatus) (entities.LeaveRequest, error) {
	approverID = strings.TrimSpace(approverID)
	if approverID == "" {
		return entities.LeaveRequest{}, ErrInvalidLeaveApprover
	}

	r, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.LeaveRequest{}, err
	}
	if r.Decided() {
		return entities.LeaveRequest{}, ErrLeaveAlreadyDecided
	}

	now := u.clock.Now()
	r.Status = status
	r.DecidedAt = &now
	if status == entities.LeaveStatusApproved {
		r.ApprovedBy = approverID
	}
	r.UpdatedAt = now

	return u.repo.Update(ctx, r)
}

func (u *LeaveUseCase) GetByID(ctx context.Context, id string) (entities.LeaveRequest, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.LeaveRequest{}, ErrInvalidLeaveID
	}
	r, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.LeaveRequest{}, err
	}
	if r.ID == "" {
		return entities.LeaveRequest{}, ErrLeaveRequestNotFound
	}
	return r, nil
}

func (u *LeaveUseCase) ListByEmployeeID(ctx context.Context, employeeID string) ([]entities.LeaveRequest, error) {
	employeeID = strings.TrimSpace(employeeID)
	if employeeID == "" {
		return nil, ErrInvalidLeaveEmployee
	}
	return u.repo.ListByEmployeeID(ctx, employeeID)
}

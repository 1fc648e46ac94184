package response

import (
	"time"

	"crm_backoffice/internal/domain/entities"
)

type LeaveRequestResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	LeaveType    string     `json:"leave_type"`
	FromDate     string     `json:"from_date"`
	ToDate       string     `json:"to_date"`
	NumberOfDays int        `json:"number_of_days"`
	Reason       string     `json:"reason,omitempty"`
	Status       string     `json:"status"`
	ApprovedBy   string     `json:"approved_by,omitempty"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const leaveDateLayout = "2006-01-02"

func FromLeaveRequest(r entities.LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		LeaveType:    r.LeaveType,
		FromDate:     r.FromDate.Format(leaveDateLayout),
		ToDate:       r.ToDate.Format(leaveDateLayout),
		NumberOfDays: r.NumberOfDays,
		Reason:       r.Reason,
		Status:       string(r.Status),
		ApprovedBy:   r.ApprovedBy,
		DecidedAt:    r.DecidedAt,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

func FromLeaveRequests(requests []entities.LeaveRequest) []LeaveRequestResponse {
	out := make([]LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, FromLeaveRequest(r))
	}
	return out
}

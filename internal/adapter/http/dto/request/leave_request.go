package request

import (
	"time"

	"crm_backoffice/internal/usecase"
)

type ApplyLeaveRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
	LeaveType  string `json:"leave_type" binding:"required"`
	FromDate   string `json:"from_date" binding:"required"`
	ToDate     string `json:"to_date" binding:"required"`
	Reason     string `json:"reason"`
}

func (r ApplyLeaveRequest) ToInput() (usecase.ApplyLeaveInput, error) {
	var from, to time.Time
	var err error
	if from, err = parseRequestDate(r.FromDate); err != nil {
		return usecase.ApplyLeaveInput{}, err
	}
	if to, err = parseRequestDate(r.ToDate); err != nil {
		return usecase.ApplyLeaveInput{}, err
	}
	return usecase.ApplyLeaveInput{
		EmployeeID: r.EmployeeID,
		LeaveType:  r.LeaveType,
		FromDate:   from,
		ToDate:     to,
		Reason:     r.Reason,
	}, nil
}

type DecideLeaveRequest struct {
	ApproverID string `json:"approver_id" binding:"required"`
}

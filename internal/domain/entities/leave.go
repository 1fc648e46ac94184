package entities

import "time"

type LeaveStatus string

const (
	LeaveStatusPending  LeaveStatus = "Pending"
	LeaveStatusApproved LeaveStatus = "Approved"
	LeaveStatusRejected LeaveStatus = "Rejected"
)

// LeaveRequest is an employee's request for a date range off.
//
// Storage model (DynamoDB):
//   - PK: id (uuid string)
//   - GSI: employee_id-index (PK: employee_id)
//
// FromDate/ToDate are calendar dates (midnight UTC). NumberOfDays counts both
// endpoints. Once the status leaves Pending the decision is final.

type LeaveRequest struct {
	ID           string      `json:"id"`
	EmployeeID   string      `json:"employee_id"`
	LeaveType    string      `json:"leave_type"`
	FromDate     time.Time   `json:"from_date"`
	ToDate       time.Time   `json:"to_date"`
	NumberOfDays int         `json:"number_of_days"`
	Reason       string      `json:"reason,omitempty"`
	Status       LeaveStatus `json:"status"`
	ApprovedBy   string      `json:"approved_by,omitempty"`
	DecidedAt    *time.Time  `json:"decided_at,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// Decided reports whether the request has already been approved or rejected.
func (r LeaveRequest) Decided() bool { return r.Status != LeaveStatusPending }

// OverlapsRange reports whether the request's inclusive date range intersects
// [from, to].
func (r LeaveRequest) OverlapsRange(from, to time.Time) bool {
	return RangesOverlap(r.FromDate, r.ToDate, from, to)
}

// RangesOverlap is the inclusive interval intersection test:
// [a1,b1] and [a2,b2] overlap iff a1 <= b2 and a2 <= b1.
func RangesOverlap(a1, b1, a2, b2 time.Time) bool {
	return !a1.After(b2) && !a2.After(b1)
}

// InclusiveDays counts calendar days from from to to, both endpoints included.
func InclusiveDays(from, to time.Time) int {
	from = TruncateToDate(from)
	to = TruncateToDate(to)
	return int(to.Sub(from).Hours()/24) + 1
}

// TruncateToDate drops the time-of-day component, keeping midnight UTC.
func TruncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

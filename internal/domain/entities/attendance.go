package entities

import (
	"math"
	"time"
)

type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "Present"
	AttendanceStatusAbsent  AttendanceStatus = "Absent"
	AttendanceStatusHalfDay AttendanceStatus = "Half-Day"
)

// AttendanceDateLayout is the storage format of the log's calendar date.
const AttendanceDateLayout = "2006-01-02"

// AttendanceLog records one punch-in/punch-out session.
//
// Storage model (DynamoDB):
//   - PK: employee_id (string)
//   - SK: date (string, YYYY-MM-DD)
//
// The composite key enforces at most one log per (employee, date). While
// PunchOut is nil the session is open and blocks further check-ins for the
// employee; an open session may span midnight, so openness is tracked per
// employee, not per date.

type AttendanceLog struct {
	EmployeeID string           `json:"employee_id"`
	Date       string           `json:"date"`
	PunchIn    time.Time        `json:"punch_in"`
	PunchOut   *time.Time       `json:"punch_out,omitempty"`
	TotalHours float64          `json:"total_hours"`
	Status     AttendanceStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

func (l AttendanceLog) Open() bool { return l.PunchOut == nil }

// DeriveAttendance computes the session's elapsed hours (rounded to two
// decimals) and the status band it falls into. The two values are always
// derived together; status is never set on its own.
func DeriveAttendance(punchIn, punchOut time.Time) (float64, AttendanceStatus) {
	hours := punchOut.Sub(punchIn).Hours()
	hours = math.Round(hours*100) / 100

	switch {
	case hours < 4:
		return hours, AttendanceStatusAbsent
	case hours < 8:
		return hours, AttendanceStatusHalfDay
	default:
		return hours, AttendanceStatusPresent
	}
}

// Close stamps the punch-out and rederives hours and status in one step.
func (l *AttendanceLog) Close(punchOut time.Time) {
	l.PunchOut = &punchOut
	l.TotalHours, l.Status = DeriveAttendance(l.PunchIn, punchOut)
}

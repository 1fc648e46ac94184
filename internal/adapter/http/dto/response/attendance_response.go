package response

import (
	"time"

	"crm_backoffice/internal/domain/entities"
)

type AttendanceLogResponse struct {
	EmployeeID string     `json:"employee_id"`
	Date       string     `json:"date"`
	PunchIn    time.Time  `json:"punch_in"`
	PunchOut   *time.Time `json:"punch_out,omitempty"`
	TotalHours float64    `json:"total_hours"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func FromAttendanceLog(l entities.AttendanceLog) AttendanceLogResponse {
	return AttendanceLogResponse{
		EmployeeID: l.EmployeeID,
		Date:       l.Date,
		PunchIn:    l.PunchIn,
		PunchOut:   l.PunchOut,
		TotalHours: l.TotalHours,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func FromAttendanceLogs(logs []entities.AttendanceLog) []AttendanceLogResponse {
	out := make([]AttendanceLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, FromAttendanceLog(l))
	}
	return out
}

package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveAttendance(t *testing.T) {
	in := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		out    time.Time
		hours  float64
		status AttendanceStatus
	}{
		{"under four hours is absent", in.Add(3*time.Hour + 30*time.Minute), 3.5, AttendanceStatusAbsent},
		{"exactly four hours is half day", in.Add(4 * time.Hour), 4, AttendanceStatusHalfDay},
		{"under eight hours is half day", in.Add(7*time.Hour + 59*time.Minute), 7.98, AttendanceStatusHalfDay},
		{"exactly eight hours is present", in.Add(8 * time.Hour), 8, AttendanceStatusPresent},
		{"long day is present", in.Add(8*time.Hour + 30*time.Minute), 8.5, AttendanceStatusPresent},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hours, status := DeriveAttendance(in, tc.out)
			assert.InDelta(t, tc.hours, hours, 0.001)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestAttendanceLog_Close(t *testing.T) {
	in := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	l := AttendanceLog{EmployeeID: "emp-1", Date: "2024-06-03", PunchIn: in}
	require.True(t, l.Open())

	out := in.Add(8*time.Hour + 30*time.Minute)
	l.Close(out)

	assert.False(t, l.Open())
	require.NotNil(t, l.PunchOut)
	assert.True(t, l.PunchOut.Equal(out))
	assert.Equal(t, 8.5, l.TotalHours)
	assert.Equal(t, AttendanceStatusPresent, l.Status)
}

package interfaces

import "time"

// IClock abstracts "now" so lifecycle rules (overdue derivation, punch-out
// timing, past-date validation) are testable against a fixed instant.
type IClock interface {
	Now() time.Time
}

// SystemClock is the production clock. All timestamps are UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

package entities

// Counter is one row of the named monotonic sequence table.
//
// Storage model (DynamoDB):
//   - PK: series (string)
//   - SK: period (number; the calendar year for yearly-reset series, 0 for
//     series without a period)
//
// Value only ever moves forward. Each increment is observed by exactly one
// allocation attempt; the backing store performs the increment as a single
// atomic update, never as a read-then-write pair.

type Counter struct {
	Series string `json:"series"`
	Period int    `json:"period"`
	Value  int    `json:"value"`
}

// Sequence series owned by this service.
const (
	SeriesInvoice = "invoice"
	SeriesTicket  = "ticket"
)

// UnscopedPeriod is the period key for series that never reset.
const UnscopedPeriod = 0

package repository

import (
	"os"
	"time"

	"crm_backoffice/internal/domain/entities"

	"github.com/shopspring/decimal"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Stored timestamps are RFC3339Nano, calendar dates YYYY-MM-DD, money decimal
// strings. Parse failures yield zero values; repositories trust their own
// writes (the same convention the marshalling side uses).

func parseTime(s string) time.Time {
	t, _ := time.Parse(time.RFC3339Nano, s)
	return t
}

func parseDate(s string) time.Time {
	t, _ := time.Parse(entities.AttendanceDateLayout, s)
	return t
}

func parseDecimal(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

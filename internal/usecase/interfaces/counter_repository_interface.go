package interfaces

import "context"

// ICounterRepository abstracts the named sequence table.
//
// Increment must be a single atomic find-and-increment against the store: the
// row is created with value 1 when absent, and no two concurrent callers may
// observe the same returned value for the same (series, period) key.
type ICounterRepository interface {
	Increment(ctx context.Context, series string, period int) (int, error)
}

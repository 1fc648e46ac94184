package usecase

import (
	"context"
	"fmt"
	"log"

	"crm_backoffice/internal/domain/domainerr"
	"crm_backoffice/internal/usecase/interfaces"
)

// maxCodeAttempts bounds the allocate/verify loop. Exhausting it implies
// systemic counter corruption or extreme contention, not a normal user error.
const maxCodeAttempts = 10

var ErrCodeAllocationExhausted = domainerr.New(domainerr.KindAllocationExhausted, "sequence code allocation attempts exhausted")

// ExistsFunc reports whether an entity already bears the candidate code.
type ExistsFunc func(ctx context.Context, code string) (bool, error)

// ICodeGenerator issues collision-checked human-readable codes backed by the
// atomic counter table.

type ICodeGenerator interface {
	Generate(ctx context.Context, series string, period int, format func(value int) string, exists ExistsFunc) (string, error)
}

type CodeGenerator struct {
	counters interfaces.ICounterRepository
}

var _ ICodeGenerator = (*CodeGenerator)(nil)

func NewCodeGenerator(counters interfaces.ICounterRepository) *CodeGenerator {
	return &CodeGenerator{counters: counters}
}

// Generate allocates the next sequence value, formats it, and verifies no
// entity already carries the resulting code before returning it.
//
// The counter increment itself is atomic and race-free; the verify step is a
// defensive outer layer for stores where counter-increment and entity-insert
// cannot commit in one transaction (an interrupted write may have persisted a
// code without the counter, or the counter may have been reset). A collision
// loops again with a fresh allocation, never reusing the taken value.
func (g *CodeGenerator) Generate(ctx context.Context, series string, period int, format func(value int) string, exists ExistsFunc) (string, error) {
	for attempt := 1; attempt <= maxCodeAttempts; attempt++ {
		value, err := g.counters.Increment(ctx, series, period)
		if err != nil {
			return "", domainerr.Wrap(domainerr.KindStorage, fmt.Sprintf("allocating %s/%d", series, period), err)
		}

		code := format(value)
		taken, err := exists(ctx, code)
		if err != nil {
			return "", domainerr.Wrap(domainerr.KindStorage, fmt.Sprintf("checking code %s", code), err)
		}
		if !taken {
			return code, nil
		}
		log.Printf("[sequence][usecase] code collision series=%s period=%d code=%s attempt=%d", series, period, code, attempt)
	}
	return "", ErrCodeAllocationExhausted
}

// InvoiceCodeFormat renders "INV-<year>-NNN" with the value zero-padded to
// three digits (wider values keep all their digits).
func InvoiceCodeFormat(year int) func(int) string {
	return func(value int) string { return fmt.Sprintf("INV-%d-%03d", year, value) }
}

// TicketCodeFormat renders "TNNN". The ticket series has no period; it never
// resets.
func TicketCodeFormat() func(int) string {
	return func(value int) string { return fmt.Sprintf("T%03d", value) }
}

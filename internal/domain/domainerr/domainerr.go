package domainerr

import "errors"

// Kind classifies domain failures so that callers (and the HTTP edge) can map
// them without string matching.
//
// Taxonomy:
//   - InvalidInput: malformed or missing fields, enum violations. Caller fixes
//     the request; never retried automatically.
//   - Conflict: the request collides with existing state (overlapping leave,
//     an already-open attendance session).
//   - NotFound: a referenced entity does not exist.
//   - InvalidStateTransition: the entity's lifecycle forbids the operation
//     (deleting a paid invoice, re-deciding a leave request).
//   - AllocationExhausted: the code generator ran out of collision retries.
//     Operationally alarming; implies counter corruption or extreme contention.
//   - Storage: a backing-store failure, propagated unchanged.

type Kind string

const (
	KindInvalidInput           Kind = "invalid_input"
	KindConflict               Kind = "conflict"
	KindNotFound               Kind = "not_found"
	KindInvalidStateTransition Kind = "invalid_state_transition"
	KindAllocationExhausted    Kind = "allocation_exhausted"
	KindStorage                Kind = "storage"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind carried by err, or the empty Kind when err is not a
// domain error.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err carries the given Kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

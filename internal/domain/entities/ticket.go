package entities

import "time"

// TicketStatus enumerates official ticket states. Any state is reachable from
// any other via an explicit update; only enum membership is enforced.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "Low"
	TicketPriorityMedium TicketPriority = "Medium"
	TicketPriorityHigh   TicketPriority = "High"
)

func (p TicketPriority) Valid() bool {
	switch p {
	case TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
		return true
	}
	return false
}

// Comment is an immutable entry in a ticket's thread. The ID is assigned at
// append time; comments are never edited or removed.
type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Ticket is a client support request.
//
// Storage model (DynamoDB):
//   - PK: code (the generated "T<seq>" string)
//   - GSI: client_id-index (PK: client_id)
//
// ClientResolved rides alongside Status: the owning client can flag the ticket
// resolved (or take that back) regardless of the official state. The flag and
// its timestamp always move together, and each toggle leaves a system comment
// in the thread.

type Ticket struct {
	Code               string         `json:"code"`
	ClientID           string         `json:"client_id"`
	Title              string         `json:"title"`
	Description        string         `json:"description"`
	Priority           TicketPriority `json:"priority"`
	Status             TicketStatus   `json:"status"`
	AssignedEmployeeID string         `json:"assigned_employee_id,omitempty"`
	ClientResolved     bool           `json:"client_resolved"`
	ClientResolvedAt   *time.Time     `json:"client_resolved_at,omitempty"`
	Comments           []Comment      `json:"comments"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

// ClientDeletable reports whether the owning client may delete the ticket.
// Work in flight (In Progress) or awaiting confirmation (Resolved) is
// protected.
func (t Ticket) ClientDeletable() bool {
	return t.Status == TicketStatusPending || t.Status == TicketStatusClosed
}

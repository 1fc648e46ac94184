package response

import (
	"time"

	"crm_backoffice/internal/domain/entities"
)

type CommentResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}

type TicketResponse struct {
	Code               string            `json:"code"`
	ClientID           string            `json:"client_id"`
	Title              string            `json:"title"`
	Description        string            `json:"description,omitempty"`
	Priority           string            `json:"priority"`
	Status             string            `json:"status"`
	AssignedEmployeeID string            `json:"assigned_employee_id,omitempty"`
	ClientResolved     bool              `json:"client_resolved"`
	ClientResolvedAt   *time.Time        `json:"client_resolved_at,omitempty"`
	Comments           []CommentResponse `json:"comments"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

func FromComment(c entities.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
	}
}

func FromTicket(t entities.Ticket) TicketResponse {
	resp := TicketResponse{
		Code:               t.Code,
		ClientID:           t.ClientID,
		Title:              t.Title,
		Description:        t.Description,
		Priority:           string(t.Priority),
		Status:             string(t.Status),
		AssignedEmployeeID: t.AssignedEmployeeID,
		ClientResolved:     t.ClientResolved,
		ClientResolvedAt:   t.ClientResolvedAt,
		Comments:           make([]CommentResponse, 0, len(t.Comments)),
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	for _, c := range t.Comments {
		resp.Comments = append(resp.Comments, FromComment(c))
	}
	return resp
}

func FromTickets(tickets []entities.Ticket) []TicketResponse {
	out := make([]TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, FromTicket(t))
	}
	return out
}

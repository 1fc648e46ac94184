package request

type CreateTicketRequest struct {
	ClientID    string `json:"client_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
}

type UpdateTicketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type AssignTicketRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

type AddCommentRequest struct {
	AuthorID string `json:"author_id" binding:"required"`
	Text     string `json:"text" binding:"required"`
}

type TicketResolutionRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Resolved *bool  `json:"resolved" binding:"required"`
}

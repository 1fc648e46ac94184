package handlers

import (
	"errors"
	"net/http"

	request "crm_backoffice/internal/adapter/http/dto/request"
	response "crm_backoffice/internal/adapter/http/dto/response"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase"
	"crm_backoffice/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidTicketPayload = pkg.NewDomainErrorSimple("INVALID_TICKET_INPUT", "Invalid ticket payload", http.StatusBadRequest)
)

// TicketHandler handles HTTP requests for client support tickets.

type TicketHandler struct {
	usecase usecase.ITicketUseCase
}

func NewTicketHandler(uc usecase.ITicketUseCase) *TicketHandler {
	return &TicketHandler{usecase: uc}
}

func (h *TicketHandler) CreateTicket(c *gin.Context) {
	var payload request.CreateTicketRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTicketPayload.HTTPStatus, errInvalidTicketPayload.ToHTTPError())
		return
	}

	ticket, err := h.usecase.Create(c.Request.Context(), usecase.CreateTicketInput{
		ClientID:    payload.ClientID,
		Title:       payload.Title,
		Description: payload.Description,
		Priority:    entities.TicketPriority(payload.Priority),
	})
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromTicket(ticket))
}

func (h *TicketHandler) GetTicketByCode(c *gin.Context) {
	ticket, err := h.usecase.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTicket(ticket))
}

func (h *TicketHandler) ListTicketsByClient(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "client_id query parameter is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	tickets, err := h.usecase.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTickets(tickets))
}

func (h *TicketHandler) UpdateTicketStatus(c *gin.Context) {
	var payload request.UpdateTicketStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTicketPayload.HTTPStatus, errInvalidTicketPayload.ToHTTPError())
		return
	}

	ticket, err := h.usecase.UpdateStatus(c.Request.Context(), c.Param("code"), entities.TicketStatus(payload.Status))
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTicket(ticket))
}

func (h *TicketHandler) AssignTicket(c *gin.Context) {
	var payload request.AssignTicketRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTicketPayload.HTTPStatus, errInvalidTicketPayload.ToHTTPError())
		return
	}

	ticket, err := h.usecase.Assign(c.Request.Context(), c.Param("code"), payload.EmployeeID)
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTicket(ticket))
}

func (h *TicketHandler) AddTicketComment(c *gin.Context) {
	var payload request.AddCommentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTicketPayload.HTTPStatus, errInvalidTicketPayload.ToHTTPError())
		return
	}

	comment, err := h.usecase.AddComment(c.Request.Context(), c.Param("code"), payload.AuthorID, payload.Text)
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromComment(comment))
}

// SetTicketResolution toggles the client-side resolution flag. Only the
// owning client may do this.
func (h *TicketHandler) SetTicketResolution(c *gin.Context) {
	var payload request.TicketResolutionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidTicketPayload.HTTPStatus, errInvalidTicketPayload.ToHTTPError())
		return
	}

	ticket, err := h.usecase.SetClientResolution(c.Request.Context(), c.Param("code"), payload.ClientID, *payload.Resolved)
	if err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromTicket(ticket))
}

// DeleteTicketByClient deletes a ticket on behalf of its owning client. The
// client identifies itself via the client_id query parameter.
func (h *TicketHandler) DeleteTicketByClient(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "client_id query parameter is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if err := h.usecase.DeleteByClient(c.Request.Context(), c.Param("code"), clientID); err != nil {
		appErr := mapTicketError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapTicketError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidTicketCode),
		errors.Is(err, usecase.ErrInvalidTicketClientID),
		errors.Is(err, usecase.ErrInvalidTicketTitle),
		errors.Is(err, usecase.ErrInvalidTicketPriority),
		errors.Is(err, usecase.ErrInvalidTicketStatus),
		errors.Is(err, usecase.ErrInvalidCommentText),
		errors.Is(err, usecase.ErrInvalidCommentAuthor):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrTicketNotOwned):
		return pkg.NewDomainErrorSimple("TICKET_NOT_OWNED", "Ticket does not belong to this client", http.StatusForbidden)
	case errors.Is(err, usecase.ErrTicketNotFound):
		return pkg.NewDomainErrorSimple("TICKET_NOT_FOUND", "Ticket not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrTicketNotDeletable):
		return pkg.NewDomainErrorSimple("TICKET_NOT_DELETABLE", "Ticket cannot be deleted in its current status", http.StatusConflict)
	case errors.Is(err, usecase.ErrCodeAllocationExhausted):
		return pkg.NewDomainError("CODE_ALLOCATION_EXHAUSTED", "Could not allocate a ticket code", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handlers

import (
	"context"
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
	errInvalidLeavePayload = pkg.NewDomainErrorSimple("INVALID_LEAVE_INPUT", "Invalid leave payload", http.StatusBadRequest)
)

// LeaveHandler handles HTTP requests for employee leave requests.

type LeaveHandler struct {
	usecase usecase.ILeaveUseCase
}

func NewLeaveHandler(uc usecase.ILeaveUseCase) *LeaveHandler {
	return &LeaveHandler{usecase: uc}
}

func (h *LeaveHandler) ApplyLeave(c *gin.Context) {
	var payload request.ApplyLeaveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLeavePayload.HTTPStatus, errInvalidLeavePayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidLeavePayload.HTTPStatus, errInvalidLeavePayload.ToHTTPError())
		return
	}

	leave, err := h.usecase.Apply(c.Request.Context(), in)
	if err != nil {
		appErr := mapLeaveError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromLeaveRequest(leave))
}

func (h *LeaveHandler) GetLeaveByID(c *gin.Context) {
	leave, err := h.usecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		appErr := mapLeaveError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromLeaveRequest(leave))
}

func (h *LeaveHandler) ListLeavesByEmployee(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "employee_id query parameter is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	leaves, err := h.usecase.ListByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		appErr := mapLeaveError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromLeaveRequests(leaves))
}

func (h *LeaveHandler) ApproveLeave(c *gin.Context) {
	h.decideLeave(c, h.usecase.Approve)
}

func (h *LeaveHandler) RejectLeave(c *gin.Context) {
	h.decideLeave(c, h.usecase.Reject)
}

func (h *LeaveHandler) decideLeave(
	c *gin.Context,
	decider func(ctx context.Context, id, approverID string) (entities.LeaveRequest, error),
) {
	var payload request.DecideLeaveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidLeavePayload.HTTPStatus, errInvalidLeavePayload.ToHTTPError())
		return
	}

	leave, err := decider(c.Request.Context(), c.Param("id"), payload.ApproverID)
	if err != nil {
		appErr := mapLeaveError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromLeaveRequest(leave))
}

func mapLeaveError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidLeaveID),
		errors.Is(err, usecase.ErrInvalidLeaveEmployee),
		errors.Is(err, usecase.ErrInvalidLeaveType),
		errors.Is(err, usecase.ErrInvalidLeaveRange),
		errors.Is(err, usecase.ErrLeaveInPast),
		errors.Is(err, usecase.ErrInvalidLeaveApprover):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrOverlappingLeave):
		return pkg.NewDomainErrorSimple("OVERLAPPING_LEAVE", "Leave dates overlap an existing request", http.StatusConflict)
	case errors.Is(err, usecase.ErrLeaveRequestNotFound):
		return pkg.NewDomainErrorSimple("LEAVE_NOT_FOUND", "Leave request not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrLeaveAlreadyDecided):
		return pkg.NewDomainErrorSimple("LEAVE_ALREADY_DECIDED", "Leave request already decided", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

package handlers

import (
	"errors"
	"net/http"

	request "crm_backoffice/internal/adapter/http/dto/request"
	response "crm_backoffice/internal/adapter/http/dto/response"
	"crm_backoffice/internal/usecase"
	"crm_backoffice/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidAttendancePayload = pkg.NewDomainErrorSimple("INVALID_ATTENDANCE_INPUT", "Invalid attendance payload", http.StatusBadRequest)
)

// AttendanceHandler handles HTTP requests for employee punch-in/punch-out.

type AttendanceHandler struct {
	usecase usecase.IAttendanceUseCase
}

func NewAttendanceHandler(uc usecase.IAttendanceUseCase) *AttendanceHandler {
	return &AttendanceHandler{usecase: uc}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	var payload request.CheckInRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAttendancePayload.HTTPStatus, errInvalidAttendancePayload.ToHTTPError())
		return
	}

	logEntry, err := h.usecase.CheckIn(c.Request.Context(), payload.EmployeeID)
	if err != nil {
		appErr := mapAttendanceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromAttendanceLog(logEntry))
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	var payload request.CheckOutRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidAttendancePayload.HTTPStatus, errInvalidAttendancePayload.ToHTTPError())
		return
	}

	logEntry, err := h.usecase.CheckOut(c.Request.Context(), payload.EmployeeID)
	if err != nil {
		appErr := mapAttendanceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAttendanceLog(logEntry))
}

// GetAttendance returns either the log for one date (date query parameter) or
// the employee's full history.
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	employeeID := c.Param("employee_id")

	if date := c.Query("date"); date != "" {
		logEntry, err := h.usecase.GetByEmployeeAndDate(c.Request.Context(), employeeID, date)
		if err != nil {
			appErr := mapAttendanceError(err)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.JSON(http.StatusOK, response.FromAttendanceLog(logEntry))
		return
	}

	logs, err := h.usecase.ListByEmployeeID(c.Request.Context(), employeeID)
	if err != nil {
		appErr := mapAttendanceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromAttendanceLogs(logs))
}

func mapAttendanceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidAttendanceEmployee), errors.Is(err, usecase.ErrInvalidAttendanceDate):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrAttendanceSessionOpen):
		return pkg.NewDomainErrorSimple("ATTENDANCE_SESSION_OPEN", "An open attendance session already exists for this employee", http.StatusConflict)
	case errors.Is(err, usecase.ErrAttendanceAlreadyLogged):
		return pkg.NewDomainErrorSimple("ATTENDANCE_ALREADY_LOGGED", "Attendance already recorded for this date", http.StatusConflict)
	case errors.Is(err, usecase.ErrNoOpenAttendanceSession):
		return pkg.NewDomainErrorSimple("NO_OPEN_ATTENDANCE_SESSION", "No open attendance session for this employee", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAttendanceLogNotFound):
		return pkg.NewDomainErrorSimple("ATTENDANCE_LOG_NOT_FOUND", "Attendance log not found", http.StatusNotFound)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

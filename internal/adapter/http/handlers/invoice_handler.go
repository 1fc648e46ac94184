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
	errInvalidInvoicePayload = pkg.NewDomainErrorSimple("INVALID_INVOICE_INPUT", "Invalid invoice payload", http.StatusBadRequest)
)

// InvoiceHandler handles HTTP requests for client invoices.

type InvoiceHandler struct {
	usecase usecase.IInvoiceUseCase
}

func NewInvoiceHandler(uc usecase.IInvoiceUseCase) *InvoiceHandler {
	return &InvoiceHandler{usecase: uc}
}

// CreateInvoice creates an invoice; the code is generated server-side and the
// amounts are derived from the submitted items.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var payload request.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.Create(c.Request.Context(), in)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusCreated, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) GetInvoiceByCode(c *gin.Context) {
	invoice, err := h.usecase.GetByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// ListInvoicesByClient returns every invoice for a client via the client_id
// query parameter.
func (h *InvoiceHandler) ListInvoicesByClient(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "client_id query parameter is required", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	invoices, err := h.usecase.ListByClientID(c.Request.Context(), clientID)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoices(invoices))
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var payload request.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	in, err := payload.ToInput()
	if err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.UpdateDetails(c.Request.Context(), c.Param("code"), in)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

// MarkInvoicePaid performs the explicit Paid transition. An omitted
// payment_date defaults to the current time.
func (h *InvoiceHandler) MarkInvoicePaid(c *gin.Context) {
	var payload request.MarkInvoicePaidRequest
	// An empty body is acceptable; payment_date then defaults server-side.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
			return
		}
	}

	paymentDate, err := payload.ResolvePaymentDate()
	if err != nil {
		c.JSON(errInvalidInvoicePayload.HTTPStatus, errInvalidInvoicePayload.ToHTTPError())
		return
	}

	invoice, err := h.usecase.MarkPaid(c.Request.Context(), c.Param("code"), paymentDate)
	if err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromInvoice(invoice))
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("code")); err != nil {
		appErr := mapInvoiceError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.Status(http.StatusNoContent)
}

func mapInvoiceError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInvoiceCode),
		errors.Is(err, usecase.ErrInvalidInvoiceClientID),
		errors.Is(err, usecase.ErrInvalidInvoiceItems),
		errors.Is(err, usecase.ErrInvalidInvoiceTaxRate),
		errors.Is(err, usecase.ErrInvalidInvoiceDueDate),
		errors.Is(err, usecase.ErrInvalidInvoiceStatus),
		errors.Is(err, usecase.ErrInvalidInvoiceAmount):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrStatusPaidViaPayment):
		return pkg.NewDomainErrorSimple("STATUS_PAID_VIA_PAYMENT", "Status Paid can only be set through the payment transition", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaidInvoiceImmutable):
		return pkg.NewDomainErrorSimple("PAID_INVOICE_IMMUTABLE", "Paid invoice cannot be deleted", http.StatusConflict)
	case errors.Is(err, usecase.ErrCodeAllocationExhausted):
		return pkg.NewDomainError("CODE_ALLOCATION_EXHAUSTED", "Could not allocate an invoice code", err, http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

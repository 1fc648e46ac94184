package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	response "crm_backoffice/internal/adapter/http/dto/response"
	"crm_backoffice/internal/usecase"
	"crm_backoffice/pkg"

	"github.com/gin-gonic/gin"
)

// InvoicePaymentHandler handles HTTP requests for invoice payments.

type InvoicePaymentHandler struct {
	usecase usecase.IInvoicePaymentUseCase
}

func NewInvoicePaymentHandler(uc usecase.IInvoicePaymentUseCase) *InvoicePaymentHandler {
	return &InvoicePaymentHandler{usecase: uc}
}

// CreatePaymentByInvoiceCode charges an invoice through the payment provider
// and, on success, marks the invoice Paid.
func (h *InvoicePaymentHandler) CreatePaymentByInvoiceCode(c *gin.Context) {
	invoiceCode := c.Param("code")
	log.Printf("[payment][handler] create start invoice_code=%s", invoiceCode)
	mockMode := isPaymentGatewayMockEnabled()
	payload, err := readProviderPayload(c)
	if err != nil {
		if mockMode {
			log.Printf("[payment][handler] payload invalid in mock mode; fallback to empty payload invoice_code=%s err=%v", invoiceCode, err)
			payload = json.RawMessage("{}")
		} else {
			log.Printf("[payment][handler] invalid payload invoice_code=%s err=%v", invoiceCode, err)
			appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
			c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
	}

	created, err := h.usecase.CreateByInvoiceCode(c.Request.Context(), invoiceCode, payload)
	if err != nil {
		log.Printf("[payment][handler] create failed invoice_code=%s err=%v", invoiceCode, err)
		appErr := mapInvoicePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	log.Printf("[payment][handler] create success invoice_code=%s payment_id=%s status=%s", invoiceCode, created.ID, created.Status)

	c.JSON(http.StatusOK, response.FromInvoicePayment(created))
}

// GetPaymentByInvoiceCode returns the latest payment for an invoice.
func (h *InvoicePaymentHandler) GetPaymentByInvoiceCode(c *gin.Context) {
	invoiceCode := c.Param("code")
	log.Printf("[payment][handler] get-by-invoice start invoice_code=%s", invoiceCode)

	payments, err := h.usecase.ListByInvoiceCode(c.Request.Context(), invoiceCode)
	if err != nil {
		log.Printf("[payment][handler] get-by-invoice failed invoice_code=%s err=%v", invoiceCode, err)
		appErr := mapInvoicePaymentError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	if len(payments) == 0 {
		log.Printf("[payment][handler] get-by-invoice not-found invoice_code=%s", invoiceCode)
		appErr := pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	latest := payments[0]
	for _, p := range payments[1:] {
		if p.Date.After(latest.Date) {
			latest = p
		}
	}
	log.Printf("[payment][handler] get-by-invoice success invoice_code=%s payment_id=%s status=%s", invoiceCode, latest.ID, latest.Status)

	c.JSON(http.StatusOK, response.FromInvoicePayment(latest))
}

func readProviderPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["provider_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("provider_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapInvoicePaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentInvoiceCode), errors.Is(err, usecase.ErrInvalidPaymentPayload):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvoiceNotFound):
		return pkg.NewDomainErrorSimple("INVOICE_NOT_FOUND", "Invoice not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrInvoiceAlreadyPaid):
		return pkg.NewDomainErrorSimple("INVOICE_ALREADY_PAID", "Invoice already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_CONFIGURED", "Payment provider not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func isPaymentGatewayMockEnabled() bool {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PAYMENT_GATEWAY_MOCK")))
	switch v {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

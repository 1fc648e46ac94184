package routes

import (
	"crm_backoffice/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathInvoices   = "/invoices"
	PathTickets    = "/tickets"
	PathAttendance = "/attendance"
	PathLeaves     = "/leaves"
	PathPayments   = "/payments"
)

func addBackofficeRoutes(
	rg *gin.RouterGroup,
	invoiceHandler *handlers.InvoiceHandler,
	ticketHandler *handlers.TicketHandler,
	attendanceHandler *handlers.AttendanceHandler,
	leaveHandler *handlers.LeaveHandler,
	paymentHandler *handlers.InvoicePaymentHandler,
) {
	invoices := rg.Group(PathInvoices)
	{
		invoices.POST("", invoiceHandler.CreateInvoice)
		invoices.GET("", invoiceHandler.ListInvoicesByClient)
		invoices.GET("/:code", invoiceHandler.GetInvoiceByCode)
		invoices.PUT("/:code", invoiceHandler.UpdateInvoice)
		invoices.PATCH("/:code/pay", invoiceHandler.MarkInvoicePaid)
		invoices.DELETE("/:code", invoiceHandler.DeleteInvoice)
	}

	tickets := rg.Group(PathTickets)
	{
		tickets.POST("", ticketHandler.CreateTicket)
		tickets.GET("", ticketHandler.ListTicketsByClient)
		tickets.GET("/:code", ticketHandler.GetTicketByCode)
		tickets.PATCH("/:code/status", ticketHandler.UpdateTicketStatus)
		tickets.PATCH("/:code/assign", ticketHandler.AssignTicket)
		tickets.POST("/:code/comments", ticketHandler.AddTicketComment)
		tickets.PATCH("/:code/resolution", ticketHandler.SetTicketResolution)
		tickets.DELETE("/:code", ticketHandler.DeleteTicketByClient)
	}

	attendance := rg.Group(PathAttendance)
	{
		attendance.POST("/check-in", attendanceHandler.CheckIn)
		attendance.POST("/check-out", attendanceHandler.CheckOut)
		attendance.GET("/:employee_id", attendanceHandler.GetAttendance)
	}

	leaves := rg.Group(PathLeaves)
	{
		leaves.POST("", leaveHandler.ApplyLeave)
		leaves.GET("", leaveHandler.ListLeavesByEmployee)
		leaves.GET("/:id", leaveHandler.GetLeaveByID)
		leaves.PATCH("/:id/approve", leaveHandler.ApproveLeave)
		leaves.PATCH("/:id/reject", leaveHandler.RejectLeave)
	}

	payments := rg.Group(PathPayments)
	{
		payments.POST("/:code", paymentHandler.CreatePaymentByInvoiceCode)
		payments.GET("/:code", paymentHandler.GetPaymentByInvoiceCode)
	}
}

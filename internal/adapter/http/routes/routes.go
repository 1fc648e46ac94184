package routes

import (
	"log"
	"os"
	"strconv"

	_ "crm_backoffice/docs" // This will be auto-generated
	"crm_backoffice/internal/adapter/http/handlers"
	repository2 "crm_backoffice/internal/adapter/persistence/repository"
	"crm_backoffice/internal/infrastructure/database"
	"crm_backoffice/internal/infrastructure/payments"
	"crm_backoffice/internal/usecase"
	"crm_backoffice/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()
	clock := interfaces.SystemClock{}

	counterRepo := repository2.NewCounterDynamoRepository(ddb)
	invoiceRepo := repository2.NewInvoiceDynamoRepository(ddb)
	ticketRepo := repository2.NewTicketDynamoRepository(ddb)
	attendanceRepo := repository2.NewAttendanceDynamoRepository(ddb)
	leaveRepo := repository2.NewLeaveDynamoRepository(ddb)
	paymentRepo := repository2.NewInvoicePaymentDynamoRepository(ddb)

	codeGenerator := usecase.NewCodeGenerator(counterRepo)

	invoiceUseCase := usecase.NewInvoiceUseCase(invoiceRepo, codeGenerator, clock)
	ticketUseCase := usecase.NewTicketUseCase(ticketRepo, codeGenerator, clock)
	attendanceUseCase := usecase.NewAttendanceUseCase(attendanceRepo, clock)
	leaveUseCase := usecase.NewLeaveUseCase(leaveRepo, clock)

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	paymentUseCase := usecase.NewInvoicePaymentUseCase(paymentRepo, invoiceUseCase, paymentGateway, clock)

	invoiceHandler := handlers.NewInvoiceHandler(invoiceUseCase)
	ticketHandler := handlers.NewTicketHandler(ticketUseCase)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceUseCase)
	leaveHandler := handlers.NewLeaveHandler(leaveUseCase)
	paymentHandler := handlers.NewInvoicePaymentHandler(paymentUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addBackofficeRoutes(v1, invoiceHandler, ticketHandler, attendanceHandler, leaveHandler, paymentHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/creditcard-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CardUC       *usecase.CardUseCase
	OperationUC  *usecase.OperationUseCase
	InvoiceUC    *usecase.InvoiceUseCase
	InvoicePDFUC *usecase.InvoicePDFUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Cards
	cards := api.Group("/cards")
	cardHandler := NewCardHandler(deps.CardUC)
	cards.Post("/", cardHandler.Create)
	cards.Get("/:id", cardHandler.GetByID)

	// Operations (libro mayor)
	operations := api.Group("/operations")
	operationHandler := NewOperationHandler(deps.OperationUC)
	operations.Post("/", operationHandler.Charge)
	operations.Get("/", operationHandler.ListByPeriod)
	operations.Post("/:id/rollback", operationHandler.Rollback)
	operations.Get("/:id", operationHandler.GetByID)

	// Invoices
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDFUC)
	invoices.Post("/generate/:creditCardID", invoiceHandler.Generate)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Get("/", invoiceHandler.GetByPeriod)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Get("/:id", invoiceHandler.GetByID)
}

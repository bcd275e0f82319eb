package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/bizflow-api/internal/application/analytics"
	"github.com/jhoicas/bizflow-api/internal/application/billing"
	"github.com/jhoicas/bizflow-api/internal/application/inventory"
	"github.com/jhoicas/bizflow-api/internal/application/ports"
	"github.com/jhoicas/bizflow-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC          *inventory.ItemUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	ItemParser      ports.ItemSheetParser
	SaleUC          *billing.SaleUseCase
	ReceiptUC       *billing.ReceiptUseCase
	CustomerUC      *billing.CustomerUseCase
	ExpenseUC       *billing.ExpenseUseCase
	SupplierUC      *inventory.SupplierUseCase
	DashboardUC     *analytics.DashboardUseCase
	MarginsUC       *analytics.MarginsUseCase
	ReportUC        *analytics.ReportUseCase
	AIUC            *usecase.AIUseCase
	JWTSecret       string
	Log             zerolog.Logger
}

// Router registra las rutas de la API. Todo bajo /api requiere Bearer Token con account_id.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Inventario; las rutas fijas van antes de /:id
	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.ReplenishmentUC, deps.DashboardUC, deps.ItemParser, deps.Log)
	invGroup.Post("/", inventoryHandler.Create)
	invGroup.Get("/", inventoryHandler.List)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
	invGroup.Post("/import", inventoryHandler.Import)
	invGroup.Get("/:id", inventoryHandler.GetByID)
	invGroup.Post("/:id/restock", inventoryHandler.Restock)

	// Ventas
	sales := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC, deps.ReceiptUC, deps.Log)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/receipt", saleHandler.Receipt)

	// Clientes y cobros
	customers := api.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Log)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/:id/payments", customerHandler.RecordPayment)
	customers.Put("/:id/reminder", customerHandler.SetReminder)
	customers.Get("/:id/reminder-message", customerHandler.ReminderMessage)

	// Gastos
	expenses := api.Group("/expenses")
	expenseHandler := NewExpenseHandler(deps.ExpenseUC, deps.Log)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)

	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.Log)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.MarginsUC, deps.Log)
	reports.Get("/export", reportHandler.Export)
	reports.Get("/margins", reportHandler.GetMargins)

	aiHandler := NewAIHandler(deps.AIUC, deps.Log)
	api.Post("/assistant", aiHandler.Ask)
}

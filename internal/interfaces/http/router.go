package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/stockops/internal/application/analytics"
	"github.com/jhoicas/stockops/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ValidateOperation *inventory.ValidateOperationUseCase
	CreateAdjustment  *inventory.CreateAdjustmentUseCase
	Lifecycle         *inventory.LifecycleUseCase
	Queries           *inventory.QueryUseCase
	Voucher           *inventory.VoucherUseCase
	Replenishment     *inventory.ReplenishmentUseCase
	Dashboard         *appanalytics.DashboardUseCase
	Health            *HealthHandler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Health != nil {
		app.Get("/health", deps.Health.Health)
	}

	api := app.Group("/api")

	opHandler := NewOperationHandler(deps.ValidateOperation, deps.Lifecycle, deps.Queries, deps.Voucher)
	operations := api.Group("/operations")
	operations.Post("/", opHandler.Create)
	operations.Get("/", opHandler.List)
	operations.Get("/:id", opHandler.Get)
	operations.Get("/:id/pdf", opHandler.DownloadPDF)
	operations.Post("/:id/validate", opHandler.Validate)
	operations.Post("/:id/ready", opHandler.MarkReady)
	operations.Post("/:id/cancel", opHandler.Cancel)

	productHandler := NewProductHandler(deps.Replenishment)
	api.Get("/products/replenishment", productHandler.Replenishment)
	api.Get("/products/:id", productHandler.GetStock)

	invHandler := NewInventoryHandler(deps.CreateAdjustment, deps.Queries)
	api.Post("/adjustments", invHandler.CreateAdjustment)
	api.Get("/moves", invHandler.ListMoves)
	api.Get("/products/:id/stock-by-location", invHandler.StockByLocation)

	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/kpis", dashboardHandler.GetKPIs)
}

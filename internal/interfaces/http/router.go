package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/axisignaser/almacen-api/internal/application/auth"
	"github.com/axisignaser/almacen-api/internal/application/warehouse"
	"github.com/axisignaser/almacen-api/internal/domain/entity"
	"github.com/axisignaser/almacen-api/internal/domain/repository"
	"github.com/axisignaser/almacen-api/internal/infrastructure/pdf"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Stock     *warehouse.StockService
	AuthUC    *auth.AuthUseCase
	MovRepo   repository.MovementRepository
	PDF       *pdf.MarotoReportGenerator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, alta de usuarios solo para Admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	canMutate := RequireRole(entity.RoleAdmin, entity.RoleOperario)
	adminOnly := RequireRole(entity.RoleAdmin)

	// Inventario
	itemHandler := NewItemHandler(deps.Stock)
	items := protected.Group("/items")
	items.Get("/", itemHandler.List)
	items.Post("/", canMutate, itemHandler.Receive)
	items.Get("/:id", itemHandler.GetByID)
	items.Patch("/:id", canMutate, itemHandler.Update)
	items.Delete("/:id", adminOnly, itemHandler.Delete)
	items.Post("/:id/issue", canMutate, itemHandler.Issue)

	protected.Get("/categories", itemHandler.Categories)

	// Importación masiva
	importHandler := NewImportHandler(deps.Stock)
	items.Post("/import", canMutate, importHandler.Import)

	// Historial
	movementHandler := NewMovementHandler(deps.Stock, deps.MovRepo)
	protected.Get("/movements", movementHandler.List)
	items.Get("/:id/movements", movementHandler.ListByItem)

	// Informes PDF
	reportHandler := NewReportHandler(deps.Stock, deps.PDF)
	reports := protected.Group("/reports")
	reports.Get("/stock", reportHandler.Stock)
	reports.Get("/movements", reportHandler.Movements)

	// Panel de resumen
	dashboardHandler := NewDashboardHandler(deps.Stock)
	protected.Get("/dashboard/summary", dashboardHandler.Summary)
}

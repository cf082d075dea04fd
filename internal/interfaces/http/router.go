package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/auth"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/application/qc"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ComponentUC *usecase.ComponentUseCase
	VendorUC    *usecase.VendorUseCase
	ProductUC   *usecase.ProductUseCase
	BatchUC     *usecase.BatchUseCase
	CapacityUC  *production.CapacityUseCase
	PlanUC      *production.PlanUseCase
	CommitUC    *production.CommitUseCase
	QCUC        *qc.StatusUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Componentes (catálogo: escribir requiere supervisor o admin)
	components := protected.Group("/components")
	componentHandler := NewComponentHandler(deps.ComponentUC)
	components.Get("/", componentHandler.List)
	components.Get("/reorder-alerts", componentHandler.ReorderAlerts)
	components.Get("/:id", componentHandler.GetByID)
	components.Post("/", RequireRole("admin", "supervisor"), componentHandler.Create)
	components.Put("/:id", RequireRole("admin", "supervisor"), componentHandler.Update)

	// Proveedores
	vendors := protected.Group("/vendors")
	vendorHandler := NewVendorHandler(deps.VendorUC)
	vendors.Get("/", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Post("/", RequireRole("admin", "supervisor"), vendorHandler.Create)

	// Productos y BOM
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole("admin", "supervisor"), productHandler.Create)
	products.Put("/:id/bom", RequireRole("admin", "supervisor"), productHandler.ReplaceBOM)

	// Lotes de stock
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Get("/:id/trace", batchHandler.Trace)
	batches.Post("/", RequireRole("admin", "supervisor"), batchHandler.Receive)
	batches.Patch("/:id/quantity", RequireRole("admin", "supervisor"), batchHandler.Correct)
	components.Get("/:componentId/batches", batchHandler.ListByComponent)

	// Motor de producción
	prod := protected.Group("/production")
	productionHandler := NewProductionHandler(deps.CapacityUC, deps.PlanUC, deps.CommitUC)
	prod.Get("/capacity/:productId", productionHandler.GetCapacity)
	prod.Post("/plan", productionHandler.PlanAllocation)
	prod.Post("/commit", productionHandler.CommitProduction)

	// Ensamblajes: calidad y trazabilidad
	assemblies := protected.Group("/assemblies")
	qcHandler := NewQCHandler(deps.QCUC)
	assemblies.Get("/serial/:serial", qcHandler.GetBySerial)
	assemblies.Get("/:id", qcHandler.GetByID)
	assemblies.Get("/:id/trace", qcHandler.GetTrace)
	assemblies.Patch("/:id/status", RequireRole("admin", "supervisor"), qcHandler.UpdateStatus)
	products.Get("/:productId/assemblies", qcHandler.ListByProduct)
}

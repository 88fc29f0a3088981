package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PendingLister     PendingLister
	SupplierValidator SupplierValidator
	JWTSecret         string
	StoreTimeout      time.Duration
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token); aprobar/rechazar queda
	// restringido a los roles que revisan facturas.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole("admin", "revisor"))

	handler := NewValidationHandler(deps.PendingLister, deps.SupplierValidator, deps.StoreTimeout)

	validations := protected.Group("/supplier-validations")
	validations.Get("/", handler.List)
	validations.Post("/:id/approve", handler.Approve)
	validations.Post("/:id/reject", handler.Reject)

	orders := protected.Group("/orders")
	orders.Post("/:id/recompute-validation", handler.RecomputeOrderFlag)
}

package http

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/romo2920000/autocenterV2/internal/application/dto"
	"github.com/romo2920000/autocenterV2/internal/application/validation"
	"github.com/romo2920000/autocenterV2/internal/domain"
)

// PendingLister es la vista del caso de uso de listado que usa el handler.
type PendingLister interface {
	ListPendingValidations(ctx context.Context) ([]*validation.PendingValidation, error)
}

// SupplierValidator es la vista del motor de validación que usa el handler.
type SupplierValidator interface {
	Approve(ctx context.Context, invoiceID, approvedBy string) error
	Reject(ctx context.Context, invoiceID, reason string) error
	RecomputeOrderFlag(ctx context.Context, orderID string) error
}

// ValidationHandler maneja las peticiones HTTP de validación de proveedores genéricos.
type ValidationHandler struct {
	lister       PendingLister
	validator    SupplierValidator
	storeTimeout time.Duration
}

// NewValidationHandler construye el handler. storeTimeout acota cada operación
// contra el store; cero desactiva el límite.
func NewValidationHandler(lister PendingLister, validator SupplierValidator, storeTimeout time.Duration) *ValidationHandler {
	return &ValidationHandler{lister: lister, validator: validator, storeTimeout: storeTimeout}
}

func (h *ValidationHandler) opContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	if h.storeTimeout <= 0 {
		return c.Context(), func() {}
	}
	return context.WithTimeout(c.Context(), h.storeTimeout)
}

// List devuelve la cola de facturas pendientes de validación.
// GET /api/supplier-validations
func (h *ValidationHandler) List(c *fiber.Ctx) error {
	ctx, cancel := h.opContext(c)
	defer cancel()

	list, err := h.lister.ListPendingValidations(ctx)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.PendingValidationResponse, 0, len(list))
	for _, pv := range list {
		out = append(out, dto.FromPendingValidation(pv))
	}
	return c.JSON(out)
}

// Approve aprueba el proveedor genérico de una factura. El aprobador sale del
// JWT y se pasa al motor como argumento explícito.
// POST /api/supplier-validations/:id/approve
func (h *ValidationHandler) Approve(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	approvedBy := GetUserID(c)

	ctx, cancel := h.opContext(c)
	defer cancel()

	if err := h.validator.Approve(ctx, id, approvedBy); err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(dto.ApproveSupplierResponse{
		InvoiceID:  id,
		ApprovedBy: approvedBy,
		ApprovedAt: time.Now().UTC(),
	})
}

// Reject rechaza la factura, eliminándola junto con sus partidas.
// POST /api/supplier-validations/:id/reject
func (h *ValidationHandler) Reject(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	var in dto.RejectSupplierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	if err := h.validator.Reject(ctx, id, in.Reason); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecomputeOrderFlag recalcula la bandera de validación del pedido desde sus
// facturas. Es la reparación para respuestas CASCADE_STALE.
// POST /api/orders/:id/recompute-validation
func (h *ValidationHandler) RecomputeOrderFlag(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}

	ctx, cancel := h.opContext(c)
	defer cancel()

	if err := h.validator.RecomputeOrderFlag(ctx, id); err != nil {
		return h.mapError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ValidationHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos: el motivo de rechazo es obligatorio"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "la factura ya no está pendiente de validación"})
	case errors.Is(err, domain.ErrCascadeStale):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CASCADE_STALE",
			Message: "la factura se procesó pero la bandera del pedido quedó desactualizada; reintenta POST /api/orders/:id/recompute-validation",
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

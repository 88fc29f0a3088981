package repository

import (
	"context"
	"time"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
)

// PendingInvoice par factura-pedido que devuelve el listado de validación.
type PendingInvoice struct {
	Invoice *entity.OrderInvoice
	Order   *entity.Order
}

// OrderInvoiceRepository define el puerto de persistencia para facturas de pedido.
type OrderInvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.OrderInvoice) error
	// GetByID devuelve (nil, nil) si la factura no existe.
	GetByID(ctx context.Context, id string) (*entity.OrderInvoice, error)
	// ListPendingWithOrder devuelve las facturas pendientes de validación de
	// proveedor junto con su pedido (INNER JOIN: una factura sin pedido
	// resoluble se excluye, no es error). Sin orden garantizado.
	ListPendingWithOrder(ctx context.Context) ([]*PendingInvoice, error)
	// ApproveSupplier marca la factura como aprobada solo si sigue pendiente.
	// Retorna domain.ErrNotFound si no existe o ya no está pendiente,
	// de modo que una doble aprobación no re-estampa approved_at.
	ApproveSupplier(ctx context.Context, id, approvedBy string, at time.Time) error
	// CountPendingByOrder cuenta las facturas del pedido que siguen pendientes.
	CountPendingByOrder(ctx context.Context, orderID string) (int, error)
	// DeleteByID elimina la factura. Retorna domain.ErrNotFound si no existe.
	DeleteByID(ctx context.Context, id string) error
}

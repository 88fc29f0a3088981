package repository

import (
	"context"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para pedidos.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// GetByID devuelve (nil, nil) si el pedido no existe.
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// SetPendingSupplierValidation actualiza la bandera derivada del pedido.
	SetPendingSupplierValidation(ctx context.Context, orderID string, pending bool) error
}

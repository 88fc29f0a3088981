package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/romo2920000/autocenterV2/internal/domain"
	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste un pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	query := `
		INSERT INTO orders (id, folio, cliente, customer_id, vehicle_id,
			has_pending_supplier_validation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		order.ID, order.Folio, nullIfEmpty(order.Cliente), nullIfEmpty(order.CustomerID),
		order.VehicleID, order.HasPendingSupplierValidation, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("order folio already exists: %w", err)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GetByID obtiene un pedido por ID. Devuelve (nil, nil) si no existe.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	query := `
		SELECT id, folio, COALESCE(cliente, ''), COALESCE(customer_id, ''), vehicle_id,
		       has_pending_supplier_validation, created_at, updated_at
		FROM orders WHERE id = $1`
	var o entity.Order
	err := r.q.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.Folio, &o.Cliente, &o.CustomerID, &o.VehicleID,
		&o.HasPendingSupplierValidation, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

// SetPendingSupplierValidation actualiza la bandera derivada del pedido.
func (r *OrderRepo) SetPendingSupplierValidation(ctx context.Context, orderID string, pending bool) error {
	query := `
		UPDATE orders
		SET has_pending_supplier_validation = $2, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, orderID, pending)
	if err != nil {
		return fmt.Errorf("update order validation flag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

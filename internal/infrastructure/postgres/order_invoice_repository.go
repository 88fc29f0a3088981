package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/romo2920000/autocenterV2/internal/domain"
	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

var _ repository.OrderInvoiceRepository = (*OrderInvoiceRepo)(nil)

// OrderInvoiceRepo implementación de OrderInvoiceRepository (usable con pool o tx).
type OrderInvoiceRepo struct {
	q Querier
}

// NewOrderInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderInvoiceRepository(q Querier) *OrderInvoiceRepo {
	return &OrderInvoiceRepo{q: q}
}

// Create persiste una factura de pedido.
func (r *OrderInvoiceRepo) Create(ctx context.Context, invoice *entity.OrderInvoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO order_invoices (id, order_id, invoice_folio, proveedor, rfc_proveedor,
			total_amount, nuevos, pending_supplier_validation, generic_supplier_approved,
			generic_supplier_approved_by, generic_supplier_approved_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.OrderID, invoice.InvoiceFolio, invoice.Proveedor,
		nullIfEmpty(invoice.RFCProveedor), invoice.TotalAmount, invoice.Nuevos,
		invoice.PendingSupplierValidation, invoice.GenericSupplierApproved,
		invoice.GenericSupplierApprovedBy, invoice.GenericSupplierApprovedAt,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("invoice folio already exists: %w", err)
		}
		return fmt.Errorf("insert order invoice: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por ID. Devuelve (nil, nil) si no existe.
func (r *OrderInvoiceRepo) GetByID(ctx context.Context, id string) (*entity.OrderInvoice, error) {
	query := `
		SELECT id, order_id, invoice_folio, proveedor, COALESCE(rfc_proveedor, ''),
		       total_amount, COALESCE(nuevos, 0),
		       pending_supplier_validation, generic_supplier_approved,
		       generic_supplier_approved_by, generic_supplier_approved_at,
		       created_at, updated_at
		FROM order_invoices WHERE id = $1`
	var inv entity.OrderInvoice
	err := r.q.QueryRow(ctx, query, id).Scan(
		&inv.ID, &inv.OrderID, &inv.InvoiceFolio, &inv.Proveedor, &inv.RFCProveedor,
		&inv.TotalAmount, &inv.Nuevos,
		&inv.PendingSupplierValidation, &inv.GenericSupplierApproved,
		&inv.GenericSupplierApprovedBy, &inv.GenericSupplierApprovedAt,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order invoice: %w", err)
	}
	return &inv, nil
}

// ListPendingWithOrder devuelve las facturas pendientes de validación junto
// con su pedido (INNER JOIN: facturas sin pedido resoluble se excluyen).
// El ORDER BY solo mantiene la lista estable entre refrescos; los callers no
// dependen del orden.
func (r *OrderInvoiceRepo) ListPendingWithOrder(ctx context.Context) ([]*repository.PendingInvoice, error) {
	query := `
		SELECT i.id, i.order_id, i.invoice_folio, i.proveedor, COALESCE(i.rfc_proveedor, ''),
		       i.total_amount, COALESCE(i.nuevos, 0),
		       i.pending_supplier_validation, i.generic_supplier_approved,
		       i.generic_supplier_approved_by, i.generic_supplier_approved_at,
		       i.created_at, i.updated_at,
		       o.id, o.folio, COALESCE(o.cliente, ''), COALESCE(o.customer_id, ''),
		       o.vehicle_id, o.has_pending_supplier_validation, o.created_at, o.updated_at
		FROM order_invoices i
		JOIN orders o ON o.id = i.order_id
		WHERE i.pending_supplier_validation = true
		  AND i.generic_supplier_approved = false
		ORDER BY i.created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list pending validations: %w", err)
	}
	defer rows.Close()
	var list []*repository.PendingInvoice
	for rows.Next() {
		var inv entity.OrderInvoice
		var ord entity.Order
		if err := rows.Scan(
			&inv.ID, &inv.OrderID, &inv.InvoiceFolio, &inv.Proveedor, &inv.RFCProveedor,
			&inv.TotalAmount, &inv.Nuevos,
			&inv.PendingSupplierValidation, &inv.GenericSupplierApproved,
			&inv.GenericSupplierApprovedBy, &inv.GenericSupplierApprovedAt,
			&inv.CreatedAt, &inv.UpdatedAt,
			&ord.ID, &ord.Folio, &ord.Cliente, &ord.CustomerID,
			&ord.VehicleID, &ord.HasPendingSupplierValidation, &ord.CreatedAt, &ord.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan pending validation: %w", err)
		}
		list = append(list, &repository.PendingInvoice{Invoice: &inv, Order: &ord})
	}
	return list, rows.Err()
}

// ApproveSupplier marca la factura como aprobada solo si sigue pendiente.
// El predicado del UPDATE re-verifica la precondición en el store: si otra
// aprobación ganó la carrera, RowsAffected es 0 y se devuelve ErrNotFound sin
// re-estampar approved_at.
func (r *OrderInvoiceRepo) ApproveSupplier(ctx context.Context, id, approvedBy string, at time.Time) error {
	query := `
		UPDATE order_invoices
		SET generic_supplier_approved    = true,
		    generic_supplier_approved_by = $2,
		    generic_supplier_approved_at = $3,
		    pending_supplier_validation  = false,
		    updated_at                   = $3
		WHERE id = $1
		  AND pending_supplier_validation = true
		  AND generic_supplier_approved = false`
	tag, err := r.q.Exec(ctx, query, id, nullIfEmpty(approvedBy), at)
	if err != nil {
		return fmt.Errorf("approve supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountPendingByOrder cuenta las facturas del pedido aún pendientes de
// validación. Es la consulta del recálculo en cascada: se recuenta desde el
// store en lugar de mantener un contador.
func (r *OrderInvoiceRepo) CountPendingByOrder(ctx context.Context, orderID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM order_invoices
		WHERE order_id = $1 AND pending_supplier_validation = true`
	var count int
	if err := r.q.QueryRow(ctx, query, orderID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count pending invoices: %w", err)
	}
	return count, nil
}

// DeleteByID elimina la factura. Devuelve ErrNotFound si no existía.
func (r *OrderInvoiceRepo) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM order_invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

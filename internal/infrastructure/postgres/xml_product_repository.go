package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

var _ repository.XMLProductRepository = (*XMLProductRepo)(nil)

// XMLProductRepo implementación de XMLProductRepository (usable con pool o tx).
type XMLProductRepo struct {
	q Querier
}

// NewXMLProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewXMLProductRepository(q Querier) *XMLProductRepo {
	return &XMLProductRepo{q: q}
}

// Create persiste una partida de factura.
func (r *XMLProductRepo) Create(ctx context.Context, product *entity.XMLProduct) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO xml_products (id, invoice_id, descripcion, cantidad, valor_unitario, importe, nuevo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.InvoiceID, product.Descripcion,
		product.Cantidad, product.ValorUnitario, product.Importe,
		product.Nuevo, product.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert xml product: %w", err)
	}
	return nil
}

// CountByInvoiceID cuenta las partidas de una factura.
func (r *XMLProductRepo) CountByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM xml_products WHERE invoice_id = $1`, invoiceID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count xml products: %w", err)
	}
	return count, nil
}

// DeleteByInvoiceID elimina todas las partidas de la factura y devuelve
// cuántas se eliminaron. Cero no es error: una factura puede no tener partidas.
func (r *XMLProductRepo) DeleteByInvoiceID(ctx context.Context, invoiceID string) (int, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM xml_products WHERE invoice_id = $1`, invoiceID)
	if err != nil {
		return 0, fmt.Errorf("delete xml products: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

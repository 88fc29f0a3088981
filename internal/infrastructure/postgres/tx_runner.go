package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/romo2920000/autocenterV2/internal/application/validation"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

var _ validation.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Lo usa el rechazo de facturas: partidas y factura se eliminan de forma atómica.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.OrderInvoiceRepository,
	productRepo repository.XMLProductRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invoiceRepo := NewOrderInvoiceRepository(tx)
	productRepo := NewXMLProductRepository(tx)

	if err := fn(invoiceRepo, productRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

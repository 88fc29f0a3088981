package validation

import (
	"context"

	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que las partidas y la factura
// de un rechazo se eliminen de forma atómica.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		invoiceRepo repository.OrderInvoiceRepository,
		productRepo repository.XMLProductRepository,
	) error) error
}

package repository

import (
	"context"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
)

// XMLProductRepository define el puerto de persistencia para partidas de factura.
type XMLProductRepository interface {
	Create(ctx context.Context, product *entity.XMLProduct) error
	CountByInvoiceID(ctx context.Context, invoiceID string) (int, error)
	// DeleteByInvoiceID elimina todas las partidas de la factura y devuelve
	// cuántas se eliminaron. Cero partidas no es error.
	DeleteByInvoiceID(ctx context.Context, invoiceID string) (int, error)
}

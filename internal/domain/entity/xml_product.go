package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// XMLProduct representa una partida (concepto) parseada del CFDI de una factura.
// Nuevo indica que el concepto no coincidió con ningún producto del catálogo.
type XMLProduct struct {
	ID            string
	InvoiceID     string
	Descripcion   string
	Cantidad      decimal.Decimal
	ValorUnitario decimal.Decimal
	Importe       decimal.Decimal
	Nuevo         bool
	CreatedAt     time.Time
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/romo2920000/autocenterV2/internal/domain"
)

// Estados de validación de proveedor de una factura.
// Una factura rechazada no tiene estado: se elimina junto con sus partidas.
const (
	SupplierStatePending  = "PENDING"
	SupplierStateApproved = "APPROVED"
	// SupplierStateInvalid: combinación ilegal de banderas leída del store
	// (aprobada y pendiente a la vez). Nunca la produce este código.
	SupplierStateInvalid = "INVALID"
)

// SupplierState estado de validación de proveedor como variante etiquetada.
// By y At solo tienen valor cuando Status es APPROVED.
type SupplierState struct {
	Status string
	By     string
	At     *time.Time
}

// OrderInvoice representa una factura (CFDI) cargada a un pedido.
// Proveedor es la razón social tal como se parseó del XML; cuando no
// coincide con ningún proveedor del catálogo, la factura entra pendiente
// de validación de proveedor genérico.
type OrderInvoice struct {
	ID           string
	OrderID      string
	InvoiceFolio string
	Proveedor    string
	RFCProveedor string
	TotalAmount  decimal.Decimal
	// Nuevos: cantidad de partidas sin coincidencia en el catálogo de productos.
	Nuevos                    int
	PendingSupplierValidation bool
	GenericSupplierApproved   bool
	GenericSupplierApprovedBy *string
	GenericSupplierApprovedAt *time.Time
	CreatedAt                 time.Time
	UpdatedAt                 time.Time
}

// SupplierState devuelve el estado de validación como variante etiquetada.
// Las banderas booleanas son el formato de persistencia; en memoria este
// método es la única lectura de estado que deben usar los consumidores.
func (i *OrderInvoice) SupplierState() SupplierState {
	switch {
	case i.GenericSupplierApproved && i.PendingSupplierValidation:
		return SupplierState{Status: SupplierStateInvalid}
	case i.GenericSupplierApproved:
		by := ""
		if i.GenericSupplierApprovedBy != nil {
			by = *i.GenericSupplierApprovedBy
		}
		return SupplierState{Status: SupplierStateApproved, By: by, At: i.GenericSupplierApprovedAt}
	default:
		return SupplierState{Status: SupplierStatePending}
	}
}

// IsPendingValidation indica si la factura sigue esperando decisión del revisor.
func (i *OrderInvoice) IsPendingValidation() bool {
	return i.PendingSupplierValidation && !i.GenericSupplierApproved
}

// ApproveSupplier marca la factura como aprobada por el revisor indicado.
// Ajusta las cuatro banderas en conjunto para que aprobada+pendiente no
// pueda producirse. approvedBy puede ser vacío (se registra tal cual).
// Retorna ErrNotFound si la factura ya no está pendiente.
func (i *OrderInvoice) ApproveSupplier(approvedBy string, at time.Time) error {
	if !i.IsPendingValidation() {
		return domain.ErrNotFound
	}
	i.GenericSupplierApproved = true
	if approvedBy != "" {
		i.GenericSupplierApprovedBy = &approvedBy
	}
	i.GenericSupplierApprovedAt = &at
	i.PendingSupplierValidation = false
	i.UpdatedAt = at
	return nil
}

package entity

import "time"

// Order representa un pedido (presupuesto) del taller.
// Cliente guarda el nombre capturado en el pedido; CustomerID referencia
// al catálogo de clientes cuando existe el registro.
type Order struct {
	ID         string
	Folio      string
	Cliente    string
	CustomerID string
	VehicleID  *string
	// HasPendingSupplierValidation es una bandera derivada: true si y solo si
	// al menos una factura del pedido sigue pendiente de validación de proveedor.
	// La mantiene el motor de validación tras cada aprobación/rechazo.
	HasPendingSupplierValidation bool
	CreatedAt                    time.Time
	UpdatedAt                    time.Time
}

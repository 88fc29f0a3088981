package validation

import (
	"context"
	"fmt"

	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

// PendingValidation una factura pendiente de validación de proveedor con el
// contexto que necesita el revisor: pedido, cliente y vehículo (si aplica).
type PendingValidation struct {
	Order        *entity.Order
	Invoice      *entity.OrderInvoice
	CustomerName string
	VehicleInfo  string
}

// ListPendingValidationsUseCase arma la cola de validación de proveedores
// genéricos. Solo lectura, sin efectos secundarios.
type ListPendingValidationsUseCase struct {
	invoiceRepo  repository.OrderInvoiceRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
}

// NewListPendingValidationsUseCase construye el caso de uso.
func NewListPendingValidationsUseCase(
	invoiceRepo repository.OrderInvoiceRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
) *ListPendingValidationsUseCase {
	return &ListPendingValidationsUseCase{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
	}
}

// ListPendingValidations devuelve las facturas con proveedor genérico que
// esperan decisión, cada una con su pedido y el nombre de cliente y
// descripción de vehículo cuando existen los registros. Los lookups de
// cliente y vehículo son best-effort: la ausencia del registro deja el campo
// vacío; un error del store aborta el listado completo (sin resultados
// parciales).
func (uc *ListPendingValidationsUseCase) ListPendingValidations(ctx context.Context) ([]*PendingValidation, error) {
	rows, err := uc.invoiceRepo.ListPendingWithOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar validaciones pendientes: %w", err)
	}

	list := make([]*PendingValidation, 0, len(rows))
	for _, row := range rows {
		pv := &PendingValidation{Order: row.Order, Invoice: row.Invoice}

		if row.Order.CustomerID != "" {
			customer, err := uc.customerRepo.GetByID(ctx, row.Order.CustomerID)
			if err != nil {
				return nil, fmt.Errorf("consultar cliente %s: %w", row.Order.CustomerID, err)
			}
			if customer != nil {
				pv.CustomerName = customer.NombreCompleto
			}
		}

		if row.Order.VehicleID != nil && *row.Order.VehicleID != "" {
			vehicle, err := uc.vehicleRepo.GetByID(ctx, *row.Order.VehicleID)
			if err != nil {
				return nil, fmt.Errorf("consultar vehículo %s: %w", *row.Order.VehicleID, err)
			}
			if vehicle != nil {
				pv.VehicleInfo = vehicle.Description()
			}
		}

		list = append(list, pv)
	}
	return list, nil
}

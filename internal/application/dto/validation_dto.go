package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/romo2920000/autocenterV2/internal/application/validation"
)

// OrderSummary datos del pedido que acompañan a una validación pendiente.
type OrderSummary struct {
	ID                           string `json:"id"`
	Folio                        string `json:"folio"`
	Cliente                      string `json:"cliente,omitempty"`
	HasPendingSupplierValidation bool   `json:"has_pending_supplier_validation"`
}

// InvoiceSummary datos de la factura con proveedor genérico.
type InvoiceSummary struct {
	ID             string          `json:"id"`
	OrderID        string          `json:"order_id"`
	InvoiceFolio   string          `json:"invoice_folio"`
	Proveedor      string          `json:"proveedor"`
	RFCProveedor   string          `json:"rfc_proveedor,omitempty"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Nuevos         int             `json:"nuevos"`
	SupplierStatus string          `json:"supplier_status"`
}

// PendingValidationResponse un renglón de la cola de validación.
// CustomerName puede venir vacío: el consumidor muestra entonces Order.Cliente.
type PendingValidationResponse struct {
	Order        OrderSummary   `json:"order"`
	Invoice      InvoiceSummary `json:"invoice"`
	CustomerName string         `json:"customer_name,omitempty"`
	VehicleInfo  string         `json:"vehicle_info,omitempty"`
}

// RejectSupplierRequest cuerpo del rechazo; el motivo es obligatorio.
type RejectSupplierRequest struct {
	Reason string `json:"reason"`
}

// ApproveSupplierResponse confirmación de aprobación.
type ApproveSupplierResponse struct {
	InvoiceID  string    `json:"invoice_id"`
	ApprovedBy string    `json:"approved_by,omitempty"`
	ApprovedAt time.Time `json:"approved_at"`
}

// FromPendingValidation convierte el resultado del caso de uso a respuesta HTTP.
func FromPendingValidation(pv *validation.PendingValidation) PendingValidationResponse {
	return PendingValidationResponse{
		Order: OrderSummary{
			ID:                           pv.Order.ID,
			Folio:                        pv.Order.Folio,
			Cliente:                      pv.Order.Cliente,
			HasPendingSupplierValidation: pv.Order.HasPendingSupplierValidation,
		},
		Invoice: InvoiceSummary{
			ID:             pv.Invoice.ID,
			OrderID:        pv.Invoice.OrderID,
			InvoiceFolio:   pv.Invoice.InvoiceFolio,
			Proveedor:      pv.Invoice.Proveedor,
			RFCProveedor:   pv.Invoice.RFCProveedor,
			TotalAmount:    pv.Invoice.TotalAmount,
			Nuevos:         pv.Invoice.Nuevos,
			SupplierStatus: pv.Invoice.SupplierState().Status,
		},
		CustomerName: pv.CustomerName,
		VehicleInfo:  pv.VehicleInfo,
	}
}

package validation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/romo2920000/autocenterV2/internal/domain"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
	"github.com/romo2920000/autocenterV2/pkg/logger"
)

// ValidateSupplierUseCase es el motor de aprobación/rechazo de proveedores
// genéricos. Cada operación re-verifica la precondición "sigue pendiente"
// contra el store, por lo que reintentos y dobles clics terminan en
// domain.ErrNotFound en lugar de reprocesar la factura.
type ValidateSupplierUseCase struct {
	invoiceRepo repository.OrderInvoiceRepository
	orderRepo   repository.OrderRepository
	txRunner    TxRunner
	log         *logger.Logger
}

// NewValidateSupplierUseCase construye el motor.
func NewValidateSupplierUseCase(
	invoiceRepo repository.OrderInvoiceRepository,
	orderRepo repository.OrderRepository,
	txRunner TxRunner,
	log *logger.Logger,
) *ValidateSupplierUseCase {
	return &ValidateSupplierUseCase{
		invoiceRepo: invoiceRepo,
		orderRepo:   orderRepo,
		txRunner:    txRunner,
		log:         log,
	}
}

// Approve aprueba el proveedor genérico de la factura y recalcula la bandera
// del pedido. approvedBy se registra tal cual (puede ser vacío); la identidad
// viene del caller, nunca de estado ambiente.
//
// La actualización de la factura y el recálculo del pedido son dos escrituras
// separadas a propósito: si la primera falla no se toca el pedido, y si falla
// solo el recálculo la factura ya quedó aprobada de forma durable y se
// devuelve domain.ErrCascadeStale para que el caller reintente únicamente el
// recálculo (RecomputeOrderFlag), no la aprobación.
func (uc *ValidateSupplierUseCase) Approve(ctx context.Context, invoiceID, approvedBy string) error {
	if strings.TrimSpace(invoiceID) == "" {
		return domain.ErrInvalidInput
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("consultar factura %s: %w", invoiceID, err)
	}
	if invoice == nil || !invoice.IsPendingValidation() {
		return domain.ErrNotFound
	}

	now := time.Now().UTC()
	if err := uc.invoiceRepo.ApproveSupplier(ctx, invoiceID, approvedBy, now); err != nil {
		return err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("order_id", invoice.OrderID).
		Str("approved_by", approvedBy).
		Msg("proveedor genérico aprobado")

	if err := uc.recomputeOrderFlag(ctx, invoice.OrderID); err != nil {
		uc.log.Warn().Err(err).
			Str("invoice_id", invoiceID).
			Str("order_id", invoice.OrderID).
			Msg("factura aprobada pero la bandera del pedido quedó desactualizada")
		return fmt.Errorf("%w: %s", domain.ErrCascadeStale, err)
	}
	return nil
}

// Reject elimina la factura junto con sus partidas y recalcula la bandera del
// pedido. Exige un motivo no vacío: rechazar sin justificación es un no-op con
// domain.ErrInvalidInput, sin leer ni escribir nada.
//
// Las partidas se eliminan antes que la factura y dentro de la misma
// transacción: si falla el borrado de partidas la factura sobrevive intacta, y
// nunca queda una ventana con la factura eliminada y partidas huérfanas.
func (uc *ValidateSupplierUseCase) Reject(ctx context.Context, invoiceID, reason string) error {
	if strings.TrimSpace(invoiceID) == "" || strings.TrimSpace(reason) == "" {
		return domain.ErrInvalidInput
	}

	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("consultar factura %s: %w", invoiceID, err)
	}
	if invoice == nil || !invoice.IsPendingValidation() {
		return domain.ErrNotFound
	}

	err = uc.txRunner.Run(ctx, func(
		invoiceRepo repository.OrderInvoiceRepository,
		productRepo repository.XMLProductRepository,
	) error {
		deleted, err := productRepo.DeleteByInvoiceID(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("eliminar partidas de la factura %s: %w", invoiceID, err)
		}
		uc.log.Debug().Str("invoice_id", invoiceID).Int("productos", deleted).
			Msg("partidas eliminadas")
		return invoiceRepo.DeleteByID(ctx, invoiceID)
	})
	if err != nil {
		return err
	}

	uc.log.Info().
		Str("invoice_id", invoiceID).
		Str("order_id", invoice.OrderID).
		Str("motivo", reason).
		Msg("factura con proveedor genérico rechazada y eliminada")

	if err := uc.recomputeOrderFlag(ctx, invoice.OrderID); err != nil {
		uc.log.Warn().Err(err).
			Str("invoice_id", invoiceID).
			Str("order_id", invoice.OrderID).
			Msg("factura eliminada pero la bandera del pedido quedó desactualizada")
		return fmt.Errorf("%w: %s", domain.ErrCascadeStale, err)
	}
	return nil
}

// RecomputeOrderFlag recalcula la bandera has_pending_supplier_validation del
// pedido a partir del estado actual de sus facturas. Es la operación de
// reparación para ErrCascadeStale: idempotente y segura de reintentar, y
// también restaura la bandera a true si se limpió por error.
func (uc *ValidateSupplierUseCase) RecomputeOrderFlag(ctx context.Context, orderID string) error {
	if strings.TrimSpace(orderID) == "" {
		return domain.ErrInvalidInput
	}
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("consultar pedido %s: %w", orderID, err)
	}
	if order == nil {
		return domain.ErrNotFound
	}
	return uc.recomputeOrderFlag(ctx, orderID)
}

// recomputeOrderFlag recuenta desde el store y escribe el resultado. Siempre
// recuenta en lugar de mantener un contador: el recuento es idempotente, por
// lo que recálculos concurrentes sobre el mismo pedido convergen al valor
// correcto sin disciplina de locking adicional.
func (uc *ValidateSupplierUseCase) recomputeOrderFlag(ctx context.Context, orderID string) error {
	count, err := uc.invoiceRepo.CountPendingByOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("contar facturas pendientes del pedido %s: %w", orderID, err)
	}
	if err := uc.orderRepo.SetPendingSupplierValidation(ctx, orderID, count > 0); err != nil {
		return fmt.Errorf("actualizar bandera del pedido %s: %w", orderID, err)
	}
	return nil
}

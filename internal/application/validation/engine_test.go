package validation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romo2920000/autocenterV2/internal/application/validation"
	"github.com/romo2920000/autocenterV2/internal/domain"
	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/pkg/logger"
)

func newEngine(s *memStore) *validation.ValidateSupplierUseCase {
	return validation.NewValidateSupplierUseCase(
		&fakeInvoiceRepo{s: s},
		&fakeOrderRepo{s: s},
		&fakeTxRunner{s: s},
		logger.Nop(),
	)
}

func seedOrder(s *memStore, id, folio string, pending bool) *entity.Order {
	o := &entity.Order{ID: id, Folio: folio, HasPendingSupplierValidation: pending}
	s.orders[id] = o
	return o
}

func seedPendingInvoice(s *memStore, id, orderID, folio string) *entity.OrderInvoice {
	inv := &entity.OrderInvoice{
		ID:                        id,
		OrderID:                   orderID,
		InvoiceFolio:              folio,
		Proveedor:                 "PROVEEDOR GENÉRICO",
		TotalAmount:               decimal.NewFromFloat(999.99),
		PendingSupplierValidation: true,
	}
	s.invoices[id] = inv
	return inv
}

func seedProducts(s *memStore, invoiceID string, n int) {
	for i := 0; i < n; i++ {
		id := invoiceID + "-p" + string(rune('a'+i))
		s.products[id] = &entity.XMLProduct{
			ID:          id,
			InvoiceID:   invoiceID,
			Descripcion: "refacción",
			Cantidad:    decimal.NewFromInt(1),
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Approve
// ──────────────────────────────────────────────────────────────────────────────

// Pedido con dos facturas pendientes: aprobar la primera no debe limpiar la
// bandera del pedido (la segunda sigue pendiente).
func TestApprove_UnaDeDosFacturas_PedidoSiguePendiente(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	seedPendingInvoice(s, "I2", "O1", "FAC-2")

	err := newEngine(s).Approve(context.Background(), "I1", "user-7")
	require.NoError(t, err)

	inv := s.invoices["I1"]
	assert.True(t, inv.GenericSupplierApproved)
	assert.False(t, inv.PendingSupplierValidation)
	require.NotNil(t, inv.GenericSupplierApprovedBy)
	assert.Equal(t, "user-7", *inv.GenericSupplierApprovedBy)
	assert.NotNil(t, inv.GenericSupplierApprovedAt)

	assert.True(t, s.orders["O1"].HasPendingSupplierValidation,
		"el pedido sigue pendiente mientras quede otra factura sin validar")
}

// Aprobar la última factura pendiente limpia la bandera del pedido.
func TestApprove_UltimaFactura_LimpiaBanderaDelPedido(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	seedPendingInvoice(s, "I2", "O1", "FAC-2")
	engine := newEngine(s)

	require.NoError(t, engine.Approve(context.Background(), "I1", "user-7"))
	require.NoError(t, engine.Approve(context.Background(), "I2", "user-7"))

	assert.False(t, s.orders["O1"].HasPendingSupplierValidation,
		"sin facturas pendientes la bandera del pedido debe quedar en false")
}

// Doble aprobación: la segunda llamada es NotFound y no re-estampa approved_at.
func TestApprove_FacturaYaAprobada_RetornaNotFound(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	engine := newEngine(s)

	require.NoError(t, engine.Approve(context.Background(), "I1", "user-7"))
	primera := *s.invoices["I1"].GenericSupplierApprovedAt

	err := engine.Approve(context.Background(), "I1", "user-9")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, primera, *s.invoices["I1"].GenericSupplierApprovedAt,
		"una doble aprobación no debe re-estampar approved_at")
	assert.Equal(t, "user-7", *s.invoices["I1"].GenericSupplierApprovedBy)
}

func TestApprove_FacturaInexistente_RetornaNotFound(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", false)

	err := newEngine(s).Approve(context.Background(), "no-existe", "user-7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestApprove_IDVacio_RetornaInvalidInput(t *testing.T) {
	s := newMemStore()

	err := newEngine(s).Approve(context.Background(), "  ", "user-7")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Carrera entre la lectura y el UPDATE condicionado: el repo reporta 0 filas
// afectadas y la operación termina en NotFound sin tocar el pedido.
func TestApprove_CarreraEnUpdateCondicionado_RetornaNotFound(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")

	// Otro revisor ganó entre GetByID y el UPDATE condicionado: el repo
	// responde 0 filas afectadas.
	s.errApprove = domain.ErrNotFound

	err := newEngine(s).Approve(context.Background(), "I1", "user-7")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation,
		"si la aprobación no aplicó, la bandera del pedido no se toca")
}

// Si falla la escritura de la factura, el pedido no se toca.
func TestApprove_FallaUpdateDeFactura_NoTocaElPedido(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	s.errApprove = errors.New("connection refused")

	err := newEngine(s).Approve(context.Background(), "I1", "user-7")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrCascadeStale)
	assert.True(t, s.invoices["I1"].PendingSupplierValidation)
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation)
}

// Si la factura quedó aprobada pero el recálculo falla, se devuelve
// ErrCascadeStale y la reparación posterior deja la bandera correcta.
func TestApprove_FallaRecalculo_RetornaCascadeStaleYSeRepara(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	s.errSetOrderFlag = errors.New("connection reset")
	engine := newEngine(s)

	err := engine.Approve(context.Background(), "I1", "user-7")
	assert.ErrorIs(t, err, domain.ErrCascadeStale)
	assert.True(t, s.invoices["I1"].GenericSupplierApproved,
		"la aprobación de la factura ya es durable aunque el recálculo falle")
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation,
		"la bandera queda desactualizada hasta la reparación")

	// Reparación: solo el recálculo, sin reaprobar.
	s.errSetOrderFlag = nil
	require.NoError(t, engine.RecomputeOrderFlag(context.Background(), "O1"))
	assert.False(t, s.orders["O1"].HasPendingSupplierValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reject
// ──────────────────────────────────────────────────────────────────────────────

// Pedido con una factura pendiente y 5 partidas: el rechazo elimina las
// partidas y la factura y limpia la bandera del pedido.
func TestReject_EliminaFacturaYPartidas_YLimpiaBandera(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O2", "PED-002", true)
	seedPendingInvoice(s, "I3", "O2", "FAC-3")
	seedProducts(s, "I3", 5)

	err := newEngine(s).Reject(context.Background(), "I3", "proveedor equivocado")
	require.NoError(t, err)

	assert.NotContains(t, s.invoices, "I3", "la factura rechazada no debe existir")
	assert.Zero(t, s.countProducts("I3"), "ninguna partida debe referenciar la factura")
	assert.False(t, s.orders["O2"].HasPendingSupplierValidation)
}

// El motivo es obligatorio: sin él no se lee ni se escribe nada.
func TestReject_MotivoVacio_NoMutaNada(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O2", "PED-002", true)
	seedPendingInvoice(s, "I3", "O2", "FAC-3")
	seedProducts(s, "I3", 2)
	engine := newEngine(s)

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := engine.Reject(context.Background(), "I3", reason)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}

	assert.Contains(t, s.invoices, "I3")
	assert.Equal(t, 2, s.countProducts("I3"))
	assert.True(t, s.orders["O2"].HasPendingSupplierValidation)
}

func TestReject_FacturaInexistente_RetornaNotFound(t *testing.T) {
	s := newMemStore()

	err := newEngine(s).Reject(context.Background(), "no-existe", "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Una factura ya aprobada no puede rechazarse: ya no está pendiente.
func TestReject_FacturaAprobada_RetornaNotFound(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", false)
	inv := seedPendingInvoice(s, "I1", "O1", "FAC-1")
	require.NoError(t, inv.ApproveSupplier("user-7", time.Now()))

	err := newEngine(s).Reject(context.Background(), "I1", "motivo")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, s.invoices, "I1", "una factura aprobada no debe eliminarse")
}

// Si falla el borrado de partidas, la factura sobrevive intacta (rollback).
func TestReject_FallaBorradoDePartidas_FacturaSobrevive(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O2", "PED-002", true)
	seedPendingInvoice(s, "I3", "O2", "FAC-3")
	seedProducts(s, "I3", 3)
	s.errDeleteProducts = errors.New("connection refused")

	err := newEngine(s).Reject(context.Background(), "I3", "motivo")
	require.Error(t, err)
	assert.Contains(t, s.invoices, "I3")
	assert.Equal(t, 3, s.countProducts("I3"))
	assert.True(t, s.orders["O2"].HasPendingSupplierValidation)
}

// Si falla el borrado de la factura, las partidas ya eliminadas se restauran
// con el rollback: nunca queda una factura sin partidas a medio rechazo.
func TestReject_FallaBorradoDeFactura_RollbackDePartidas(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O2", "PED-002", true)
	seedPendingInvoice(s, "I3", "O2", "FAC-3")
	seedProducts(s, "I3", 3)
	s.errDeleteInvoice = errors.New("connection reset")

	err := newEngine(s).Reject(context.Background(), "I3", "motivo")
	require.Error(t, err)
	assert.Contains(t, s.invoices, "I3")
	assert.Equal(t, 3, s.countProducts("I3"),
		"el rollback debe restaurar las partidas si la factura no se eliminó")
}

// Si el recálculo falla tras el rechazo, la eliminación ya es durable y la
// reparación posterior corrige la bandera.
func TestReject_FallaRecalculo_RetornaCascadeStaleYSeRepara(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O2", "PED-002", true)
	seedPendingInvoice(s, "I3", "O2", "FAC-3")
	seedProducts(s, "I3", 2)
	s.errCountPending = errors.New("timeout")
	engine := newEngine(s)

	err := engine.Reject(context.Background(), "I3", "motivo")
	assert.ErrorIs(t, err, domain.ErrCascadeStale)
	assert.NotContains(t, s.invoices, "I3")
	assert.Zero(t, s.countProducts("I3"))

	s.errCountPending = nil
	require.NoError(t, engine.RecomputeOrderFlag(context.Background(), "O2"))
	assert.False(t, s.orders["O2"].HasPendingSupplierValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecomputeOrderFlag — invariante del agregado y reparación
// ──────────────────────────────────────────────────────────────────────────────

// Recalcular dos veces seguidas sin escrituras intermedias produce el mismo valor.
func TestRecomputeOrderFlag_EsIdempotente(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	engine := newEngine(s)

	require.NoError(t, engine.RecomputeOrderFlag(context.Background(), "O1"))
	primera := s.orders["O1"].HasPendingSupplierValidation
	require.NoError(t, engine.RecomputeOrderFlag(context.Background(), "O1"))

	assert.Equal(t, primera, s.orders["O1"].HasPendingSupplierValidation)
	assert.True(t, primera, "con una factura pendiente la bandera debe ser true")
}

// La reparación también restaura a true una bandera limpiada por error.
func TestRecomputeOrderFlag_RestauraBanderaLimpiadaPorError(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", false) // bandera incorrecta
	seedPendingInvoice(s, "I1", "O1", "FAC-1")

	require.NoError(t, newEngine(s).RecomputeOrderFlag(context.Background(), "O1"))
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation)
}

func TestRecomputeOrderFlag_PedidoInexistente_RetornaNotFound(t *testing.T) {
	s := newMemStore()

	err := newEngine(s).RecomputeOrderFlag(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Invariante del agregado: tras cualquier secuencia de Approve/Reject, la
// bandera del pedido es true si y solo si queda al menos una factura pendiente.
func TestInvariante_BanderaDelPedidoTrasSecuenciaMixta(t *testing.T) {
	s := newMemStore()
	seedOrder(s, "O1", "PED-001", true)
	seedPendingInvoice(s, "I1", "O1", "FAC-1")
	seedPendingInvoice(s, "I2", "O1", "FAC-2")
	seedPendingInvoice(s, "I3", "O1", "FAC-3")
	seedProducts(s, "I2", 2)
	engine := newEngine(s)
	ctx := context.Background()

	require.NoError(t, engine.Approve(ctx, "I1", "user-7"))
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation)

	require.NoError(t, engine.Reject(ctx, "I2", "proveedor equivocado"))
	assert.True(t, s.orders["O1"].HasPendingSupplierValidation)

	require.NoError(t, engine.Approve(ctx, "I3", "user-9"))
	assert.False(t, s.orders["O1"].HasPendingSupplierValidation,
		"resueltas todas las facturas, el pedido queda desbloqueado")
}

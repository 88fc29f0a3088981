package validation_test

import (
	"context"
	"time"

	"github.com/romo2920000/autocenterV2/internal/application/validation"
	"github.com/romo2920000/autocenterV2/internal/domain"
	"github.com/romo2920000/autocenterV2/internal/domain/entity"
	"github.com/romo2920000/autocenterV2/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con repositorios falsos. Replica la semántica de los
// adaptadores PostgreSQL (nil,nil en ausencia, ErrNotFound en updates/deletes
// condicionados) y permite inyectar fallas por operación para simular un store
// indisponible a mitad de una secuencia.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	orders    map[string]*entity.Order
	invoices  map[string]*entity.OrderInvoice
	products  map[string]*entity.XMLProduct
	customers map[string]*entity.Customer
	vehicles  map[string]*entity.Vehicle

	// Inyección de fallas (nil = la operación funciona)
	errListPending    error
	errGetInvoice     error
	errApprove        error
	errCountPending   error
	errDeleteInvoice  error
	errDeleteProducts error
	errGetOrder       error
	errSetOrderFlag   error
	errGetCustomer    error
	errGetVehicle     error
}

func newMemStore() *memStore {
	return &memStore{
		orders:    make(map[string]*entity.Order),
		invoices:  make(map[string]*entity.OrderInvoice),
		products:  make(map[string]*entity.XMLProduct),
		customers: make(map[string]*entity.Customer),
		vehicles:  make(map[string]*entity.Vehicle),
	}
}

func (s *memStore) countProducts(invoiceID string) int {
	n := 0
	for _, p := range s.products {
		if p.InvoiceID == invoiceID {
			n++
		}
	}
	return n
}

// ── OrderInvoiceRepository ────────────────────────────────────────────────────

type fakeInvoiceRepo struct{ s *memStore }

var _ repository.OrderInvoiceRepository = (*fakeInvoiceRepo)(nil)

func (r *fakeInvoiceRepo) Create(_ context.Context, inv *entity.OrderInvoice) error {
	r.s.invoices[inv.ID] = inv
	return nil
}

func (r *fakeInvoiceRepo) GetByID(_ context.Context, id string) (*entity.OrderInvoice, error) {
	if r.s.errGetInvoice != nil {
		return nil, r.s.errGetInvoice
	}
	inv, ok := r.s.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) ListPendingWithOrder(_ context.Context) ([]*repository.PendingInvoice, error) {
	if r.s.errListPending != nil {
		return nil, r.s.errListPending
	}
	var list []*repository.PendingInvoice
	for _, inv := range r.s.invoices {
		if !inv.IsPendingValidation() {
			continue
		}
		ord, ok := r.s.orders[inv.OrderID]
		if !ok {
			continue // INNER JOIN: sin pedido resoluble se excluye
		}
		list = append(list, &repository.PendingInvoice{Invoice: inv, Order: ord})
	}
	return list, nil
}

func (r *fakeInvoiceRepo) ApproveSupplier(_ context.Context, id, approvedBy string, at time.Time) error {
	if r.s.errApprove != nil {
		return r.s.errApprove
	}
	inv, ok := r.s.invoices[id]
	if !ok {
		return domain.ErrNotFound
	}
	return inv.ApproveSupplier(approvedBy, at)
}

func (r *fakeInvoiceRepo) CountPendingByOrder(_ context.Context, orderID string) (int, error) {
	if r.s.errCountPending != nil {
		return 0, r.s.errCountPending
	}
	n := 0
	for _, inv := range r.s.invoices {
		if inv.OrderID == orderID && inv.PendingSupplierValidation {
			n++
		}
	}
	return n, nil
}

func (r *fakeInvoiceRepo) DeleteByID(_ context.Context, id string) error {
	if r.s.errDeleteInvoice != nil {
		return r.s.errDeleteInvoice
	}
	if _, ok := r.s.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.invoices, id)
	return nil
}

// ── OrderRepository ───────────────────────────────────────────────────────────

type fakeOrderRepo struct{ s *memStore }

var _ repository.OrderRepository = (*fakeOrderRepo)(nil)

func (r *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	if r.s.errGetOrder != nil {
		return nil, r.s.errGetOrder
	}
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) SetPendingSupplierValidation(_ context.Context, orderID string, pending bool) error {
	if r.s.errSetOrderFlag != nil {
		return r.s.errSetOrderFlag
	}
	o, ok := r.s.orders[orderID]
	if !ok {
		return domain.ErrNotFound
	}
	o.HasPendingSupplierValidation = pending
	return nil
}

// ── XMLProductRepository ──────────────────────────────────────────────────────

type fakeProductRepo struct{ s *memStore }

var _ repository.XMLProductRepository = (*fakeProductRepo)(nil)

func (r *fakeProductRepo) Create(_ context.Context, p *entity.XMLProduct) error {
	r.s.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) CountByInvoiceID(_ context.Context, invoiceID string) (int, error) {
	return r.s.countProducts(invoiceID), nil
}

func (r *fakeProductRepo) DeleteByInvoiceID(_ context.Context, invoiceID string) (int, error) {
	if r.s.errDeleteProducts != nil {
		return 0, r.s.errDeleteProducts
	}
	n := 0
	for id, p := range r.s.products {
		if p.InvoiceID == invoiceID {
			delete(r.s.products, id)
			n++
		}
	}
	return n, nil
}

// ── CustomerRepository / VehicleRepository ────────────────────────────────────

type fakeCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*fakeCustomerRepo)(nil)

func (r *fakeCustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	if r.s.errGetCustomer != nil {
		return nil, r.s.errGetCustomer
	}
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	return c, nil
}

type fakeVehicleRepo struct{ s *memStore }

var _ repository.VehicleRepository = (*fakeVehicleRepo)(nil)

func (r *fakeVehicleRepo) GetByID(_ context.Context, id string) (*entity.Vehicle, error) {
	if r.s.errGetVehicle != nil {
		return nil, r.s.errGetVehicle
	}
	v, ok := r.s.vehicles[id]
	if !ok {
		return nil, nil
	}
	return v, nil
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

// fakeTxRunner emula Commit/Rollback: toma un snapshot de facturas y partidas
// antes de ejecutar fn y lo restaura si fn falla.
type fakeTxRunner struct{ s *memStore }

var _ validation.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	invoiceRepo repository.OrderInvoiceRepository,
	productRepo repository.XMLProductRepository,
) error) error {
	invSnap := make(map[string]*entity.OrderInvoice, len(t.s.invoices))
	for k, v := range t.s.invoices {
		cp := *v
		invSnap[k] = &cp
	}
	prodSnap := make(map[string]*entity.XMLProduct, len(t.s.products))
	for k, v := range t.s.products {
		cp := *v
		prodSnap[k] = &cp
	}

	if err := fn(&fakeInvoiceRepo{s: t.s}, &fakeProductRepo{s: t.s}); err != nil {
		t.s.invoices = invSnap
		t.s.products = prodSnap
		return err
	}
	return nil
}

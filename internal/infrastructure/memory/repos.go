package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/medstore-api/internal/domain"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ repository.MerchantRepository = (*MerchantRepo)(nil)
var _ repository.InventoryRepository = (*InventoryRepo)(nil)
var _ repository.StockMovementRepository = (*MovementRepo)(nil)
var _ repository.BillRepository = (*BillRepo)(nil)
var _ repository.SupplierRepository = (*SupplierRepo)(nil)
var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)
var _ repository.SupplierPaymentRepository = (*PaymentRepo)(nil)

// ── Merchants ────────────────────────────────────────────────────────────────

// MerchantRepo comercios en memoria.
type MerchantRepo struct{ v view }

func (r *MerchantRepo) Create(_ context.Context, m *entity.Merchant) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	for _, existing := range st.merchants {
		if strings.EqualFold(existing.Email, m.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *m
	st.merchants[m.ID] = &cp
	return nil
}

func (r *MerchantRepo) GetByID(_ context.Context, id string) (*entity.Merchant, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	m, ok := r.v.state().merchants[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *MerchantRepo) GetByEmail(_ context.Context, email string) (*entity.Merchant, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	for _, m := range r.v.state().merchants {
		if strings.EqualFold(m.Email, email) {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

// SetActive activa o desactiva un comercio. No existe en el puerto; lo usan los tests.
func (r *MerchantRepo) SetActive(id string, active bool) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	if m, ok := st.merchants[id]; ok {
		cp := *m
		cp.IsActive = active
		st.merchants[id] = &cp
	}
}

// ── Inventory ────────────────────────────────────────────────────────────────

// InventoryRepo inventario en memoria. GetForUpdate no necesita bloqueo adicional:
// la transacción completa ya es exclusiva.
type InventoryRepo struct{ v view }

func (r *InventoryRepo) get(merchantID, itemID string) *entity.InventoryItem {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	it, ok := r.v.state().items[itemKey{merchantID, itemID}]
	if !ok {
		return nil
	}
	cp := *it
	return &cp
}

func (r *InventoryRepo) GetByID(_ context.Context, merchantID, itemID string) (*entity.InventoryItem, error) {
	return r.get(merchantID, itemID), nil
}

func (r *InventoryRepo) GetForUpdate(_ context.Context, merchantID, itemID string) (*entity.InventoryItem, error) {
	return r.get(merchantID, itemID), nil
}

func (r *InventoryRepo) GetByNameForUpdate(_ context.Context, merchantID, name string) (*entity.InventoryItem, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	for k, it := range r.v.state().items {
		if k.merchantID == merchantID && strings.EqualFold(it.Name, name) {
			cp := *it
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *InventoryRepo) Create(_ context.Context, item *entity.InventoryItem) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	k := itemKey{item.MerchantID, item.ItemID}
	if _, exists := st.items[k]; exists {
		return domain.ErrDuplicate
	}
	cp := *item
	st.items[k] = &cp
	return nil
}

func (r *InventoryRepo) update(merchantID, itemID string, fn func(it *entity.InventoryItem) bool) (bool, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	k := itemKey{merchantID, itemID}
	it, ok := st.items[k]
	if !ok {
		return false, domain.ErrNotFound
	}
	cp := *it
	if !fn(&cp) {
		return false, nil
	}
	st.items[k] = &cp
	return true, nil
}

func (r *InventoryRepo) AddStock(_ context.Context, merchantID, itemID string, qty int) error {
	_, err := r.update(merchantID, itemID, func(it *entity.InventoryItem) bool {
		it.Quantity += qty
		return true
	})
	return err
}

func (r *InventoryRepo) UpdatePricing(_ context.Context, merchantID, itemID string, price, gstRate decimal.Decimal) error {
	_, err := r.update(merchantID, itemID, func(it *entity.InventoryItem) bool {
		it.Price = price
		it.GSTRate = gstRate
		return true
	})
	return err
}

func (r *InventoryRepo) DecrementIfAvailable(_ context.Context, merchantID, itemID string, qty int) (bool, error) {
	ok, err := r.update(merchantID, itemID, func(it *entity.InventoryItem) bool {
		if it.Quantity < qty {
			return false
		}
		it.Quantity -= qty
		return true
	})
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	return ok, err
}

func (r *InventoryRepo) ListByMerchant(_ context.Context, merchantID string) ([]*entity.InventoryItem, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	return r.v.state().itemsOf(merchantID), nil
}

// itemsOf devuelve copias ordenadas por categoría y nombre.
func (s *state) itemsOf(merchantID string) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0)
	for k, it := range s.items {
		if k.merchantID == merchantID {
			cp := *it
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// ── Movements ────────────────────────────────────────────────────────────────

// MovementRepo movimientos de stock en memoria.
type MovementRepo struct{ v view }

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	st.nextMovID++
	m.ID = st.nextMovID
	cp := *m
	st.movements = append(st.movements, &cp)
	return nil
}

func (r *MovementRepo) ListByItem(_ context.Context, merchantID, itemID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.StockMovement, 0)
	movs := r.v.state().movements
	for i := len(movs) - 1; i >= 0; i-- {
		if movs[i].MerchantID == merchantID && movs[i].ItemID == itemID {
			cp := *movs[i]
			out = append(out, &cp)
		}
	}
	return paginate(out, limit, offset), nil
}

// All devuelve todos los movimientos del comercio en orden de inserción. Lo usan los tests.
func (r *MovementRepo) All(merchantID string) []*entity.StockMovement {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.StockMovement, 0)
	for _, m := range r.v.state().movements {
		if m.MerchantID == merchantID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out
}

// ── Bills ────────────────────────────────────────────────────────────────────

// BillRepo facturas en memoria.
type BillRepo struct{ v view }

func (r *BillRepo) Create(_ context.Context, bill *entity.Bill) error {
	if err := r.v.store.FailBillCreate; err != nil {
		return err
	}
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	for _, b := range st.bills {
		if b.BillNumber == bill.BillNumber {
			return domain.ErrDuplicate
		}
	}
	st.nextBillID++
	bill.ID = st.nextBillID
	cp := *bill
	cp.Items = append([]entity.BillItem(nil), bill.Items...)
	st.bills = append(st.bills, &cp)
	return nil
}

func (r *BillRepo) GetByID(_ context.Context, merchantID string, id int64) (*entity.Bill, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	for _, b := range r.v.state().bills {
		if b.ID == id && b.MerchantID == merchantID {
			cp := *b
			cp.Items = append([]entity.BillItem(nil), b.Items...)
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *BillRepo) ListByMerchant(_ context.Context, merchantID string, limit, offset int) ([]*entity.BillSummary, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.BillSummary, 0)
	bills := r.v.state().bills
	for i := len(bills) - 1; i >= 0; i-- {
		b := bills[i]
		if b.MerchantID != merchantID {
			continue
		}
		names := make([]string, 0, len(b.Items))
		for _, it := range b.Items {
			names = append(names, it.ItemName)
		}
		s := &entity.BillSummary{Bill: *b, ItemsSummary: strings.Join(names, ", ")}
		s.Items = nil
		out = append(out, s)
	}
	return paginate(out, limit, offset), nil
}

// Count devuelve cuántas facturas tiene el comercio. Lo usan los tests.
func (r *BillRepo) Count(merchantID string) int {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	n := 0
	for _, b := range r.v.state().bills {
		if b.MerchantID == merchantID {
			n++
		}
	}
	return n
}

// ── Suppliers / purchases / payments ─────────────────────────────────────────

// SupplierRepo proveedores en memoria.
type SupplierRepo struct{ v view }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	cp := *s
	r.v.state().suppliers[s.ID] = &cp
	return nil
}

func (r *SupplierRepo) GetByID(_ context.Context, merchantID, id string) (*entity.Supplier, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	s, ok := r.v.state().suppliers[id]
	if !ok || s.MerchantID != merchantID {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *SupplierRepo) ListByMerchant(_ context.Context, merchantID string) ([]*entity.Supplier, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	out := make([]*entity.Supplier, 0)
	for _, s := range r.v.state().suppliers {
		if s.MerchantID == merchantID && s.IsActive {
			cp := *s
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AgencyName < out[j].AgencyName })
	return out, nil
}

// PurchaseRepo compras en memoria.
type PurchaseRepo struct{ v view }

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	r.v.state().purchases[p.ID] = &cp
	return nil
}

func (r *PurchaseRepo) GetForUpdate(_ context.Context, merchantID, id string) (*entity.Purchase, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	p, ok := st.purchases[id]
	if !ok || p.MerchantID != merchantID {
		return nil, nil
	}
	cp := *p
	cp.Items = append([]entity.PurchaseItem(nil), p.Items...)
	if s, ok := st.suppliers[p.SupplierID]; ok {
		cp.SupplierName = s.AgencyName
	}
	return &cp, nil
}

func (r *PurchaseRepo) UpdatePayment(_ context.Context, p *entity.Purchase) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	cur, ok := st.purchases[p.ID]
	if !ok || cur.MerchantID != p.MerchantID {
		return domain.ErrNotFound
	}
	cp := *cur
	cp.PaidAmount = p.PaidAmount
	cp.BalanceAmount = p.BalanceAmount
	cp.PaymentStatus = p.PaymentStatus
	cp.UpdatedAt = p.UpdatedAt
	st.purchases[p.ID] = &cp
	return nil
}

func (r *PurchaseRepo) ListByMerchant(_ context.Context, merchantID string, limit, offset int) ([]*entity.Purchase, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	return paginate(r.v.state().purchasesOf(merchantID), limit, offset), nil
}

// purchasesOf devuelve copias sin líneas, más recientes primero.
func (s *state) purchasesOf(merchantID string) []*entity.Purchase {
	out := make([]*entity.Purchase, 0)
	for _, p := range s.purchases {
		if p.MerchantID != merchantID {
			continue
		}
		cp := *p
		cp.Items = nil
		if sup, ok := s.suppliers[p.SupplierID]; ok {
			cp.SupplierName = sup.AgencyName
		}
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchaseDate.Equal(out[j].PurchaseDate) {
			return out[i].PurchaseDate.After(out[j].PurchaseDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// PaymentRepo pagos en memoria.
type PaymentRepo struct{ v view }

func (r *PaymentRepo) Create(_ context.Context, p *entity.SupplierPayment) error {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	cp := *p
	st := r.v.state()
	st.payments = append(st.payments, &cp)
	return nil
}

func (r *PaymentRepo) ListByMerchant(_ context.Context, merchantID string, limit int) ([]*entity.SupplierPayment, error) {
	r.v.l.Lock()
	defer r.v.l.Unlock()
	st := r.v.state()
	out := make([]*entity.SupplierPayment, 0)
	for i := len(st.payments) - 1; i >= 0; i-- {
		p := st.payments[i]
		if p.MerchantID != merchantID {
			continue
		}
		cp := *p
		if s, ok := st.suppliers[p.SupplierID]; ok {
			cp.SupplierName = s.AgencyName
		}
		if pu, ok := st.purchases[p.PurchaseID]; ok {
			cp.InvoiceNumber = pu.InvoiceNumber
		}
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate.After(out[j].PaymentDate) })
	return paginate(out, limit, 0), nil
}

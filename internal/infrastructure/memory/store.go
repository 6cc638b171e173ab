// Package memory implementa los repositorios sobre estructuras en memoria.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado:
// Commit reemplaza el estado, Rollback descarta la copia.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/medstore-api/internal/application/billing"
	"github.com/jhoicas/medstore-api/internal/application/inventory"
	"github.com/jhoicas/medstore-api/internal/application/purchasing"
	"github.com/jhoicas/medstore-api/internal/domain/entity"
	"github.com/jhoicas/medstore-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)
var _ billing.BillingTxRunner = (*Store)(nil)
var _ purchasing.TxRunner = (*Store)(nil)

type itemKey struct {
	merchantID string
	itemID     string
}

// state es el contenido de la base. Los valores apuntados nunca se modifican en sitio
// (copy-on-write), así clone sólo copia mapas y slices.
type state struct {
	merchants  map[string]*entity.Merchant
	items      map[itemKey]*entity.InventoryItem
	bills      []*entity.Bill
	movements  []*entity.StockMovement
	suppliers  map[string]*entity.Supplier
	purchases  map[string]*entity.Purchase
	payments   []*entity.SupplierPayment
	nextBillID int64
	nextMovID  int64
}

func newState() *state {
	return &state{
		merchants: make(map[string]*entity.Merchant),
		items:     make(map[itemKey]*entity.InventoryItem),
		suppliers: make(map[string]*entity.Supplier),
		purchases: make(map[string]*entity.Purchase),
	}
}

func (s *state) clone() *state {
	c := &state{
		merchants:  make(map[string]*entity.Merchant, len(s.merchants)),
		items:      make(map[itemKey]*entity.InventoryItem, len(s.items)),
		bills:      append([]*entity.Bill(nil), s.bills...),
		movements:  append([]*entity.StockMovement(nil), s.movements...),
		suppliers:  make(map[string]*entity.Supplier, len(s.suppliers)),
		purchases:  make(map[string]*entity.Purchase, len(s.purchases)),
		payments:   append([]*entity.SupplierPayment(nil), s.payments...),
		nextBillID: s.nextBillID,
		nextMovID:  s.nextMovID,
	}
	for k, v := range s.merchants {
		c.merchants[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.purchases {
		c.purchases[k] = v
	}
	return c
}

// Store base en memoria. El valor cero no es usable; usar NewStore.
type Store struct {
	mu   sync.Mutex
	data *state

	// FailBillCreate, si no es nil, hace fallar BillRepository.Create. Útil para probar rollback.
	FailBillCreate error
}

// NewStore crea una base vacía.
func NewStore() *Store {
	return &Store{data: newState()}
}

// noLock se usa dentro de transacciones, donde el mutex del Store ya está tomado.
type noLock struct{}

func (noLock) Lock()   {}
func (noLock) Unlock() {}

// view agrupa el estado y el lock con que lo acceden los repos.
type view struct {
	store *Store
	l     sync.Locker
	tx    *state // nil = estado vivo
}

func (v view) state() *state {
	if v.tx != nil {
		return v.tx
	}
	return v.store.data
}

func (s *Store) live() view { return view{store: s, l: &s.mu} }

// Repos fuera de transacción.

func (s *Store) Merchants() *MerchantRepo  { return &MerchantRepo{s.live()} }
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s.live()} }
func (s *Store) Movements() *MovementRepo  { return &MovementRepo{s.live()} }
func (s *Store) Bills() *BillRepo          { return &BillRepo{s.live()} }
func (s *Store) Suppliers() *SupplierRepo  { return &SupplierRepo{s.live()} }
func (s *Store) Purchases() *PurchaseRepo  { return &PurchaseRepo{s.live()} }
func (s *Store) Payments() *PaymentRepo    { return &PaymentRepo{s.live()} }
func (s *Store) Reports() *ReportRepo      { return &ReportRepo{s.live()} }

func (s *Store) inTx(ctx context.Context, fn func(v view) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(view{store: s, l: noLock{}, tx: work}); err != nil {
		return err
	}
	s.data = work
	return nil
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&InventoryRepo{v}, &MovementRepo{v})
	})
}

// RunBilling implementa billing.BillingTxRunner.
func (s *Store) RunBilling(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	billRepo repository.BillRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&InventoryRepo{v}, &MovementRepo{v}, &BillRepo{v})
	})
}

// RunPurchasing implementa purchasing.TxRunner.
func (s *Store) RunPurchasing(ctx context.Context, fn func(
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
	purchaseRepo repository.PurchaseRepository,
	paymentRepo repository.SupplierPaymentRepository,
) error) error {
	return s.inTx(ctx, func(v view) error {
		return fn(&InventoryRepo{v}, &MovementRepo{v}, &PurchaseRepo{v}, &PaymentRepo{v})
	})
}

func paginate[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// test/benchmarks/helpers.go
package benchmarks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ammerola/stock-ledger/internal/core/domain"
	"github.com/ammerola/stock-ledger/internal/core/ports"
)

// memoryStore keeps products and both ledgers in memory. Execute holds one
// lock for the whole unit of work, which gives the same serialisation per
// product that row locks give in Postgres.
type memoryStore struct {
	mu            sync.Mutex
	products      map[int64]*domain.Product
	movements     []*domain.MovementRecord
	statusChanges []*domain.StatusChangeRecord
}

var _ ports.UnitOfWork = (*memoryStore)(nil)

func newMemoryStore(products ...*domain.Product) *memoryStore {
	s := &memoryStore{products: make(map[int64]*domain.Product, len(products))}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *memoryStore) Execute(ctx context.Context, fn func(ctx context.Context, repos ports.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx, ports.TxRepositories{
		Products:      memoryProducts{s},
		Suppliers:     activeSuppliers{},
		Movements:     memoryMovements{s},
		StatusChanges: memoryStatusChanges{s},
	})
}

type memoryProducts struct{ s *memoryStore }

func (r memoryProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrProductNotFound, id)
	}
	cp := *p
	return &cp, nil
}

func (r memoryProducts) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	return r.GetByID(ctx, id)
}

func (r memoryProducts) UpdateStock(_ context.Context, id int64, quantity int) error {
	r.s.products[id].CurrentStock = quantity
	return nil
}

func (r memoryProducts) UpdateStatus(_ context.Context, id int64, status domain.ProductStatus) error {
	r.s.products[id].Status = status
	return nil
}

type memoryMovements struct{ s *memoryStore }

func (r memoryMovements) Append(_ context.Context, rec *domain.MovementRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.s.movements = append(r.s.movements, rec)
	return nil
}

func (r memoryMovements) FindByID(_ context.Context, id uuid.UUID) (*domain.MovementRecord, error) {
	for _, rec := range r.s.movements {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r memoryMovements) Find(_ context.Context, _ ports.MovementFilter) ([]*domain.MovementRecord, error) {
	return r.s.movements, nil
}

func (r memoryMovements) Count(_ context.Context, _ ports.MovementFilter) (int64, error) {
	return int64(len(r.s.movements)), nil
}

type memoryStatusChanges struct{ s *memoryStore }

func (r memoryStatusChanges) Append(_ context.Context, rec *domain.StatusChangeRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	r.s.statusChanges = append(r.s.statusChanges, rec)
	return nil
}

func (r memoryStatusChanges) FindByID(_ context.Context, id uuid.UUID) (*domain.StatusChangeRecord, error) {
	for _, rec := range r.s.statusChanges {
		if rec.ID == id {
			return rec, nil
		}
	}
	return nil, domain.ErrRecordNotFound
}

func (r memoryStatusChanges) Find(_ context.Context, _ ports.StatusChangeFilter) ([]*domain.StatusChangeRecord, error) {
	return r.s.statusChanges, nil
}

func (r memoryStatusChanges) Count(_ context.Context, _ ports.StatusChangeFilter) (int64, error) {
	return int64(len(r.s.statusChanges)), nil
}

// activeSuppliers reports every supplier as active
type activeSuppliers struct{}

func (activeSuppliers) IsActive(context.Context, int64) (bool, error) { return true, nil }

// createReportRows builds n alternating successful and rejected rows
func createReportRows(n int) []ports.LedgerReportRow {
	rows := make([]ports.LedgerReportRow, n)
	at := time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)
	for i := range rows {
		id := int64(i%50 + 1)
		prev, next := 100+i, 100+i+5
		rows[i] = ports.LedgerReportRow{
			RecordedAt:       at.Add(time.Duration(i) * time.Minute),
			ProductID:        &id,
			ProductCode:      fmt.Sprintf("SKU-%03d", id),
			ProductName:      fmt.Sprintf("Benchmark product %d", id),
			Kind:             string(domain.MovementPurchase),
			Amount:           5,
			PreviousQuantity: &prev,
			NewQuantity:      &next,
			Outcome:          string(domain.OutcomeSuccess),
			Message:          domain.MovementPurchase.SuccessMessage(),
		}
		if i%2 == 1 {
			rows[i].Kind = string(domain.MovementSale)
			rows[i].NewQuantity = nil
			rows[i].Outcome = string(domain.OutcomeError)
			rows[i].Message = fmt.Sprintf("not enough stock: current = %d, requested = 500", prev)
		}
	}
	return rows
}

package memory

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo libro de lotes en memoria. Devuelve copias para que planear
// nunca comparta punteros con el estado vivo del almacén.
type StockBatchRepo struct {
	store *Store
}

// NewStockBatchRepository construye el adaptador sobre el store.
func NewStockBatchRepository(store *Store) *StockBatchRepo {
	return &StockBatchRepo{store: store}
}

// Create registra un lote nuevo (recepción).
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, exists := r.store.batches[batch.ID]; exists {
		return domain.ErrDuplicate
	}
	r.store.batches[batch.ID] = cloneBatch(batch)
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	b, ok := r.store.batches[id]
	if !ok {
		return nil, nil
	}
	return cloneBatch(b), nil
}

// ListAvailable devuelve los lotes con stock del componente en orden FIFO.
func (r *StockBatchRepo) ListAvailable(_ context.Context, componentID string) ([]*entity.StockBatch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(componentID, false), nil
}

// ListAll incluye lotes agotados (auditoría).
func (r *StockBatchRepo) ListAll(_ context.Context, componentID string) ([]*entity.StockBatch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.listLocked(componentID, true), nil
}

// ListAvailableForUpdate en memoria equivale a ListAvailable: la exclusión la
// da la serialización de transacciones del TxRunner.
func (r *StockBatchRepo) ListAvailableForUpdate(ctx context.Context, componentID string) ([]*entity.StockBatch, error) {
	return r.ListAvailable(ctx, componentID)
}

func (r *StockBatchRepo) listLocked(componentID string, includeDepleted bool) []*entity.StockBatch {
	var list []*entity.StockBatch
	for _, b := range r.store.batches {
		if b.ComponentID != componentID {
			continue
		}
		if !includeDepleted && b.IsDepleted() {
			continue
		}
		list = append(list, cloneBatch(b))
	}
	sortBatchesFIFO(list)
	return list
}

// TotalAvailable suma el disponible de todos los lotes del componente.
func (r *StockBatchRepo) TotalAvailable(_ context.Context, componentID string) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var total int64
	for _, b := range r.store.batches {
		if b.ComponentID == componentID {
			total += b.CurrentQuantity
		}
	}
	return total, nil
}

// Decrement descuenta de forma condicional: nunca deja el lote en negativo.
func (r *StockBatchRepo) Decrement(_ context.Context, batchID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	if b.CurrentQuantity < amount {
		return domain.NewInsufficientStock(b.ComponentID, amount, b.CurrentQuantity)
	}
	b.CurrentQuantity -= amount
	return nil
}

// Increment repone stock (correcciones y compensaciones).
func (r *StockBatchRepo) Increment(_ context.Context, batchID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	if b.CurrentQuantity+amount > b.InitialQuantity {
		return domain.ErrInvalidInput
	}
	b.CurrentQuantity += amount
	return nil
}

// Correct fija la cantidad actual (ajuste manual dentro del invariante).
func (r *StockBatchRepo) Correct(_ context.Context, batchID string, newQuantity int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	b, ok := r.store.batches[batchID]
	if !ok {
		return domain.ErrNotFound
	}
	if newQuantity < 0 || newQuantity > b.InitialQuantity {
		return domain.ErrInvalidInput
	}
	b.CurrentQuantity = newQuantity
	return nil
}

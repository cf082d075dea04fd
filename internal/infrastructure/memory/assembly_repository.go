package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var (
	_ repository.AssemblyRepository          = (*AssemblyRepo)(nil)
	_ repository.ConsumptionRecordRepository = (*ConsumptionRepo)(nil)
)

// AssemblyRepo adaptador en memoria para unidades producidas.
type AssemblyRepo struct{ store *Store }

// NewAssemblyRepository construye el adaptador.
func NewAssemblyRepository(store *Store) *AssemblyRepo { return &AssemblyRepo{store: store} }

// Create inserta un ensamblaje; la serie repetida devuelve ErrDuplicate
// (en PostgreSQL lo garantiza la constraint única sobre serial_number).
func (r *AssemblyRepo) Create(_ context.Context, a *entity.Assembly) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, taken := r.store.serials[a.SerialNumber]; taken {
		return domain.ErrDuplicate
	}
	clone := *a
	r.store.assemblies[a.ID] = &clone
	r.store.serials[a.SerialNumber] = a.ID
	return nil
}

func (r *AssemblyRepo) GetByID(id string) (*entity.Assembly, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	a, ok := r.store.assemblies[id]
	if !ok {
		return nil, nil
	}
	clone := *a
	return &clone, nil
}

func (r *AssemblyRepo) GetBySerialNumber(serial string) (*entity.Assembly, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	id, ok := r.store.serials[serial]
	if !ok {
		return nil, nil
	}
	clone := *r.store.assemblies[id]
	return &clone, nil
}

func (r *AssemblyRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Assembly, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Assembly
	for _, a := range r.store.assemblies {
		if a.ProductID == productID {
			clone := *a
			list = append(list, &clone)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].SerialNumber < list[j].SerialNumber })
	return paginate(list, limit, offset), nil
}

// UpdateStatus cambia el estado solo si el actual coincide con from.
func (r *AssemblyRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	a, ok := r.store.assemblies[id]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Status != from {
		return domain.ErrConcurrentConflict
	}
	a.Status = to
	return nil
}

// delete deshace un Create dentro de la compensación del TxRunner.
func (r *AssemblyRepo) delete(id string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if a, ok := r.store.assemblies[id]; ok {
		delete(r.store.serials, a.SerialNumber)
		delete(r.store.assemblies, id)
	}
}

// ConsumptionRepo adaptador en memoria para registros de consumo.
type ConsumptionRepo struct{ store *Store }

// NewConsumptionRepository construye el adaptador.
func NewConsumptionRepository(store *Store) *ConsumptionRepo { return &ConsumptionRepo{store: store} }

func (r *ConsumptionRepo) Create(_ context.Context, rec *entity.ConsumptionRecord) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *rec
	r.store.records = append(r.store.records, &clone)
	return nil
}

func (r *ConsumptionRepo) ListByAssembly(assemblyID string) ([]*entity.ConsumptionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.ConsumptionRecord
	for _, rec := range r.store.records {
		if rec.AssemblyID == assemblyID {
			clone := *rec
			list = append(list, &clone)
		}
	}
	return list, nil
}

func (r *ConsumptionRepo) ListByBatch(batchID string) ([]*entity.ConsumptionRecord, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.ConsumptionRecord
	for _, rec := range r.store.records {
		if rec.BatchID == batchID {
			clone := *rec
			list = append(list, &clone)
		}
	}
	return list, nil
}

// delete deshace un Create dentro de la compensación del TxRunner.
func (r *ConsumptionRepo) delete(recordID string) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, rec := range r.store.records {
		if rec.ID == recordID {
			r.store.records = append(r.store.records[:i], r.store.records[i+1:]...)
			return
		}
	}
}

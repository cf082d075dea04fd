package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var (
	_ repository.ComponentRepository = (*ComponentRepo)(nil)
	_ repository.VendorRepository    = (*VendorRepo)(nil)
	_ repository.ProductRepository   = (*ProductRepo)(nil)
	_ repository.BOMRepository       = (*BOMRepo)(nil)
	_ repository.UserRepository      = (*UserRepo)(nil)
)

// ComponentRepo adaptador en memoria para componentes.
type ComponentRepo struct{ store *Store }

// NewComponentRepository construye el adaptador.
func NewComponentRepository(store *Store) *ComponentRepo { return &ComponentRepo{store: store} }

func (r *ComponentRepo) Create(c *entity.Component) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.components {
		if existing.SKU == c.SKU {
			return domain.ErrDuplicate
		}
	}
	clone := *c
	r.store.components[c.ID] = &clone
	return nil
}

func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	c, ok := r.store.components[id]
	if !ok {
		return nil, nil
	}
	clone := *c
	return &clone, nil
}

func (r *ComponentRepo) GetBySKU(sku string) (*entity.Component, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, c := range r.store.components {
		if c.SKU == sku {
			clone := *c
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ComponentRepo) Update(c *entity.Component) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.components[c.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *c
	r.store.components[c.ID] = &clone
	return nil
}

func (r *ComponentRepo) List(limit, offset int) ([]*entity.Component, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.Component, 0, len(r.store.components))
	for _, c := range r.store.components {
		clone := *c
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].SKU < all[j].SKU })
	return paginate(all, limit, offset), nil
}

func (r *ComponentRepo) ListBelowMinimum(_ context.Context) ([]repository.ReorderAlertRow, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	totals := make(map[string]int64)
	for _, b := range r.store.batches {
		totals[b.ComponentID] += b.CurrentQuantity
	}
	var rows []repository.ReorderAlertRow
	for _, c := range r.store.components {
		if totals[c.ID] < c.MinimumQuantity {
			rows = append(rows, repository.ReorderAlertRow{
				ComponentID:     c.ID,
				SKU:             c.SKU,
				Name:            c.Name,
				Category:        c.Category,
				MinimumQuantity: c.MinimumQuantity,
				TotalAvailable:  totals[c.ID],
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	return rows, nil
}

// VendorRepo adaptador en memoria para proveedores.
type VendorRepo struct{ store *Store }

// NewVendorRepository construye el adaptador.
func NewVendorRepository(store *Store) *VendorRepo { return &VendorRepo{store: store} }

func (r *VendorRepo) Create(v *entity.Vendor) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	clone := *v
	r.store.vendors[v.ID] = &clone
	return nil
}

func (r *VendorRepo) GetByID(id string) (*entity.Vendor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	v, ok := r.store.vendors[id]
	if !ok {
		return nil, nil
	}
	clone := *v
	return &clone, nil
}

func (r *VendorRepo) List(limit, offset int) ([]*entity.Vendor, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.Vendor, 0, len(r.store.vendors))
	for _, v := range r.store.vendors {
		clone := *v
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

// ProductRepo adaptador en memoria para productos.
type ProductRepo struct{ store *Store }

// NewProductRepository construye el adaptador.
func NewProductRepository(store *Store) *ProductRepo { return &ProductRepo{store: store} }

func (r *ProductRepo) Create(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.products {
		if existing.ModelNumber == p.ModelNumber {
			return domain.ErrDuplicate
		}
	}
	clone := *p
	r.store.products[p.ID] = &clone
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	clone := *p
	return &clone, nil
}

func (r *ProductRepo) GetByModelNumber(modelNumber string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.products {
		if p.ModelNumber == modelNumber {
			clone := *p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(p *entity.Product) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *p
	r.store.products[p.ID] = &clone
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	all := make([]*entity.Product, 0, len(r.store.products))
	for _, p := range r.store.products {
		clone := *p
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ModelNumber < all[j].ModelNumber })
	return paginate(all, limit, offset), nil
}

// BOMRepo adaptador en memoria para listas de materiales.
type BOMRepo struct{ store *Store }

// NewBOMRepository construye el adaptador.
func NewBOMRepository(store *Store) *BOMRepo { return &BOMRepo{store: store} }

// ListByProduct devuelve las líneas en orden estable por componente.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BOMEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var entries []*entity.BOMEntry
	for _, e := range r.store.bomEntries {
		if e.ProductID == productID {
			clone := *e
			entries = append(entries, &clone)
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ComponentID < entries[j].ComponentID })
	return entries, nil
}

func (r *BOMRepo) Replace(productID string, entries []*entity.BOMEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	kept := r.store.bomEntries[:0]
	for _, e := range r.store.bomEntries {
		if e.ProductID != productID {
			kept = append(kept, e)
		}
	}
	r.store.bomEntries = kept
	for _, e := range entries {
		clone := *e
		r.store.bomEntries = append(r.store.bomEntries, &clone)
	}
	return nil
}

func (r *BOMRepo) Add(entry *entity.BOMEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, e := range r.store.bomEntries {
		if e.ProductID == entry.ProductID && e.ComponentID == entry.ComponentID {
			return domain.ErrDuplicate
		}
	}
	clone := *entry
	r.store.bomEntries = append(r.store.bomEntries, &clone)
	return nil
}

func (r *BOMRepo) Remove(productID, componentID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, e := range r.store.bomEntries {
		if e.ProductID == productID && e.ComponentID == componentID {
			r.store.bomEntries = append(r.store.bomEntries[:i], r.store.bomEntries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// UserRepo adaptador en memoria para usuarios.
type UserRepo struct{ store *Store }

// NewUserRepository construye el adaptador.
func NewUserRepository(store *Store) *UserRepo { return &UserRepo{store: store} }

func (r *UserRepo) Create(u *entity.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.users {
		if existing.Email == u.Email {
			return domain.ErrDuplicate
		}
	}
	clone := *u
	r.store.users[u.ID] = &clone
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	u, ok := r.store.users[id]
	if !ok {
		return nil, nil
	}
	clone := *u
	return &clone, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, u := range r.store.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all
}

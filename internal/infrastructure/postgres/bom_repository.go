package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL.
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// ListByProduct devuelve las líneas del BOM en orden estable por componente.
func (r *BOMRepo) ListByProduct(productID string) ([]*entity.BOMEntry, error) {
	query := `
		SELECT id, product_id, component_id, quantity_per_unit, created_at
		FROM bom_entries WHERE product_id = $1
		ORDER BY component_id`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list bom entries: %w", err)
	}
	defer rows.Close()

	var entries []*entity.BOMEntry
	for rows.Next() {
		var e entity.BOMEntry
		if err := rows.Scan(&e.ID, &e.ProductID, &e.ComponentID, &e.QuantityPerUnit, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// Replace sustituye el BOM completo del producto: borra e inserta.
func (r *BOMRepo) Replace(productID string, entries []*entity.BOMEntry) error {
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `DELETE FROM bom_entries WHERE product_id = $1`, productID); err != nil {
		return fmt.Errorf("delete bom entries: %w", err)
	}
	for _, e := range entries {
		if err := r.Add(e); err != nil {
			return err
		}
	}
	return nil
}

// Add inserta una línea. Producto+componente es único.
func (r *BOMRepo) Add(entry *entity.BOMEntry) error {
	query := `
		INSERT INTO bom_entries (id, product_id, component_id, quantity_per_unit, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.ProductID, entry.ComponentID, entry.QuantityPerUnit, entry.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bom entry: %w", err)
	}
	return nil
}

// Remove borra una línea del BOM.
func (r *BOMRepo) Remove(productID, componentID string) error {
	query := `DELETE FROM bom_entries WHERE product_id = $1 AND component_id = $2`
	tag, err := r.q.Exec(context.Background(), query, productID, componentID)
	if err != nil {
		return fmt.Errorf("delete bom entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

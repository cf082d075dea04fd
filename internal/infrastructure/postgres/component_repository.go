package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

var _ repository.ComponentRepository = (*ComponentRepo)(nil)

// ComponentRepo implementación de ComponentRepository sobre PostgreSQL.
type ComponentRepo struct {
	q Querier
}

// NewComponentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComponentRepository(q Querier) *ComponentRepo {
	return &ComponentRepo{q: q}
}

// Create persiste un componente nuevo.
func (r *ComponentRepo) Create(c *entity.Component) error {
	query := `
		INSERT INTO components (id, sku, name, category, minimum_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.SKU, c.Name, c.Category, c.MinimumQuantity, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert component: %w", err)
	}
	return nil
}

// GetByID obtiene un componente por ID.
func (r *ComponentRepo) GetByID(id string) (*entity.Component, error) {
	return r.getWhere("id = $1", id)
}

// GetBySKU obtiene un componente por SKU.
func (r *ComponentRepo) GetBySKU(sku string) (*entity.Component, error) {
	return r.getWhere("sku = $1", sku)
}

func (r *ComponentRepo) getWhere(where string, arg any) (*entity.Component, error) {
	query := `
		SELECT id, sku, name, category, minimum_quantity, created_at, updated_at
		FROM components WHERE ` + where
	var c entity.Component
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.SKU, &c.Name, &c.Category, &c.MinimumQuantity, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get component: %w", err)
	}
	return &c, nil
}

// Update actualiza metadatos y umbral de reorden (el SKU no se toca).
func (r *ComponentRepo) Update(c *entity.Component) error {
	query := `
		UPDATE components
		SET name = $2, category = $3, minimum_quantity = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Category, c.MinimumQuantity, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista componentes ordenados por SKU con paginación.
func (r *ComponentRepo) List(limit, offset int) ([]*entity.Component, error) {
	query := `
		SELECT id, sku, name, category, minimum_quantity, created_at, updated_at
		FROM components ORDER BY sku LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list components: %w", err)
	}
	defer rows.Close()

	var components []*entity.Component
	for rows.Next() {
		var c entity.Component
		if err := rows.Scan(&c.ID, &c.SKU, &c.Name, &c.Category, &c.MinimumQuantity, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan component: %w", err)
		}
		components = append(components, &c)
	}
	return components, rows.Err()
}

// ListBelowMinimum agrega el disponible por componente y filtra los que están
// bajo su punto de reorden. Componentes sin lotes cuentan como disponible 0.
func (r *ComponentRepo) ListBelowMinimum(ctx context.Context) ([]repository.ReorderAlertRow, error) {
	query := `
		SELECT c.id, c.sku, c.name, c.category, c.minimum_quantity,
		       COALESCE(SUM(b.current_quantity), 0) AS total_available
		FROM components c
		LEFT JOIN stock_batches b ON b.component_id = c.id
		GROUP BY c.id, c.sku, c.name, c.category, c.minimum_quantity
		HAVING COALESCE(SUM(b.current_quantity), 0) < c.minimum_quantity
		ORDER BY c.sku`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list below minimum: %w", err)
	}
	defer rows.Close()

	var alerts []repository.ReorderAlertRow
	for rows.Next() {
		var row repository.ReorderAlertRow
		if err := rows.Scan(&row.ComponentID, &row.SKU, &row.Name, &row.Category,
			&row.MinimumQuantity, &row.TotalAvailable); err != nil {
			return nil, fmt.Errorf("scan reorder alert: %w", err)
		}
		alerts = append(alerts, row)
	}
	return alerts, rows.Err()
}

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

var _ repository.StockBatchRepository = (*StockBatchRepo)(nil)

// StockBatchRepo implementación del libro de lotes sobre PostgreSQL (usable con pool o tx).
type StockBatchRepo struct {
	q Querier
}

// NewStockBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockBatchRepository(q Querier) *StockBatchRepo {
	return &StockBatchRepo{q: q}
}

const batchColumns = `id, component_id, vendor_id, batch_number,
	initial_quantity, current_quantity, unit_cost, date_received, expiry_date,
	created_at, updated_at`

// Create registra la recepción de un lote.
func (r *StockBatchRepo) Create(batch *entity.StockBatch) error {
	query := `
		INSERT INTO stock_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.ComponentID, batch.VendorID, batch.BatchNumber,
		batch.InitialQuantity, batch.CurrentQuantity, batch.UnitCost,
		batch.DateReceived, batch.ExpiryDate, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockBatchRepo) GetByID(id string) (*entity.StockBatch, error) {
	query := `SELECT ` + batchColumns + ` FROM stock_batches WHERE id = $1`
	b, err := scanBatch(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock batch: %w", err)
	}
	return b, nil
}

// ListAvailable devuelve los lotes con stock del componente en orden FIFO.
// El desempate por id mantiene la enumeración reproducible entre llamadas.
func (r *StockBatchRepo) ListAvailable(ctx context.Context, componentID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE component_id = $1 AND current_quantity > 0
		ORDER BY date_received ASC, id ASC`
	return r.list(ctx, query, componentID)
}

// ListAll incluye lotes agotados (auditoría).
func (r *StockBatchRepo) ListAll(ctx context.Context, componentID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE component_id = $1
		ORDER BY date_received ASC, id ASC`
	return r.list(ctx, query, componentID)
}

// ListAvailableForUpdate bloquea las filas del componente hasta el fin de la
// transacción: dos commits concurrentes sobre el mismo componente se serializan aquí.
func (r *StockBatchRepo) ListAvailableForUpdate(ctx context.Context, componentID string) ([]*entity.StockBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM stock_batches
		WHERE component_id = $1 AND current_quantity > 0
		ORDER BY date_received ASC, id ASC
		FOR UPDATE`
	return r.list(ctx, query, componentID)
}

func (r *StockBatchRepo) list(ctx context.Context, query, componentID string) ([]*entity.StockBatch, error) {
	rows, err := r.q.Query(ctx, query, componentID)
	if err != nil {
		return nil, fmt.Errorf("list stock batches: %w", err)
	}
	defer rows.Close()

	var batches []*entity.StockBatch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock batch: %w", err)
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// TotalAvailable suma el disponible de todos los lotes del componente.
func (r *StockBatchRepo) TotalAvailable(ctx context.Context, componentID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(current_quantity), 0)
		FROM stock_batches WHERE component_id = $1`
	var total int64
	if err := r.q.QueryRow(ctx, query, componentID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total available: %w", err)
	}
	return total, nil
}

// Decrement descuenta de forma condicional y atómica: el WHERE con
// current_quantity >= amount garantiza que nunca queda negativo aunque otra
// transacción haya consumido el lote entre la lectura y esta escritura.
func (r *StockBatchRepo) Decrement(ctx context.Context, batchID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE stock_batches
		SET current_quantity = current_quantity - $2, updated_at = now()
		WHERE id = $1 AND current_quantity >= $2`
	tag, err := r.q.Exec(ctx, query, batchID, amount)
	if err != nil {
		return fmt.Errorf("decrement stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		b, err := r.GetByID(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		return domain.NewInsufficientStock(b.ComponentID, amount, b.CurrentQuantity)
	}
	return nil
}

// Increment repone stock sin superar la cantidad recibida.
func (r *StockBatchRepo) Increment(ctx context.Context, batchID string, amount int64) error {
	if amount <= 0 {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE stock_batches
		SET current_quantity = current_quantity + $2, updated_at = now()
		WHERE id = $1 AND current_quantity + $2 <= initial_quantity`
	tag, err := r.q.Exec(ctx, query, batchID, amount)
	if err != nil {
		return fmt.Errorf("increment stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		b, err := r.GetByID(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidInput
	}
	return nil
}

// Correct fija current_quantity dentro de 0 <= qty <= initial_quantity.
func (r *StockBatchRepo) Correct(ctx context.Context, batchID string, newQuantity int64) error {
	if newQuantity < 0 {
		return domain.ErrInvalidInput
	}
	query := `
		UPDATE stock_batches
		SET current_quantity = $2, updated_at = now()
		WHERE id = $1 AND $2 <= initial_quantity`
	tag, err := r.q.Exec(ctx, query, batchID, newQuantity)
	if err != nil {
		return fmt.Errorf("correct stock batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		b, err := r.GetByID(batchID)
		if err != nil {
			return err
		}
		if b == nil {
			return domain.ErrNotFound
		}
		return domain.ErrInvalidInput
	}
	return nil
}

func scanBatch(row pgx.Row) (*entity.StockBatch, error) {
	var b entity.StockBatch
	err := row.Scan(
		&b.ID, &b.ComponentID, &b.VendorID, &b.BatchNumber,
		&b.InitialQuantity, &b.CurrentQuantity, &b.UnitCost,
		&b.DateReceived, &b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

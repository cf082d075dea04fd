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

var (
	_ repository.AssemblyRepository          = (*AssemblyRepo)(nil)
	_ repository.ConsumptionRecordRepository = (*ConsumptionRepo)(nil)
)

// AssemblyRepo implementación de AssemblyRepository sobre PostgreSQL.
type AssemblyRepo struct {
	q Querier
}

// NewAssemblyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAssemblyRepository(q Querier) *AssemblyRepo {
	return &AssemblyRepo{q: q}
}

const assemblyColumns = `id, serial_number, product_id, status, produced_at,
	created_by, created_at, updated_at`

// Create inserta un ensamblaje. La constraint única sobre serial_number
// convierte una serie repetida en ErrDuplicate.
func (r *AssemblyRepo) Create(ctx context.Context, a *entity.Assembly) error {
	query := `
		INSERT INTO assemblies (` + assemblyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		a.ID, a.SerialNumber, a.ProductID, a.Status, a.ProducedAt,
		a.CreatedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert assembly: %w", err)
	}
	return nil
}

// GetByID obtiene un ensamblaje por ID.
func (r *AssemblyRepo) GetByID(id string) (*entity.Assembly, error) {
	return r.getWhere("id = $1", id)
}

// GetBySerialNumber obtiene un ensamblaje por número de serie.
func (r *AssemblyRepo) GetBySerialNumber(serial string) (*entity.Assembly, error) {
	return r.getWhere("serial_number = $1", serial)
}

func (r *AssemblyRepo) getWhere(where string, arg any) (*entity.Assembly, error) {
	query := `SELECT ` + assemblyColumns + ` FROM assemblies WHERE ` + where
	var a entity.Assembly
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&a.ID, &a.SerialNumber, &a.ProductID, &a.Status, &a.ProducedAt,
		&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assembly: %w", err)
	}
	return &a, nil
}

// ListByProduct lista ensamblajes de un producto ordenados por serie.
func (r *AssemblyRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Assembly, error) {
	query := `
		SELECT ` + assemblyColumns + `
		FROM assemblies WHERE product_id = $1
		ORDER BY serial_number LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list assemblies: %w", err)
	}
	defer rows.Close()

	var assemblies []*entity.Assembly
	for rows.Next() {
		var a entity.Assembly
		if err := rows.Scan(&a.ID, &a.SerialNumber, &a.ProductID, &a.Status, &a.ProducedAt,
			&a.CreatedBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan assembly: %w", err)
		}
		assemblies = append(assemblies, &a)
	}
	return assemblies, rows.Err()
}

// UpdateStatus cambia el estado solo si el actual coincide con from (guarda
// optimista): 0 filas afectadas con el ensamblaje existente significa que otro
// inspector ganó la transición.
func (r *AssemblyRepo) UpdateStatus(ctx context.Context, id, from, to string) error {
	query := `
		UPDATE assemblies SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`
	tag, err := r.q.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("update assembly status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		a, err := r.GetByID(id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		return domain.ErrConcurrentConflict
	}
	return nil
}

// ConsumptionRepo implementación de ConsumptionRecordRepository sobre PostgreSQL.
type ConsumptionRepo struct {
	q Querier
}

// NewConsumptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConsumptionRepository(q Querier) *ConsumptionRepo {
	return &ConsumptionRepo{q: q}
}

// Create inserta un registro de consumo (inmutable una vez escrito).
func (r *ConsumptionRepo) Create(ctx context.Context, rec *entity.ConsumptionRecord) error {
	query := `
		INSERT INTO consumption_records (id, assembly_id, batch_id, component_id, quantity_used, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.AssemblyID, rec.BatchID, rec.ComponentID, rec.QuantityUsed, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumption record: %w", err)
	}
	return nil
}

// ListByAssembly devuelve el rastro de consumo de una unidad.
func (r *ConsumptionRepo) ListByAssembly(assemblyID string) ([]*entity.ConsumptionRecord, error) {
	return r.listWhere("assembly_id = $1", assemblyID)
}

// ListByBatch devuelve qué unidades consumieron un lote.
func (r *ConsumptionRepo) ListByBatch(batchID string) ([]*entity.ConsumptionRecord, error) {
	return r.listWhere("batch_id = $1", batchID)
}

func (r *ConsumptionRepo) listWhere(where string, arg any) ([]*entity.ConsumptionRecord, error) {
	query := `
		SELECT id, assembly_id, batch_id, component_id, quantity_used, created_at
		FROM consumption_records WHERE ` + where + `
		ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, arg)
	if err != nil {
		return nil, fmt.Errorf("list consumption records: %w", err)
	}
	defer rows.Close()

	var records []*entity.ConsumptionRecord
	for rows.Next() {
		var rec entity.ConsumptionRecord
		if err := rows.Scan(&rec.ID, &rec.AssemblyID, &rec.BatchID, &rec.ComponentID,
			&rec.QuantityUsed, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan consumption record: %w", err)
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

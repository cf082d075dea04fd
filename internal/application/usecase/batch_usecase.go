package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// BatchUseCase maneja el ciclo de vida de los lotes de stock: recepción,
// corrección manual auditada y vistas de consulta / trazabilidad.
type BatchUseCase struct {
	batchRepo       repository.StockBatchRepository
	componentRepo   repository.ComponentRepository
	vendorRepo      repository.VendorRepository
	consumptionRepo repository.ConsumptionRecordRepository
}

// NewBatchUseCase construye el caso de uso.
func NewBatchUseCase(
	batchRepo repository.StockBatchRepository,
	componentRepo repository.ComponentRepository,
	vendorRepo repository.VendorRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) *BatchUseCase {
	return &BatchUseCase{
		batchRepo:       batchRepo,
		componentRepo:   componentRepo,
		vendorRepo:      vendorRepo,
		consumptionRepo: consumptionRepo,
	}
}

// Receive registra la recepción de un lote nuevo. current_quantity nace igual
// a initial_quantity; la fecha de recepción define su lugar en la cola FIFO.
func (uc *BatchUseCase) Receive(ctx context.Context, in dto.ReceiveBatchRequest) (*dto.BatchResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	component, err := uc.componentRepo.GetByID(in.ComponentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrComponentNotFound
	}
	vendor, err := uc.vendorRepo.GetByID(in.VendorID)
	if err != nil {
		return nil, err
	}
	if vendor == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	received := now
	if in.DateReceived != nil {
		received = *in.DateReceived
	}
	batch := &entity.StockBatch{
		ID:              uuid.New().String(),
		ComponentID:     in.ComponentID,
		VendorID:        in.VendorID,
		BatchNumber:     in.BatchNumber,
		InitialQuantity: in.Quantity,
		CurrentQuantity: in.Quantity,
		UnitCost:        in.UnitCost,
		DateReceived:    received,
		ExpiryDate:      in.ExpiryDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.batchRepo.Create(batch); err != nil {
		return nil, err
	}
	return toBatchResponse(batch), nil
}

// Correct fija la cantidad actual de un lote (merma, conteo físico). Siempre
// queda en el log con el usuario y la razón: es la única mutación de stock
// que no pasa por el motor de producción.
func (uc *BatchUseCase) Correct(ctx context.Context, userID, batchID string, in dto.CorrectBatchRequest) (*dto.BatchResponse, error) {
	if in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.batchRepo.Correct(ctx, batchID, in.NewQuantity); err != nil {
		return nil, err
	}
	log.Info().
		Str("batch_id", batchID).
		Str("user_id", userID).
		Int64("previous_quantity", batch.CurrentQuantity).
		Int64("new_quantity", in.NewQuantity).
		Str("reason", in.Reason).
		Msg("corrección manual de lote")

	batch.CurrentQuantity = in.NewQuantity
	return toBatchResponse(batch), nil
}

// GetByID obtiene un lote.
func (uc *BatchUseCase) GetByID(_ context.Context, batchID string) (*dto.BatchResponse, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	return toBatchResponse(batch), nil
}

// ListByComponent lista los lotes de un componente en orden FIFO.
// includeDepleted añade los agotados (vista de auditoría).
func (uc *BatchUseCase) ListByComponent(ctx context.Context, componentID string, includeDepleted bool) ([]*dto.BatchResponse, error) {
	component, err := uc.componentRepo.GetByID(componentID)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrComponentNotFound
	}
	var batches []*entity.StockBatch
	if includeDepleted {
		batches, err = uc.batchRepo.ListAll(ctx, componentID)
	} else {
		batches, err = uc.batchRepo.ListAvailable(ctx, componentID)
	}
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BatchResponse, len(batches))
	for i, b := range batches {
		out[i] = toBatchResponse(b)
	}
	return out, nil
}

// Trace responde la pregunta inversa a la del ensamblaje: dado un lote
// (p. ej. uno que el proveedor reportó defectuoso), qué unidades lo consumieron.
func (uc *BatchUseCase) Trace(_ context.Context, batchID string) ([]dto.ConsumptionRecordDTO, error) {
	batch, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.consumptionRepo.ListByBatch(batchID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ConsumptionRecordDTO, len(records))
	for i, rec := range records {
		out[i] = dto.ConsumptionRecordDTO{
			AssemblyID:   rec.AssemblyID,
			BatchID:      rec.BatchID,
			ComponentID:  rec.ComponentID,
			QuantityUsed: rec.QuantityUsed,
		}
	}
	return out, nil
}

func toBatchResponse(b *entity.StockBatch) *dto.BatchResponse {
	return &dto.BatchResponse{
		ID:              b.ID,
		ComponentID:     b.ComponentID,
		VendorID:        b.VendorID,
		BatchNumber:     b.BatchNumber,
		InitialQuantity: b.InitialQuantity,
		CurrentQuantity: b.CurrentQuantity,
		UnitCost:        b.UnitCost,
		DateReceived:    b.DateReceived,
		ExpiryDate:      b.ExpiryDate,
	}
}

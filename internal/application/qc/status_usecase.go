package qc

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// StatusUseCase maneja el ciclo de vida de calidad de los ensamblajes:
// IN_PROGRESS → PASSED_QC | FAILED_QC, PASSED_QC → SHIPPED, y retornos.
type StatusUseCase struct {
	assemblyRepo    repository.AssemblyRepository
	consumptionRepo repository.ConsumptionRecordRepository
}

// NewStatusUseCase construye el caso de uso.
func NewStatusUseCase(
	assemblyRepo repository.AssemblyRepository,
	consumptionRepo repository.ConsumptionRecordRepository,
) *StatusUseCase {
	return &StatusUseCase{assemblyRepo: assemblyRepo, consumptionRepo: consumptionRepo}
}

// UpdateStatus aplica una transición de estado. El repositorio hace el cambio
// condicionado al estado leído, así dos inspectores simultáneos no pisan la
// misma transición: el segundo recibe ErrConcurrentConflict y debe recargar.
func (uc *StatusUseCase) UpdateStatus(ctx context.Context, assemblyID, newStatus string) (*dto.AssemblyResponse, error) {
	assembly, err := uc.assemblyRepo.GetByID(assemblyID)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, domain.ErrNotFound
	}
	if !entity.CanTransition(assembly.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.assemblyRepo.UpdateStatus(ctx, assemblyID, assembly.Status, newStatus); err != nil {
		return nil, err
	}
	assembly.Status = newStatus
	return toAssemblyResponse(assembly), nil
}

// GetAssembly devuelve una unidad por ID.
func (uc *StatusUseCase) GetAssembly(_ context.Context, assemblyID string) (*dto.AssemblyResponse, error) {
	assembly, err := uc.assemblyRepo.GetByID(assemblyID)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, domain.ErrNotFound
	}
	return toAssemblyResponse(assembly), nil
}

// GetBySerial busca una unidad por su número de serie.
func (uc *StatusUseCase) GetBySerial(_ context.Context, serial string) (*dto.AssemblyResponse, error) {
	assembly, err := uc.assemblyRepo.GetBySerialNumber(serial)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, domain.ErrNotFound
	}
	return toAssemblyResponse(assembly), nil
}

// ListByProduct lista unidades producidas de un producto, paginadas.
func (uc *StatusUseCase) ListByProduct(_ context.Context, productID string, page dto.PageRequest) ([]*dto.AssemblyResponse, error) {
	page.DefaultPage()
	assemblies, err := uc.assemblyRepo.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssemblyResponse, len(assemblies))
	for i, a := range assemblies {
		out[i] = toAssemblyResponse(a)
	}
	return out, nil
}

// GetTrace responde la pregunta de retiro de producto: de qué lotes salió
// cada componente de esta unidad.
func (uc *StatusUseCase) GetTrace(_ context.Context, assemblyID string) (*dto.AssemblyTraceResponse, error) {
	assembly, err := uc.assemblyRepo.GetByID(assemblyID)
	if err != nil {
		return nil, err
	}
	if assembly == nil {
		return nil, domain.ErrNotFound
	}
	records, err := uc.consumptionRepo.ListByAssembly(assemblyID)
	if err != nil {
		return nil, err
	}
	trace := &dto.AssemblyTraceResponse{
		Assembly:    *toAssemblyResponse(assembly),
		Consumption: make([]dto.ConsumptionRecordDTO, len(records)),
	}
	for i, rec := range records {
		trace.Consumption[i] = dto.ConsumptionRecordDTO{
			AssemblyID:   rec.AssemblyID,
			SerialNumber: assembly.SerialNumber,
			BatchID:      rec.BatchID,
			ComponentID:  rec.ComponentID,
			QuantityUsed: rec.QuantityUsed,
		}
	}
	return trace, nil
}

func toAssemblyResponse(a *entity.Assembly) *dto.AssemblyResponse {
	return &dto.AssemblyResponse{
		ID:           a.ID,
		SerialNumber: a.SerialNumber,
		ProductID:    a.ProductID,
		Status:       a.Status,
		ProducedAt:   a.ProducedAt,
		CreatedBy:    a.CreatedBy,
	}
}

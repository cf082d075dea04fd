package production

import (
	"context"
	"errors"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/allocation"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// PlanUseCase arma la vista previa de asignación para una corrida de producción:
// un plan FIFO por componente, sin tocar stock. La UI la usa antes del commit
// para mostrar qué lotes se consumirían y dónde falta stock.
type PlanUseCase struct {
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
	batchRepo   repository.StockBatchRepository
}

// NewPlanUseCase construye el caso de uso.
func NewPlanUseCase(
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	batchRepo repository.StockBatchRepository,
) *PlanUseCase {
	return &PlanUseCase{productRepo: productRepo, bomRepo: bomRepo, batchRepo: batchRepo}
}

// PlanAllocation resuelve el BOM y asigna FIFO cada componente por separado.
// A diferencia del commit, aquí un componente corto no aborta el resto: se
// reporta el faltante por componente para que el usuario decida (la respuesta
// completa marca Feasible=false). Planear es consultivo: no hay reserva.
func (uc *PlanUseCase) PlanAllocation(ctx context.Context, in dto.PlanAllocationRequest) (*dto.PlanAllocationResponse, error) {
	if in.ProductID == "" || in.UnitsRequested <= 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	entries, err := uc.bomRepo.ListByProduct(in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptyBOM
	}

	resp := &dto.PlanAllocationResponse{
		ProductID:      in.ProductID,
		UnitsRequested: in.UnitsRequested,
		Feasible:       true,
		PerComponent:   make([]dto.ComponentPlanDTO, 0, len(entries)),
	}

	for _, entry := range entries {
		totalRequired := entry.QuantityPerUnit * in.UnitsRequested
		item := dto.ComponentPlanDTO{
			ComponentID:   entry.ComponentID,
			TotalRequired: totalRequired,
		}

		batches, err := uc.batchRepo.ListAvailable(ctx, entry.ComponentID)
		if err != nil {
			return nil, err
		}

		plan, err := allocation.Allocate(entry.ComponentID, batches, totalRequired)
		if err != nil {
			var insufficient *domain.InsufficientStockError
			if !errors.As(err, &insufficient) {
				return nil, err
			}
			resp.Feasible = false
			item.Error = &dto.ShortfallDetailDTO{
				Code:      "INSUFFICIENT_STOCK",
				Required:  insufficient.Required,
				Available: insufficient.Available,
				Shortfall: insufficient.Shortfall,
			}
		} else {
			item.Plan = toBatchLineDTOs(plan)
		}
		resp.PerComponent = append(resp.PerComponent, item)
	}

	return resp, nil
}

func toBatchLineDTOs(plan allocation.Plan) []dto.BatchLineDTO {
	lines := make([]dto.BatchLineDTO, 0, len(plan))
	for _, l := range plan {
		lines = append(lines, dto.BatchLineDTO{BatchID: l.BatchID, QuantityTaken: l.QuantityTaken})
	}
	return lines
}

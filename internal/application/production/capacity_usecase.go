package production

import (
	"context"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/allocation"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// CapacityUseCase calcula cuántas unidades de un producto se pueden producir
// con el stock actual. Lectura pura sobre un snapshot: el número es consultivo
// y puede quedar desactualizado frente a commits concurrentes; no reserva nada.
type CapacityUseCase struct {
	productRepo repository.ProductRepository
	bomRepo     repository.BOMRepository
	batchRepo   repository.StockBatchRepository
}

// NewCapacityUseCase construye el caso de uso.
func NewCapacityUseCase(
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	batchRepo repository.StockBatchRepository,
) *CapacityUseCase {
	return &CapacityUseCase{productRepo: productRepo, bomRepo: bomRepo, batchRepo: batchRepo}
}

// GetCapacity devuelve la capacidad máxima y el conjunto de componentes
// limitantes. Un producto sin BOM reporta capacidad 0 (error de configuración,
// nunca "capacidad infinita").
func (uc *CapacityUseCase) GetCapacity(ctx context.Context, productID string) (*dto.CapacityResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}

	entries, err := uc.bomRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}

	available := make(map[string]int64, len(entries))
	for _, e := range entries {
		total, err := uc.batchRepo.TotalAvailable(ctx, e.ComponentID)
		if err != nil {
			return nil, err
		}
		available[e.ComponentID] = total
	}

	capacity := allocation.MaxProducible(entries, available)
	return &dto.CapacityResponse{
		ProductID:          productID,
		MaxProducible:      capacity.MaxProducible,
		LimitingComponents: capacity.Limiting,
	}, nil
}

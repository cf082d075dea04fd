package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// ComponentUseCase casos de uso CRUD para componentes. El stock no se edita
// aquí: entra por recepción de lotes y sale por corridas de producción.
type ComponentUseCase struct {
	repo      repository.ComponentRepository
	batchRepo repository.StockBatchRepository
}

// NewComponentUseCase construye el caso de uso.
func NewComponentUseCase(repo repository.ComponentRepository, batchRepo repository.StockBatchRepository) *ComponentUseCase {
	return &ComponentUseCase{repo: repo, batchRepo: batchRepo}
}

// Create registra un componente nuevo. El SKU es único.
func (uc *ComponentUseCase) Create(ctx context.Context, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.MinimumQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	component := &entity.Component{
		ID:              uuid.New().String(),
		SKU:             in.SKU,
		Name:            in.Name,
		Category:        in.Category,
		MinimumQuantity: in.MinimumQuantity,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(component); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, component), nil
}

// GetByID obtiene un componente con su disponible agregado.
func (uc *ComponentUseCase) GetByID(ctx context.Context, id string) (*dto.ComponentResponse, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrComponentNotFound
	}
	return uc.toResponse(ctx, component), nil
}

// Update modifica metadatos y umbral de reorden. El SKU es inmutable.
func (uc *ComponentUseCase) Update(ctx context.Context, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	component, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if component == nil {
		return nil, domain.ErrComponentNotFound
	}
	if in.Name != nil {
		component.Name = *in.Name
	}
	if in.Category != nil {
		component.Category = *in.Category
	}
	if in.MinimumQuantity != nil {
		if *in.MinimumQuantity < 0 {
			return nil, domain.ErrInvalidInput
		}
		component.MinimumQuantity = *in.MinimumQuantity
	}
	component.UpdatedAt = time.Now()
	if err := uc.repo.Update(component); err != nil {
		return nil, err
	}
	return uc.toResponse(ctx, component), nil
}

// List lista componentes con paginación.
func (uc *ComponentUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.ComponentResponse, error) {
	page.DefaultPage()
	components, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ComponentResponse, len(components))
	for i, c := range components {
		out[i] = uc.toResponse(ctx, c)
	}
	return out, nil
}

// ReorderAlerts devuelve los componentes bajo su cantidad mínima con una
// sugerencia de compra simple: reponer hasta el doble del mínimo.
func (uc *ComponentUseCase) ReorderAlerts(ctx context.Context) ([]dto.ReorderAlertDTO, error) {
	rows, err := uc.repo.ListBelowMinimum(ctx)
	if err != nil {
		return nil, err
	}
	alerts := make([]dto.ReorderAlertDTO, len(rows))
	for i, row := range rows {
		alerts[i] = dto.ReorderAlertDTO{
			ComponentID:     row.ComponentID,
			SKU:             row.SKU,
			Name:            row.Name,
			Category:        row.Category,
			MinimumQuantity: row.MinimumQuantity,
			TotalAvailable:  row.TotalAvailable,
			SuggestedOrder:  row.MinimumQuantity*2 - row.TotalAvailable,
		}
	}
	return alerts, nil
}

func (uc *ComponentUseCase) toResponse(ctx context.Context, c *entity.Component) *dto.ComponentResponse {
	total, _ := uc.batchRepo.TotalAvailable(ctx, c.ID)
	return &dto.ComponentResponse{
		ID:              c.ID,
		SKU:             c.SKU,
		Name:            c.Name,
		Category:        c.Category,
		MinimumQuantity: c.MinimumQuantity,
		TotalAvailable:  total,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/domain"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
	"github.com/jhoicas/Manufactura-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y su lista de materiales.
type ProductUseCase struct {
	repo          repository.ProductRepository
	bomRepo       repository.BOMRepository
	componentRepo repository.ComponentRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	componentRepo repository.ComponentRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, bomRepo: bomRepo, componentRepo: componentRepo}
}

// Create registra un producto, opcionalmente con su BOM inicial.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetByModelNumber(in.ModelNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.validateBOM(in.BOM); err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ModelNumber: in.ModelNumber,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	for _, line := range in.BOM {
		entry := &entity.BOMEntry{
			ID:              uuid.New().String(),
			ProductID:       product.ID,
			ComponentID:     line.ComponentID,
			QuantityPerUnit: line.QuantityPerUnit,
			CreatedAt:       now,
		}
		if err := uc.bomRepo.Add(entry); err != nil {
			return nil, err
		}
	}
	return uc.toResponse(product)
}

// GetByID obtiene un producto con su BOM.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return uc.toResponse(product)
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) ([]*dto.ProductResponse, error) {
	page.DefaultPage()
	products, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp, err := uc.toResponse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ReplaceBOM sustituye la lista de materiales completa del producto.
// No afecta corridas ya confirmadas: el consumo registrado es histórico.
func (uc *ProductUseCase) ReplaceBOM(productID string, in dto.ReplaceBOMRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if len(in.Entries) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateBOM(in.Entries); err != nil {
		return nil, err
	}
	now := time.Now()
	entries := make([]*entity.BOMEntry, len(in.Entries))
	for i, line := range in.Entries {
		entries[i] = &entity.BOMEntry{
			ID:              uuid.New().String(),
			ProductID:       productID,
			ComponentID:     line.ComponentID,
			QuantityPerUnit: line.QuantityPerUnit,
			CreatedAt:       now,
		}
	}
	if err := uc.bomRepo.Replace(productID, entries); err != nil {
		return nil, err
	}
	return uc.toResponse(product)
}

// validateBOM exige cantidades positivas, componentes existentes y sin repetidos.
func (uc *ProductUseCase) validateBOM(lines []dto.BOMEntryDTO) error {
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		if line.QuantityPerUnit <= 0 {
			return domain.ErrInvalidInput
		}
		if seen[line.ComponentID] {
			return domain.ErrDuplicate
		}
		seen[line.ComponentID] = true
		component, err := uc.componentRepo.GetByID(line.ComponentID)
		if err != nil {
			return err
		}
		if component == nil {
			return domain.ErrComponentNotFound
		}
	}
	return nil
}

func (uc *ProductUseCase) toResponse(p *entity.Product) (*dto.ProductResponse, error) {
	entries, err := uc.bomRepo.ListByProduct(p.ID)
	if err != nil {
		return nil, err
	}
	bom := make([]dto.BOMEntryDTO, len(entries))
	for i, e := range entries {
		bom[i] = dto.BOMEntryDTO{ComponentID: e.ComponentID, QuantityPerUnit: e.QuantityPerUnit}
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		ModelNumber: p.ModelNumber,
		Description: p.Description,
		BOM:         bom,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

package repository

import "github.com/jhoicas/Manufactura-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos terminados.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByModelNumber(modelNumber string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}

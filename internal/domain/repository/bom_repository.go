package repository

import "github.com/jhoicas/Manufactura-api/internal/domain/entity"

// BOMRepository define el puerto para la lista de materiales de cada producto.
// La resolución devuelve las líneas en orden estable (por componente) para que
// planeación y commit recorran el BOM siempre igual.
type BOMRepository interface {
	ListByProduct(productID string) ([]*entity.BOMEntry, error)
	// Replace reemplaza el BOM completo del producto (la UI edita el BOM entero).
	Replace(productID string, entries []*entity.BOMEntry) error
	Add(entry *entity.BOMEntry) error
	Remove(productID, componentID string) error
}

package dto

import "time"

// BOMEntryDTO línea de la lista de materiales.
type BOMEntryDTO struct {
	ComponentID     string `json:"component_id" validate:"required,uuid"`
	QuantityPerUnit int64  `json:"quantity_per_unit" validate:"required,min=1"`
}

// CreateProductRequest body para POST /api/products. El BOM puede venir vacío
// y configurarse después, pero un producto sin BOM tiene capacidad cero.
type CreateProductRequest struct {
	Name        string        `json:"name" validate:"required,min=1,max=200"`
	ModelNumber string        `json:"model_number" validate:"required,min=1,max=64"`
	Description string        `json:"description" validate:"omitempty,max=2000"`
	BOM         []BOMEntryDTO `json:"bom,omitempty"`
}

// ReplaceBOMRequest body para PUT /api/products/:id/bom.
type ReplaceBOMRequest struct {
	Entries []BOMEntryDTO `json:"entries" validate:"required,min=1"`
}

// ProductResponse salida de un producto con su BOM.
type ProductResponse struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	ModelNumber string        `json:"model_number"`
	Description string        `json:"description"`
	BOM         []BOMEntryDTO `json:"bom,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// AssemblyResponse salida de una unidad producida.
type AssemblyResponse struct {
	ID           string    `json:"id"`
	SerialNumber string    `json:"serial_number"`
	ProductID    string    `json:"product_id"`
	Status       string    `json:"status"`
	ProducedAt   time.Time `json:"produced_at"`
	CreatedBy    string    `json:"created_by,omitempty"`
}

// UpdateAssemblyStatusRequest body para PATCH /api/assemblies/:id/status (QC).
type UpdateAssemblyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PASSED_QC FAILED_QC SHIPPED RETURNED"`
}

// AssemblyTraceResponse trazabilidad de una unidad: de qué lotes salió cada
// componente que la compone.
type AssemblyTraceResponse struct {
	Assembly    AssemblyResponse       `json:"assembly"`
	Consumption []ConsumptionRecordDTO `json:"consumption"`
}

package dto

import "time"

// CreateComponentRequest body para POST /api/components.
type CreateComponentRequest struct {
	SKU             string `json:"sku" validate:"required,min=1,max=64"`
	Name            string `json:"name" validate:"required,min=1,max=200"`
	Category        string `json:"category" validate:"omitempty,max=100"`
	MinimumQuantity int64  `json:"minimum_quantity" validate:"min=0"`
}

// UpdateComponentRequest body para PUT /api/components/:id.
// La identidad (SKU) es inmutable; solo metadatos y umbral de reorden.
type UpdateComponentRequest struct {
	Name            *string `json:"name,omitempty"`
	Category        *string `json:"category,omitempty"`
	MinimumQuantity *int64  `json:"minimum_quantity,omitempty"`
}

// ComponentResponse salida de un componente con su disponible agregado.
type ComponentResponse struct {
	ID              string    `json:"id"`
	SKU             string    `json:"sku"`
	Name            string    `json:"name"`
	Category        string    `json:"category"`
	MinimumQuantity int64     `json:"minimum_quantity"`
	TotalAvailable  int64     `json:"total_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ReorderAlertDTO componente bajo su cantidad mínima.
type ReorderAlertDTO struct {
	ComponentID     string `json:"component_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	MinimumQuantity int64  `json:"minimum_quantity"`
	TotalAvailable  int64  `json:"total_available"`
	SuggestedOrder  int64  `json:"suggested_order_qty"` // MinimumQuantity*2 - TotalAvailable
}

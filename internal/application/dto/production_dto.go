package dto

// CapacityResponse respuesta de GET /api/production/capacity/:productId.
// MaxProducible es consultivo (snapshot): no reserva stock.
type CapacityResponse struct {
	ProductID           string   `json:"product_id"`
	MaxProducible       int64    `json:"max_producible"`
	LimitingComponents  []string `json:"limiting_components"`
}

// BatchLineDTO una toma (lote, cantidad) dentro de un plan.
type BatchLineDTO struct {
	BatchID       string `json:"batch_id"`
	QuantityTaken int64  `json:"quantity_taken"`
}

// ComponentPlanDTO plan de asignación de un componente para la corrida.
// Si el componente no alcanza, Plan es nil y Error trae el detalle del faltante.
type ComponentPlanDTO struct {
	ComponentID   string              `json:"component_id"`
	TotalRequired int64               `json:"total_required"`
	Plan          []BatchLineDTO      `json:"plan,omitempty"`
	Error         *ShortfallDetailDTO `json:"error,omitempty"`
}

// ShortfallDetailDTO detalle de stock insuficiente para acción correctiva
// (reordenar, bajar cantidad, override manual).
type ShortfallDetailDTO struct {
	Code      string `json:"code"` // siempre "INSUFFICIENT_STOCK"
	Required  int64  `json:"required"`
	Available int64  `json:"available"`
	Shortfall int64  `json:"shortfall"`
}

// PlanAllocationRequest body de POST /api/production/plan.
type PlanAllocationRequest struct {
	ProductID      string `json:"product_id" validate:"required,uuid"`
	UnitsRequested int64  `json:"units_requested" validate:"required,min=1"`
}

// PlanAllocationResponse vista previa de la corrida: un plan por componente.
// Feasible es true solo si todos los componentes alcanzaron.
type PlanAllocationResponse struct {
	ProductID      string             `json:"product_id"`
	UnitsRequested int64              `json:"units_requested"`
	Feasible       bool               `json:"feasible"`
	PerComponent   []ComponentPlanDTO `json:"per_component"`
}

// OverridePlanDTO plan manual por componente (flujo de override de la UI).
type OverridePlanDTO struct {
	ComponentID string         `json:"component_id"`
	Plan        []BatchLineDTO `json:"plan"`
}

// CommitProductionRequest body de POST /api/production/commit.
// SerialNumbers debe traer exactamente UnitsRequested series únicas.
// OverridePlan es opcional: si viene, reemplaza la asignación FIFO automática
// pero se valida igual (exactitud y disponibilidad) antes de tocar stock.
type CommitProductionRequest struct {
	ProductID      string            `json:"product_id" validate:"required,uuid"`
	UnitsRequested int64             `json:"units_requested" validate:"required,min=1"`
	SerialNumbers  []string          `json:"serial_numbers" validate:"required"`
	OverridePlan   []OverridePlanDTO `json:"override_plan,omitempty"`
}

// CommitProductionResponse resultado del commit: IDs de los ensamblajes creados.
type CommitProductionResponse struct {
	ProductID   string   `json:"product_id"`
	AssemblyIDs []string `json:"assembly_ids"`
}

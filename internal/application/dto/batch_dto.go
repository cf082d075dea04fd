package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveBatchRequest body para POST /api/batches (recepción de un lote).
type ReceiveBatchRequest struct {
	ComponentID  string          `json:"component_id" validate:"required,uuid"`
	VendorID     string          `json:"vendor_id" validate:"required,uuid"`
	BatchNumber  string          `json:"batch_number" validate:"required,min=1,max=100"`
	Quantity     int64           `json:"quantity" validate:"required,min=1"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	DateReceived *time.Time      `json:"date_received,omitempty"` // vacío = ahora
	ExpiryDate   *time.Time      `json:"expiry_date,omitempty"`
}

// CorrectBatchRequest body para PATCH /api/batches/:id/quantity (ajuste manual).
type CorrectBatchRequest struct {
	NewQuantity int64  `json:"new_quantity" validate:"min=0"`
	Reason      string `json:"reason" validate:"required,min=3"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID              string          `json:"id"`
	ComponentID     string          `json:"component_id"`
	VendorID        string          `json:"vendor_id"`
	BatchNumber     string          `json:"batch_number"`
	InitialQuantity int64           `json:"initial_quantity"`
	CurrentQuantity int64           `json:"current_quantity"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	DateReceived    time.Time       `json:"date_received"`
	ExpiryDate      *time.Time      `json:"expiry_date,omitempty"`
}

// ConsumptionRecordDTO rastro de consumo lote → ensamblaje (trazabilidad).
type ConsumptionRecordDTO struct {
	AssemblyID   string `json:"assembly_id"`
	SerialNumber string `json:"serial_number,omitempty"`
	BatchID      string `json:"batch_id"`
	ComponentID  string `json:"component_id"`
	QuantityUsed int64  `json:"quantity_used"`
}

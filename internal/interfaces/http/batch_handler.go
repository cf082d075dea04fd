package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/usecase"
	"github.com/jhoicas/Manufactura-api/internal/domain"
)

// BatchHandler maneja recepción, corrección y consulta de lotes de stock.
type BatchHandler struct {
	uc *usecase.BatchUseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *usecase.BatchUseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Receive godoc
// @Summary      Registrar recepción de un lote
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveBatchRequest  true  "component_id, vendor_id, batch_number, quantity, unit_cost"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Receive(c *fiber.Ctx) error {
	var in dto.ReceiveBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Receive(c.Context(), in)
	if err != nil {
		return batchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Correct godoc
// @Summary      Corrección manual de la cantidad de un lote
// @Description  Ajuste auditado (merma, conteo físico). Requiere razón y respeta
//
//	0 <= cantidad <= cantidad recibida.
//
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lote"
// @Param        body  body  dto.CorrectBatchRequest  true  "new_quantity, reason"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/quantity [patch]
func (h *BatchHandler) Correct(c *fiber.Ctx) error {
	userID := GetUserID(c)
	var in dto.CorrectBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Correct(c.Context(), userID, c.Params("id"), in)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener un lote
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// ListByComponent godoc
// @Summary      Lotes de un componente en orden FIFO
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        componentId       path   string  true   "ID del componente"
// @Param        include_depleted  query  bool    false  "Incluir lotes agotados"
// @Success      200  {array}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/components/{componentId}/batches [get]
func (h *BatchHandler) ListByComponent(c *fiber.Ctx) error {
	includeDepleted := c.QueryBool("include_depleted", false)
	out, err := h.uc.ListByComponent(c.Context(), c.Params("componentId"), includeDepleted)
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(out)
}

// Trace godoc
// @Summary      Unidades que consumieron un lote
// @Description  Trazabilidad inversa para retiros: dado un lote defectuoso,
//
//	qué ensamblajes lo llevan.
//
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {array}  dto.ConsumptionRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/trace [get]
func (h *BatchHandler) Trace(c *fiber.Ctx) error {
	records, err := h.uc.Trace(c.Context(), c.Params("id"))
	if err != nil {
		return batchError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(records), "consumption": records})
}

func batchError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrComponentNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "componente no encontrado"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

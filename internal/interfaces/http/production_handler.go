package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/production"
	"github.com/jhoicas/Manufactura-api/internal/domain"
)

// ProductionHandler expone el motor de producción: capacidad, plan y commit.
type ProductionHandler struct {
	capacity *production.CapacityUseCase
	plan     *production.PlanUseCase
	commit   *production.CommitUseCase
}

// NewProductionHandler construye el handler.
func NewProductionHandler(
	capacity *production.CapacityUseCase,
	plan *production.PlanUseCase,
	commit *production.CommitUseCase,
) *ProductionHandler {
	return &ProductionHandler{capacity: capacity, plan: plan, commit: commit}
}

// GetCapacity godoc
// @Summary      Capacidad máxima producible de un producto
// @Description  Snapshot consultivo: min sobre floor(disponible/cantidad por unidad)
//
//	de cada componente del BOM, con los componentes limitantes.
//
// @Tags         production
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.CapacityResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/production/capacity/{productId} [get]
func (h *ProductionHandler) GetCapacity(c *fiber.Ctx) error {
	out, err := h.capacity.GetCapacity(c.Context(), c.Params("productId"))
	if err != nil {
		return productionError(c, err)
	}
	return c.JSON(out)
}

// PlanAllocation godoc
// @Summary      Vista previa de asignación FIFO para una corrida
// @Description  Calcula el plan por componente sin reservar ni descontar stock.
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PlanAllocationRequest  true  "product_id, units_requested"
// @Success      200   {object}  dto.PlanAllocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/production/plan [post]
func (h *ProductionHandler) PlanAllocation(c *fiber.Ctx) error {
	var in dto.PlanAllocationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.plan.PlanAllocation(c.Context(), in)
	if err != nil {
		return productionError(c, err)
	}
	return c.JSON(out)
}

// CommitProduction godoc
// @Summary      Confirmar una corrida de producción
// @Description  Descuenta lotes FIFO (u override manual), crea un ensamblaje por
//
//	serie y registra el consumo lote → serie. Todo-o-nada.
//
// @Tags         production
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CommitProductionRequest  true  "product_id, units_requested, serial_numbers, override_plan opcional"
// @Success      201   {object}  dto.CommitProductionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/production/commit [post]
func (h *ProductionHandler) CommitProduction(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.CommitProductionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// El override manual del plan FIFO es decisión de supervisión.
	if len(in.OverridePlan) > 0 {
		if role := GetRole(c); role != "admin" && role != "supervisor" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "solo supervisores pueden anular el plan FIFO"})
		}
	}
	out, err := h.commit.CommitProduction(c.Context(), userID, in)
	if err != nil {
		return productionError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// productionError traduce la taxonomía de errores del motor a HTTP. Se usa
// errors.Is/As porque los casos de uso envuelven los sentinelas con contexto.
func productionError(c *fiber.Ctx, err error) error {
	var insErr *domain.InsufficientStockError
	switch {
	case errors.As(err, &insErr):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"code":         "INSUFFICIENT_STOCK",
			"component_id": insErr.ComponentID,
			"required":     insErr.Required,
			"available":    insErr.Available,
			"shortfall":    insErr.Shortfall,
		})
	case errors.Is(err, domain.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "PRODUCT_NOT_FOUND", Message: "el producto no existe"})
	case errors.Is(err, domain.ErrEmptyBOM):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_BOM", Message: "el producto no tiene lista de materiales configurada"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_SERIAL", Message: "algún número de serie ya está registrado"})
	case errors.Is(err, domain.ErrPartialCommit):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PARTIAL_COMMIT", Message: "la reversión no pudo completarse; se requiere conciliación de stock"})
	case errors.Is(err, domain.ErrConcurrentConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_CONFLICT", Message: "otra corrida modificó el stock; reintente"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Manufactura-api/internal/application/dto"
	"github.com/jhoicas/Manufactura-api/internal/application/qc"
	"github.com/jhoicas/Manufactura-api/internal/domain"
)

// QCHandler maneja el ciclo de calidad y la trazabilidad de ensamblajes.
type QCHandler struct {
	uc *qc.StatusUseCase
}

// NewQCHandler construye el handler.
func NewQCHandler(uc *qc.StatusUseCase) *QCHandler {
	return &QCHandler{uc: uc}
}

// UpdateStatus godoc
// @Summary      Transición de estado de calidad de un ensamblaje
// @Tags         assemblies
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del ensamblaje"
// @Param        body  body  dto.UpdateAssemblyStatusRequest  true  "status destino"
// @Success      200   {object}  dto.AssemblyResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id}/status [patch]
func (h *QCHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateAssemblyStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return qcError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener ensamblaje
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ensamblaje"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id} [get]
func (h *QCHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetAssembly(c.Context(), c.Params("id"))
	if err != nil {
		return qcError(c, err)
	}
	return c.JSON(out)
}

// GetBySerial godoc
// @Summary      Buscar ensamblaje por número de serie
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        serial  path  string  true  "Número de serie"
// @Success      200  {object}  dto.AssemblyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assemblies/serial/{serial} [get]
func (h *QCHandler) GetBySerial(c *fiber.Ctx) error {
	out, err := h.uc.GetBySerial(c.Context(), c.Params("serial"))
	if err != nil {
		return qcError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Unidades producidas de un producto
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        limit      query  int     false  "Tamaño de página (default 20)"
// @Param        offset     query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.AssemblyResponse
// @Router       /api/products/{productId}/assemblies [get]
func (h *QCHandler) ListByProduct(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByProduct(c.Context(), c.Params("productId"), page)
	if err != nil {
		return qcError(c, err)
	}
	return c.JSON(out)
}

// GetTrace godoc
// @Summary      Trazabilidad de una unidad
// @Description  De qué lotes salió cada componente de este ensamblaje.
// @Tags         assemblies
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del ensamblaje"
// @Success      200  {object}  dto.AssemblyTraceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/assemblies/{id}/trace [get]
func (h *QCHandler) GetTrace(c *fiber.Ctx) error {
	out, err := h.uc.GetTrace(c.Context(), c.Params("id"))
	if err != nil {
		return qcError(c, err)
	}
	return c.JSON(out)
}

func qcError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ensamblaje no encontrado"})
	case errors.Is(err, domain.ErrInvalidTransition):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_TRANSITION", Message: "transición de estado no permitida"})
	case errors.Is(err, domain.ErrConcurrentConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENT_CONFLICT", Message: "el estado cambió mientras se procesaba; recargue"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

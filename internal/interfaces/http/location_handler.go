package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/usecase"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones.
type LocationHandler struct {
	uc          *usecase.StockLocationUseCase
	ledger      *inventory.LedgerUseCase
	temperature *monitoring.TemperatureUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *usecase.StockLocationUseCase, ledger *inventory.LedgerUseCase, temperature *monitoring.TemperatureUseCase) *LocationHandler {
	return &LocationHandler{uc: uc, ledger: ledger, temperature: temperature}
}

// Create godoc
// @Summary      Crear ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateStockLocationRequest  true  "Datos de la ubicación"
// @Success      201   {object}  dto.StockLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateStockLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener ubicación por ID
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.StockLocationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [get]
func (h *LocationHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar ubicaciones
// @Tags         locations
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.StockLocationListResponse
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.uc.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir sala o tipo de la ubicación
// @Tags         locations
// @Accept       json
// @Produce      json
// @Param        id    path  string                          true  "ID de la ubicación"
// @Param        body  body  dto.UpdateStockLocationRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.StockLocationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [patch]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateStockLocationRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ubicación no encontrada"})
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar ubicación (solo si no tiene dosis)
// @Tags         locations
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Entries godoc
// @Summary      Entradas de stock presentes en la ubicación
// @Tags         locations
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/locations/{id}/entries [get]
func (h *LocationHandler) Entries(c *fiber.Ctx) error {
	list, err := h.ledger.ListEntriesByLocation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.NewLedgerEntryList(list))
}

// TemperatureReadings godoc
// @Summary      Historial de temperatura de la ubicación
// @Tags         locations
// @Produce      json
// @Param        id      path   string  true   "ID de la ubicación"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.TemperatureReadingResponse
// @Router       /api/locations/{id}/temperature-readings [get]
func (h *LocationHandler) TemperatureReadings(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	list, err := h.temperature.ListByLocation(c.Context(), c.Params("id"), limit, offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.NewTemperatureReadingList(list))
}

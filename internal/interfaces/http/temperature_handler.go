package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
)

// TemperatureHandler maneja el registro y consulta de temperaturas.
type TemperatureHandler struct {
	uc *monitoring.TemperatureUseCase
}

// NewTemperatureHandler construye el handler.
func NewTemperatureHandler(uc *monitoring.TemperatureUseCase) *TemperatureHandler {
	return &TemperatureHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar lecturas de temperatura (lote)
// @Tags         temperature
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.RecordTemperatureRequest  true  "Lecturas"
// @Success      201   {array}   dto.TemperatureReadingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/temperature-readings [post]
func (h *TemperatureHandler) Record(c *fiber.Ctx) error {
	var in []dto.RecordTemperatureRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inputs := make([]monitoring.RecordReadingInput, 0, len(in))
	for _, r := range in {
		input := monitoring.RecordReadingInput{
			LocationID: r.LocationID,
			Celsius:    r.Celsius,
			RecordedBy: r.RecordedBy,
		}
		if r.RecordedAt != nil {
			input.RecordedAt = *r.RecordedAt
		}
		inputs = append(inputs, input)
	}
	readings, err := h.uc.Record(c.Context(), inputs)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTemperatureReadingList(readings))
}

// Latest godoc
// @Summary      Última lectura por ubicación
// @Description  Una lectura por ubicación, en el orden de location_ids. Ubicaciones sin lecturas no aparecen.
// @Tags         temperature
// @Produce      json
// @Param        location_ids  query  string  true  "IDs separados por coma"
// @Success      200  {array}  dto.TemperatureReadingResponse
// @Router       /api/temperature-readings/latest [get]
func (h *TemperatureHandler) Latest(c *fiber.Ctx) error {
	var ids []string
	for _, id := range strings.Split(c.Query("location_ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	latest, err := h.uc.LatestByLocation(c.Context(), ids)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(dto.NewTemperatureReadingList(latest.Readings()))
}

// GetByID godoc
// @Summary      Obtener lectura de temperatura
// @Tags         temperature
// @Produce      json
// @Param        id   path  string  true  "ID de la lectura"
// @Success      200  {object}  dto.TemperatureReadingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/temperature-readings/{id} [get]
func (h *TemperatureHandler) GetByID(c *fiber.Ctx) error {
	reading, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lectura no encontrada")
	}
	return c.JSON(dto.NewTemperatureReadingResponse(reading))
}

// Update godoc
// @Summary      Corregir lectura de temperatura
// @Tags         temperature
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la lectura"
// @Param        body  body  dto.UpdateTemperatureRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.TemperatureReadingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/temperature-readings/{id} [patch]
func (h *TemperatureHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTemperatureRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	reading, err := h.uc.Update(c.Context(), c.Params("id"), monitoring.UpdateReadingInput{
		Celsius:    in.Celsius,
		RecordedAt: in.RecordedAt,
		RecordedBy: in.RecordedBy,
	})
	if err != nil {
		return respondError(c, err, "lectura no encontrada")
	}
	return c.JSON(dto.NewTemperatureReadingResponse(reading))
}

// Delete godoc
// @Summary      Eliminar lectura de temperatura
// @Tags         temperature
// @Param        id   path  string  true  "ID de la lectura"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/temperature-readings/{id} [delete]
func (h *TemperatureHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err, "lectura no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

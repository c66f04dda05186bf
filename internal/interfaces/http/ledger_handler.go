package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
)

// LedgerHandler maneja traslados y consumos sobre entradas de stock.
type LedgerHandler struct {
	uc *inventory.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *inventory.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// GetEntry godoc
// @Summary      Obtener entrada de stock
// @Tags         stock-entries
// @Produce      json
// @Param        id   path  string  true  "ID de la entrada"
// @Success      200  {object}  dto.LedgerEntryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock-entries/{id} [get]
func (h *LedgerHandler) GetEntry(c *fiber.Ctx) error {
	entry, err := h.uc.GetEntry(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "entrada no encontrada")
	}
	return c.JSON(dto.NewLedgerEntryResponse(entry))
}

// Transfer godoc
// @Summary      Trasladar dosis a otra ubicación
// @Tags         stock-entries
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la entrada origen"
// @Param        body  body  dto.TransferRequest  true  "quantity, destination_location_id"
// @Success      200   {object}  dto.LedgerEntryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-entries/{id}/transfer [post]
func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	target, err := h.uc.Transfer(c.Context(), c.Params("id"), in.Quantity, in.DestinationLocationID)
	if err != nil {
		return respondError(c, err, "entrada o ubicación destino no encontrada")
	}
	return c.JSON(dto.NewLedgerEntryResponse(target))
}

// Consume godoc
// @Summary      Consumir dosis (uso, pérdida o descarte)
// @Tags         stock-entries
// @Accept       json
// @Param        id    path  string              true  "ID de la entrada"
// @Param        body  body  dto.ConsumeRequest  true  "quantity"
// @Success      204
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock-entries/{id}/consume [post]
func (h *LedgerHandler) Consume(c *fiber.Ctx) error {
	var in dto.ConsumeRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.Consume(c.Context(), c.Params("id"), in.Quantity); err != nil {
		return respondError(c, err, "entrada no encontrada")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

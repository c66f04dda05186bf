package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/usecase"
)

// LotHandler maneja las peticiones HTTP de lotes de vacuna.
type LotHandler struct {
	ledger *inventory.LedgerUseCase
	lots   *usecase.LotUseCase
}

// NewLotHandler construye el handler.
func NewLotHandler(ledger *inventory.LedgerUseCase, lots *usecase.LotUseCase) *LotHandler {
	return &LotHandler{ledger: ledger, lots: lots}
}

// Create godoc
// @Summary      Registrar lote con su primera entrada de stock
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLotRequest  true  "Lote, ubicación y cantidad inicial"
// @Success      201   {object}  dto.CreateLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots [post]
func (h *LotHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	lot, entry, err := h.ledger.CreateLotWithEntry(c.Context(), inventory.CreateLotInput{
		BatchCode:    in.BatchCode,
		Expiry:       in.Expiry,
		Identifier:   in.Identifier,
		ShortCode:    in.ShortCode,
		ProductName:  in.ProductName,
		ProductType:  in.ProductType,
		Manufacturer: in.Manufacturer,
		DosesPerUnit: in.DosesPerUnit,
		LocationID:   in.LocationID,
		Quantity:     in.Quantity,
	})
	if err != nil {
		return respondError(c, err, "ubicación no encontrada")
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateLotResponse{
		Lot:   dto.NewLotResponse(lot),
		Entry: dto.NewLedgerEntryResponse(entry),
	})
}

// GetByID godoc
// @Summary      Obtener lote con su stock en todas las ubicaciones
// @Tags         lots
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	stock, err := h.ledger.LotStock(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err, "lote no encontrado")
	}
	return c.JSON(dto.LotStockResponse{
		Lot:     dto.NewLotResponse(stock.Lot),
		Entries: dto.NewLedgerEntryList(stock.Entries),
		Total:   stock.Total,
	})
}

// List godoc
// @Summary      Listar lotes
// @Tags         lots
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.LotListResponse
// @Router       /api/lots [get]
func (h *LotHandler) List(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	out, err := h.lots.List(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Corregir metadatos del lote
// @Tags         lots
// @Accept       json
// @Produce      json
// @Param        id    path  string                true  "ID del lote"
// @Param        body  body  dto.UpdateLotRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [patch]
func (h *LotHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLotRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.lots.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err, "lote no encontrado")
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "lote no encontrado"})
	}
	return c.JSON(out)
}

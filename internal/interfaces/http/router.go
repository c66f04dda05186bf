package http

import (
	nethttp "net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger         *inventory.LedgerUseCase
	LotUC          *usecase.LotUseCase
	LocationUC     *usecase.StockLocationUseCase
	TemperatureUC  *monitoring.TemperatureUseCase
	MetricsHandler nethttp.Handler // nil = sin /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsHandler != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.MetricsHandler))
	}

	api := app.Group("/api")

	// Lotes: alta con primera entrada, consulta de stock y metadatos
	lots := api.Group("/lots")
	lotHandler := NewLotHandler(deps.Ledger, deps.LotUC)
	lots.Post("/", lotHandler.Create)
	lots.Get("/", lotHandler.List)
	lots.Get("/:id", lotHandler.GetByID)
	lots.Patch("/:id", lotHandler.Update)

	// Entradas de stock: traslado y consumo
	entries := api.Group("/stock-entries")
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	entries.Get("/:id", ledgerHandler.GetEntry)
	entries.Post("/:id/transfer", ledgerHandler.Transfer)
	entries.Post("/:id/consume", ledgerHandler.Consume)

	// Ubicaciones
	locations := api.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC, deps.Ledger, deps.TemperatureUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Get("/:id", locationHandler.GetByID)
	locations.Patch("/:id", locationHandler.Update)
	locations.Delete("/:id", locationHandler.Delete)
	locations.Get("/:id/entries", locationHandler.Entries)
	locations.Get("/:id/temperature-readings", locationHandler.TemperatureReadings)

	// Temperatura
	readings := api.Group("/temperature-readings")
	temperatureHandler := NewTemperatureHandler(deps.TemperatureUC)
	readings.Post("/", temperatureHandler.Record)
	readings.Get("/latest", temperatureHandler.Latest)
	readings.Get("/:id", temperatureHandler.GetByID)
	readings.Patch("/:id", temperatureHandler.Update)
	readings.Delete("/:id", temperatureHandler.Delete)
}

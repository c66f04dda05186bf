package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/dto"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/usecase"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/entity"
	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/memory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/metrics"
	apphttp "github.com/vacinas-ubs/estoque-vacinas/internal/interfaces/http"
)

// buildTestApp arma la API completa sobre el almacén en memoria con las ubicaciones dadas.
func buildTestApp(t *testing.T, locations ...string) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	for _, id := range locations {
		require.NoError(t, store.StockLocations().Create(context.Background(), &entity.StockLocation{ID: id, Kind: "refrigerador"}))
	}
	reg := prometheus.NewRegistry()
	ledgerMetrics, err := metrics.NewLedgerMetrics(reg)
	require.NoError(t, err)

	txRunner := memory.NewTxRunner(store)
	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:         inventory.NewLedgerUseCase(txRunner, store.Lots(), store.LedgerEntries(), ledgerMetrics, zerolog.Nop()),
		LotUC:          usecase.NewLotUseCase(store.Lots()),
		LocationUC:     usecase.NewStockLocationUseCase(txRunner, store.StockLocations()),
		TemperatureUC:  monitoring.NewTemperatureUseCase(txRunner, store.TemperatureReadings()),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
	return app
}

// doJSON lanza la petición y decodifica el cuerpo en out (si no es nil).
func doJSON(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func createLot(t *testing.T, app *fiber.App, location string, quantity int) dto.CreateLotResponse {
	t.Helper()
	var out dto.CreateLotResponse
	status := doJSON(t, app, http.MethodPost, "/api/lots", dto.CreateLotRequest{
		BatchCode:   "ABC123",
		Expiry:      "31/12/2025",
		ProductName: "BCG",
		LocationID:  location,
		Quantity:    quantity,
	}, &out)
	require.Equal(t, http.StatusCreated, status)
	return out
}

func TestLots_CreateTransferConsume(t *testing.T) {
	app := buildTestApp(t, "1", "2")

	created := createLot(t, app, "1", 100)
	assert.Equal(t, "31/12/2025", created.Lot.Expiry)
	assert.Equal(t, 1, created.Lot.DosesPerUnit)
	assert.Equal(t, 100, created.Entry.Quantity)

	var target dto.LedgerEntryResponse
	status := doJSON(t, app, http.MethodPost, "/api/stock-entries/"+created.Entry.ID+"/transfer",
		dto.TransferRequest{Quantity: 30, DestinationLocationID: "2"}, &target)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "2", target.LocationID)
	assert.Equal(t, 30, target.Quantity)

	status = doJSON(t, app, http.MethodPost, "/api/stock-entries/"+target.ID+"/consume",
		dto.ConsumeRequest{Quantity: 30}, nil)
	assert.Equal(t, http.StatusNoContent, status)

	var stock dto.LotStockResponse
	status = doJSON(t, app, http.MethodGet, "/api/lots/"+created.Lot.ID, nil, &stock)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 70, stock.Total)
	require.Len(t, stock.Entries, 1)
	assert.Equal(t, "1", stock.Entries[0].LocationID)

	status = doJSON(t, app, http.MethodPost, "/api/stock-entries/"+created.Entry.ID+"/consume",
		dto.ConsumeRequest{Quantity: 70}, nil)
	assert.Equal(t, http.StatusNoContent, status)

	var errResp dto.ErrorResponse
	status = doJSON(t, app, http.MethodGet, "/api/lots/"+created.Lot.ID, nil, &errResp)
	assert.Equal(t, http.StatusNotFound, status, "el lote sin dosis se elimina")
	assert.Equal(t, "NOT_FOUND", errResp.Code)
}

func TestLots_MapeoDeErrores(t *testing.T) {
	app := buildTestApp(t, "1", "2")
	created := createLot(t, app, "1", 10)
	entryPath := "/api/stock-entries/" + created.Entry.ID

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{"vencimiento inválido", http.MethodPost, "/api/lots", dto.CreateLotRequest{BatchCode: "X", Expiry: "2025-12-31", ProductName: "BCG", LocationID: "1", Quantity: 1}, http.StatusBadRequest, "VALIDATION"},
		{"ubicación inexistente", http.MethodPost, "/api/lots", dto.CreateLotRequest{BatchCode: "X", Expiry: "31/12/2025", ProductName: "BCG", LocationID: "9", Quantity: 1}, http.StatusNotFound, "NOT_FOUND"},
		{"stock insuficiente", http.MethodPost, entryPath + "/consume", dto.ConsumeRequest{Quantity: 11}, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"cantidad cero", http.MethodPost, entryPath + "/transfer", dto.TransferRequest{Quantity: 0, DestinationLocationID: "2"}, http.StatusBadRequest, "VALIDATION"},
		{"misma ubicación", http.MethodPost, entryPath + "/transfer", dto.TransferRequest{Quantity: 1, DestinationLocationID: "1"}, http.StatusBadRequest, "VALIDATION"},
		{"destino inexistente", http.MethodPost, entryPath + "/transfer", dto.TransferRequest{Quantity: 1, DestinationLocationID: "9"}, http.StatusNotFound, "NOT_FOUND"},
		{"entrada inexistente", http.MethodGet, "/api/stock-entries/nope", nil, http.StatusNotFound, "NOT_FOUND"},
		{"ubicación con dosis", http.MethodDelete, "/api/locations/1", nil, http.StatusConflict, "CONFLICT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			status := doJSON(t, app, tt.method, tt.path, tt.body, &errResp)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, errResp.Code)
		})
	}

	var entry dto.LedgerEntryResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, entryPath, nil, &entry))
	assert.Equal(t, 10, entry.Quantity, "ningún rechazo modifica el stock")
}

func TestLots_CuerpoInvalido(t *testing.T) {
	app := buildTestApp(t, "1")

	req := httptest.NewRequest(http.MethodPost, "/api/lots", bytes.NewBufferString("{no-json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLots_UpdateMetadatos(t *testing.T) {
	app := buildTestApp(t, "1")
	created := createLot(t, app, "1", 5)

	opened := true
	expiry := "30/06/2026"
	var out dto.LotResponse
	status := doJSON(t, app, http.MethodPatch, "/api/lots/"+created.Lot.ID, dto.UpdateLotRequest{Opened: &opened, Expiry: &expiry}, &out)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, out.Opened)
	assert.Equal(t, "30/06/2026", out.Expiry)

	status = doJSON(t, app, http.MethodPatch, "/api/lots/nope", dto.UpdateLotRequest{Opened: &opened}, nil)
	assert.Equal(t, http.StatusNotFound, status)

	var list dto.LotListResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/lots?limit=500", nil, &list))
	assert.Len(t, list.Items, 1)
	assert.Equal(t, 100, list.Page.Limit, "el límite se acota a 100")
}

func TestLocations_CRUD(t *testing.T) {
	app := buildTestApp(t)

	var loc dto.StockLocationResponse
	status := doJSON(t, app, http.MethodPost, "/api/locations", dto.CreateStockLocationRequest{RoomID: "sala-1", Kind: "refrigerador"}, &loc)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, loc.ID)

	var entries []dto.LedgerEntryResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/locations/"+loc.ID+"/entries", nil, &entries))
	assert.Empty(t, entries)

	var updated dto.StockLocationResponse
	status = doJSON(t, app, http.MethodPatch, "/api/locations/"+loc.ID, map[string]any{"kind": "caja térmica"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "caja térmica", updated.Kind)
	assert.Equal(t, "sala-1", updated.RoomID)
	assert.Equal(t, http.StatusBadRequest, doJSON(t, app, http.MethodPatch, "/api/locations/"+loc.ID, map[string]any{"kind": ""}, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPatch, "/api/locations/no-existe", map[string]any{"kind": "x"}, nil))

	assert.Equal(t, http.StatusNoContent, doJSON(t, app, http.MethodDelete, "/api/locations/"+loc.ID, nil, nil))
	var notFound dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, "/api/locations/"+loc.ID, nil, &notFound))
	assert.Equal(t, "ubicación no encontrada", notFound.Message)

	status = doJSON(t, app, http.MethodPost, "/api/locations", dto.CreateStockLocationRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTemperature_RecordAndLatest(t *testing.T) {
	app := buildTestApp(t, "L1", "L2", "L3")

	body := []map[string]any{
		{"location_id": "L1", "celsius": 3.5, "recorded_at": "2026-10-01T08:00:00Z"},
		{"location_id": "L2", "celsius": "-18.2", "recorded_by": "prof-1"},
	}
	var created []dto.TemperatureReadingResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/temperature-readings", body, &created))
	require.Len(t, created, 2)

	var latest []dto.TemperatureReadingResponse
	status := doJSON(t, app, http.MethodGet, "/api/temperature-readings/latest?location_ids=L1,L2,L3", nil, &latest)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, latest, 2, "ubicación sin lecturas se omite")
	assert.Equal(t, "L1", latest[0].LocationID)
	assert.Equal(t, "L2", latest[1].LocationID)
	assert.Equal(t, "-18.2", latest[1].Celsius.String())

	var history []dto.TemperatureReadingResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/locations/L1/temperature-readings", nil, &history))
	assert.Len(t, history, 1)

	var errResp dto.ErrorResponse
	status = doJSON(t, app, http.MethodPost, "/api/temperature-readings", []map[string]any{}, &errResp)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", errResp.Code)
}

func TestTemperature_LatestRespetaElOrdenDeLaConsulta(t *testing.T) {
	app := buildTestApp(t, "A", "M", "Z")

	body := []map[string]any{
		{"location_id": "A", "celsius": 4},
		{"location_id": "M", "celsius": 5},
		{"location_id": "Z", "celsius": 6},
	}
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/temperature-readings", body, nil))

	var latest []dto.TemperatureReadingResponse
	status := doJSON(t, app, http.MethodGet, "/api/temperature-readings/latest?location_ids=Z,A,M,Z", nil, &latest)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, latest, 3, "los IDs repetidos aparecen una sola vez")
	assert.Equal(t, []string{"Z", "A", "M"}, []string{latest[0].LocationID, latest[1].LocationID, latest[2].LocationID})
}

func TestTemperature_GetUpdateDelete(t *testing.T) {
	app := buildTestApp(t, "L1")

	var created []dto.TemperatureReadingResponse
	require.Equal(t, http.StatusCreated, doJSON(t, app, http.MethodPost, "/api/temperature-readings",
		[]map[string]any{{"location_id": "L1", "celsius": "9.1", "recorded_by": "prof-1"}}, &created))
	require.Len(t, created, 1)
	path := "/api/temperature-readings/" + created[0].ID

	var got dto.TemperatureReadingResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, path, nil, &got))
	assert.Equal(t, "9.1", got.Celsius.String())

	var updated dto.TemperatureReadingResponse
	status := doJSON(t, app, http.MethodPatch, path, map[string]any{"celsius": "7.4"}, &updated)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "7.4", updated.Celsius.String())
	assert.Equal(t, "prof-1", updated.RecordedBy, "los campos omitidos no cambian")

	var latest []dto.TemperatureReadingResponse
	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodGet, "/api/temperature-readings/latest?location_ids=L1", nil, &latest))
	require.Len(t, latest, 1)
	assert.Equal(t, "7.4", latest[0].Celsius.String())

	assert.Equal(t, http.StatusNoContent, doJSON(t, app, http.MethodDelete, path, nil, nil))

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodGet, path, nil, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodDelete, path, nil, nil))
	assert.Equal(t, http.StatusNotFound, doJSON(t, app, http.MethodPatch, path, map[string]any{"celsius": 1}, nil))
}

func TestMetrics_Expuestas(t *testing.T) {
	app := buildTestApp(t, "1")
	createLot(t, app, "1", 10)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), `vaccine_ledger_operations_total{operation="create_lot",outcome="ok"} 1`)
}

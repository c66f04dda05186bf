package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vacinas-ubs/estoque-vacinas/internal/application/inventory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/monitoring"
	"github.com/vacinas-ubs/estoque-vacinas/internal/application/usecase"
	"github.com/vacinas-ubs/estoque-vacinas/internal/domain/repository"
	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/memory"
	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/metrics"
	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/postgres"
	httpRouter "github.com/vacinas-ubs/estoque-vacinas/internal/interfaces/http"
	"github.com/vacinas-ubs/estoque-vacinas/pkg/config"
	"github.com/vacinas-ubs/estoque-vacinas/pkg/logger"
)

// storage agrupa los adaptadores de persistencia del backend elegido.
type storage struct {
	txRunner interface {
		inventory.TxRunner
		monitoring.TxRunner
	}
	lots      repository.LotRepository
	entries   repository.LedgerEntryRepository
	locations repository.StockLocationRepository
	readings  repository.TemperatureReadingRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	var (
		ledgerMetrics  inventory.Metrics
		metricsHandler http.Handler
	)
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		lm, err := metrics.NewLedgerMetrics(reg)
		if err != nil {
			log.Fatal().Err(err).Msg("registrar métricas")
		}
		ledgerMetrics = lm
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
	}

	ledgerUC := inventory.NewLedgerUseCase(store.txRunner, store.lots, store.entries, ledgerMetrics, log.Component("ledger"))
	lotUC := usecase.NewLotUseCase(store.lots)
	locationUC := usecase.NewStockLocationUseCase(store.txRunner, store.locations)
	temperatureUC := monitoring.NewTemperatureUseCase(store.txRunner, store.readings)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventario de Vacunas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:         ledgerUC,
		LotUC:          lotUC,
		LocationUC:     locationUC,
		TemperatureUC:  temperatureUC,
		MetricsHandler: metricsHandler,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage conecta el backend configurado. Con postgres y DB_AUTO_MIGRATE aplica las
// migraciones pendientes antes de abrir el pool.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &storage{
			txRunner:  memory.NewTxRunner(s),
			lots:      s.Lots(),
			entries:   s.LedgerEntries(),
			locations: s.StockLocations(),
			readings:  s.TemperatureReadings(),
			close:     func() {},
		}, nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), log.Component("migrate"), "up"); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &storage{
		txRunner:  postgres.NewTxRunner(pool),
		lots:      postgres.NewLotRepository(pool),
		entries:   postgres.NewLedgerEntryRepository(pool),
		locations: postgres.NewStockLocationRepository(pool),
		readings:  postgres.NewTemperatureReadingRepository(pool),
		close:     pool.Close,
	}, nil
}

// Command migrate aplica las migraciones de la base (goose) embebidas en el binario.
//
//	migrate up | down | status | version | redo | reset | up-to VERSION | down-to VERSION
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vacinas-ubs/estoque-vacinas/internal/infrastructure/postgres"
	"github.com/vacinas-ubs/estoque-vacinas/pkg/config"
	"github.com/vacinas-ubs/estoque-vacinas/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "uso: migrate <up|down|status|version|redo|reset|up-to|down-to> [versión]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: cfg.App.Name})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	command := os.Args[1]
	if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), log.Component("migrate"), command, os.Args[2:]...); err != nil {
		log.Fatal().Err(err).Str("command", command).Msg("migración fallida")
	}
	log.Info().Str("command", command).Msg("migración completada")
}

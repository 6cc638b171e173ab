// Comando migrate aplica (o revierte con -down) las migraciones embebidas.
package main

import (
	"flag"

	"github.com/jhoicas/medstore-api/internal/infrastructure/postgres"
	"github.com/jhoicas/medstore-api/pkg/config"
	"github.com/jhoicas/medstore-api/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "revertir todas las migraciones")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	version, err := postgres.Migrate(cfg.DB.ConnectionString(), *down)
	if err != nil {
		log.Fatal().Err(err).Bool("down", *down).Msg("migraciones")
	}
	log.Info().Uint("version", version).Bool("down", *down).Msg("migraciones completadas")
}

package main

import (
	"flag"
	"fmt"
	"log"

	"shareit/app"
	"shareit/config"
	"shareit/logging"
	"shareit/routes"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		log.Fatalf("init logging: %v", err)
	}
	if closer != nil {
		defer closer.Close()
	}

	application := app.MustNew(cfg, logger)
	defer application.Close()

	routes.Register(application.Router, application)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	logger.Info().Str("addr", addr).Msg("listening")
	if err := application.Router.Run(addr); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelter-catalog/internal/platform/config"
	"shelter-catalog/internal/platform/logger"
	"shelter-catalog/internal/router"
)

// @title Shelter Catalog API
// @version 1.0
// @description Catálogo público de animales del refugio, leído desde una hoja de cálculo compartida.
// @BasePath /
func main() {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "shelter.json5"
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.NewFromEnv().Error("config error", map[string]any{"err": err, "path": path})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if cfg.SheetURL == "" {
		// el servidor arranca igual; /animals responde 503 hasta que se configure
		log.Warn("sheet url not configured", nil)
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(router.Options{Config: cfg, Logger: log}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.FetchTimeout.Duration + 10*time.Second, // fichas con foto
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("starting server", map[string]any{"addr": addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", map[string]any{"err": err})
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", map[string]any{"err": err})
	}
	log.Info("server stopped", nil)
}

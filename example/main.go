// Command example runs a small pet-store server demonstrating the reqcheck
// validation middleware against live endpoints.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/reqcheck/echo-reqcheck"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		// No logger yet; write the failure directly and bail.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger := newLogger(cfg)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestID(), requestLogger(logger))

	reqcheck.New(reqcheck.WithExtensionLogger(logger)).Init(e)

	registry := reqcheck.NewRegistry()
	registerRoutes(e, registry, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      e,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown failed")
		return
	}
	logger.Info().Msg("server stopped")
}

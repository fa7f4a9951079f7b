package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/tone-service/internal/handler"
)

func main() {
	cfg := config.Load()

	var logger *zap.Logger
	if cfg.LogDevelopment {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	logger.Info("toned starting",
		zap.String("listen", cfg.ListenAddr),
		zap.Int("sampleRate", cfg.SampleRate),
		zap.Float64("unitAmplitude", cfg.UnitAmplitude),
		zap.Int("maxTones", cfg.MaxTones),
	)

	h := handler.NewHandlers(cfg, catalog.New(cfg.MaxTones, logger), logger)

	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      h.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info("API listening", zap.String("addr", cfg.ListenAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("API failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(ctx)
}

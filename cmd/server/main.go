package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtuwear/internal/application/services"
	"virtuwear/internal/application/usecases"
	"virtuwear/internal/config"
	domainrepos "virtuwear/internal/domain/repositories"
	domainservices "virtuwear/internal/domain/services"
	"virtuwear/internal/infrastructure/api"
	"virtuwear/internal/infrastructure/external"
	"virtuwear/internal/infrastructure/repositories"
	infraservices "virtuwear/internal/infrastructure/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("[boot] Using GEMINI_MODEL", "model", cfg.GeminiModel, "vertex", cfg.UseVertex)

	// Initialize infrastructure layer
	clientPool, err := infraservices.NewGenAIClientPool(&domainrepos.AIClientConfig{
		APIKey:    cfg.GeminiAPIKey,
		UseVertex: cfg.UseVertex,
		ProjectID: cfg.ProjectID,
		Location:  cfg.Location,
	})
	if err != nil {
		return err
	}
	defer clientPool.Close()

	client, err := clientPool.GetGenAIClient(ctx)
	if err != nil {
		return err
	}

	aiService := external.NewGeminiTryOnService(client.Models, cfg.GeminiModel, cfg.UpstreamTimeout, logger)
	garmentRepo := repositories.NewFileGarmentRepository(cfg.CatalogDir)
	tryOnRepo, err := repositories.NewFileTryOnRepository(cfg.UploadsDir, cfg.OutputDir)
	if err != nil {
		return err
	}

	// Initialize domain and application layers
	tryOnDomainService := domainservices.NewTryOnDomainService(aiService)
	tryOnUseCase := usecases.NewTryOnUseCase(garmentRepo, tryOnRepo, tryOnDomainService, logger)
	parameterService := services.NewParameterService()

	// Initialize API layer
	handler := api.NewTryOnHandler(tryOnUseCase, parameterService, cfg.BaseDir, cfg.MaxUploadBytes, logger)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           api.NewRouter(handler, cfg.AssetsDir, os.Stdout),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("VirtuWear server starting",
		"addr", srv.Addr,
		"baseDir", cfg.BaseDir,
		"catalog", cfg.CatalogDir,
		"model", cfg.GeminiModel)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

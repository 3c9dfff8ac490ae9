package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	domaincfg "kgraph/domain/config"
	"kgraph/infrastructure/config"
	"kgraph/infrastructure/di"
	"kgraph/interfaces/http/rest"

	"go.uber.org/zap"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	// Optional runtime-tunable settings from a watched JSON file.
	if path := os.Getenv("DYNAMIC_CONFIG_FILE"); path != "" {
		watcher, err := config.NewConfigWatcher(path, container.Logger)
		if err != nil {
			log.Fatalf("Failed to watch dynamic config: %v", err)
		}
		watcher.OnChange(func(dyn *config.DynamicConfig) {
			container.DomainRuntime.Update(func(d domaincfg.DomainConfig) domaincfg.DomainConfig {
				d.MaxPathDepth = dyn.Limits.MaxPathDepth
				d.MaxPathResults = dyn.Limits.MaxPathResults
				d.DefaultMaxDepth = dyn.Limits.DefaultMaxDepth
				d.TransitivePrerequisites = dyn.Policies.TransitivePrerequisites
				return d
			})
		})
		watcher.Start()
		defer watcher.Stop()
	}

	router := rest.NewRouter(
		container.GraphService,
		container.PathService,
		container.PrereqService,
		container.JWTValidator,
		cfg.EnableCORS,
		container.Logger,
	)
	handler := router.Setup()

	srv := &http.Server{
		Addr:         cfg.ServerAddress,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		container.Logger.Info("Starting server",
			zap.String("address", cfg.ServerAddress),
			zap.String("environment", cfg.Environment),
			zap.String("storeBackend", cfg.StoreBackend),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			container.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		container.Logger.Error("Server shutdown error", zap.Error(err))
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Server stopped")
}

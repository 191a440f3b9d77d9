package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Dee-Wang-92/Physician-MB/internal/api"
	"github.com/Dee-Wang-92/Physician-MB/internal/config"
	"github.com/Dee-Wang-92/Physician-MB/internal/pipeline"
)

// RunServe starts the conversion HTTP service: a worker pool draining
// an upload queue behind the chi API, shut down cleanly on SIGINT or
// SIGTERM.
func RunServe(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return err
	}

	patterns, err := config.LoadPatterns(cfg.PatternsPath)
	if err != nil {
		log.Warn("pattern catalogue unusable, using built-in defaults", "error", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	orch, err := pipeline.NewOrchestrator(cfg, patterns, log)
	if err != nil {
		return err
	}
	orch.Start(ctx)

	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting schedmark service", "port", cfg.Port, "workers", cfg.WorkerCount)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

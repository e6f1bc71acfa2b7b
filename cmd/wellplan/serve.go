package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/planner"
	"github.com/amishk599/wellplan/internal/ratelimit"
	"github.com/amishk599/wellplan/internal/scheduler"
	"github.com/amishk599/wellplan/internal/web"
)

var serveOffline bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web form",
	Long:  "Serve the planner form over HTTP; blocks until SIGINT/SIGTERM.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveOffline, "offline", false, "answer with a fixed offline plan instead of calling the model")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger := setupLogger(debug)

	cfg, err := loadConfig(cfgPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("config loaded",
		"addr", cfg.Server.Addr,
		"provider", cfg.AI.Provider,
		"model", cfg.AI.Model,
		"archive", cfg.Archive.Enabled,
		"notification", cfg.Notification.Type,
	)

	planStore, closeStore, err := setupStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	httpClient := &http.Client{Timeout: 30 * time.Second}
	n := setupNotifier(cfg, httpClient, logger)
	provider := setupProviderOrUnavailable(cfg, serveOffline, logger)
	p := planner.New(provider, planStore, n, logger)

	limiter := ratelimit.NewLimiter(cfg.Server.PlanInterval)
	srv, err := web.NewServer(p, planStore, limiter, web.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		Archive:     cfg.Archive.Enabled,
	}, logger)
	if err != nil {
		logger.Error("failed to build web server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tasks := []scheduler.Task{scheduler.LimiterPrune(limiter, logger)}
	if cfg.Archive.Enabled {
		tasks = append(tasks, scheduler.ArchiveCleanup(planStore, cfg.Archive.Retention, logger))
	}
	sched := scheduler.NewScheduler(tasks, cfg.Archive.CleanupInterval, logger)
	go sched.Run(ctx)

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Server.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}

	logger.Info("goodbye")
	return nil
}

package main

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/amishk599/wellplan/internal/ai"
	"github.com/amishk599/wellplan/internal/config"
	"github.com/amishk599/wellplan/internal/model"
	"github.com/amishk599/wellplan/internal/notifier"
	"github.com/amishk599/wellplan/internal/ratelimit"
	"github.com/amishk599/wellplan/internal/retry"
	"github.com/amishk599/wellplan/internal/store"
)

var (
	cfgPath string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "wellplan",
	Short: "AI health & wellness planner",
	Long:  "wellplan computes BMI and a calorie target from your details and asks a hosted model for a personalised weekly diet and exercise plan.",
	// Default to `serve` so that `wellplan` with no args starts the web form.
	RunE:         runServe,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config file (default: WELLPLAN_CONFIG env var or ./config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// loadConfig loads .env, resolves the config path and parses it.
// Priority: explicit path arg > WELLPLAN_CONFIG env var > "./config.yaml".
// Only an explicitly named file has to exist.
func loadConfig(path string) (*config.Config, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, err
	}
	resolved, explicit := config.ResolvePath(path)
	if explicit {
		return config.Load(resolved)
	}
	return config.LoadOrDefault(resolved)
}

func setupLogger(dbg bool) *slog.Logger {
	return newLogger(os.Stdout, dbg)
}

func newLogger(w io.Writer, dbg bool) *slog.Logger {
	logLevel := slog.LevelInfo
	if dbg {
		logLevel = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: logLevel}))
}

func setupNotifier(cfg *config.Config, httpClient *http.Client, logger *slog.Logger) model.Notifier {
	switch cfg.Notification.Type {
	case "slack":
		logger.Info("using slack notifier")
		return notifier.NewSlackNotifier(cfg.Notification.WebhookURL, httpClient, logger)
	default:
		return notifier.NewLogNotifier(logger)
	}
}

// setupStore opens the archive when enabled. The returned close func is always safe to call.
func setupStore(cfg *config.Config, logger *slog.Logger) (model.PlanStore, func() error, error) {
	if !cfg.Archive.Enabled {
		return store.NewNopStore(), func() error { return nil }, nil
	}
	sqlStore, err := store.NewSQLiteStore(cfg.Archive.Path)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("plan archive opened", "path", cfg.Archive.Path)
	return sqlStore, sqlStore.Close, nil
}

// setupProvider builds the model client and wraps it with retry and rate
// limiting when configured.
func setupProvider(cfg *config.Config, offline bool, logger *slog.Logger) (ai.LLMProvider, error) {
	if offline {
		logger.Info("offline mode, no model will be called")
		return ai.NewNopProvider(), nil
	}

	httpClient := &http.Client{Timeout: cfg.AI.Timeout}
	provider, err := ai.NewProvider(cfg.AI.Settings(), httpClient)
	if err != nil {
		return nil, err
	}
	logger.Debug("model configured", "provider", cfg.AI.Provider, "model", cfg.AI.Model)

	if cfg.AI.MaxRetries > 0 {
		provider = retry.NewRetryProvider(provider, cfg.AI.MaxRetries, cfg.AI.RetryDelay, logger)
	}
	if cfg.AI.MinDelay > 0 {
		provider = ratelimit.NewRateLimitedProvider(provider, ratelimit.NewLimiter(cfg.AI.MinDelay), cfg.AI.Provider)
	}
	return provider, nil
}

// setupProviderOrUnavailable defers an initialisation failure to the first
// generation attempt, where it is reported inline.
func setupProviderOrUnavailable(cfg *config.Config, offline bool, logger *slog.Logger) ai.LLMProvider {
	provider, err := setupProvider(cfg, offline, logger)
	if err != nil {
		logger.Warn("text generation unavailable", "error", err)
		return ai.NewUnavailableProvider(err)
	}
	return provider
}

// generationTimeout bounds one plan attempt including retries.
func generationTimeout(cfg *config.Config) time.Duration {
	if cfg.AI.MaxRetries == 0 {
		return cfg.AI.Timeout
	}
	return time.Duration(cfg.AI.MaxRetries+1)*cfg.AI.Timeout + cfg.AI.RetryDelay<<(cfg.AI.MaxRetries+1)
}

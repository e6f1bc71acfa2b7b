package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/amishk599/wellplan/internal/ai"
)

// EnvPath names the environment variable that points at the config file.
const EnvPath = "WELLPLAN_CONFIG"

// DefaultPath is tried when neither --config nor WELLPLAN_CONFIG is set.
const DefaultPath = "config.yaml"

// Config is the root configuration for wellplan.
type Config struct {
	Server       ServerConfig
	AI           AIConfig
	Archive      ArchiveConfig
	Notification NotificationConfig
}

// ServerConfig controls the HTTP front end.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration // must cover a full model call
	CORSOrigins  []string
	PlanInterval time.Duration // minimum gap between plan requests from one client
}

// AIConfig selects the hosted model and how it is called.
type AIConfig struct {
	Provider     string // groq, openai or gemini
	BaseURL      string // defaults per provider
	Model        string // defaults per provider
	APIKey       string // expanded from env; falls back to the provider's key variable
	Timeout      time.Duration
	MaxRetries   int           // 0 means a single attempt
	RetryDelay   time.Duration // base delay for exponential backoff
	MinDelay     time.Duration // minimum gap between upstream calls
	Temperature  float64
	MaxTokens    int
	SystemPrompt string // empty sends the rendered prompt alone
}

// Settings converts the config into provider settings.
func (a AIConfig) Settings() ai.Settings {
	return ai.Settings{
		Provider:     a.Provider,
		BaseURL:      a.BaseURL,
		Model:        a.Model,
		APIKey:       a.APIKey,
		Temperature:  a.Temperature,
		MaxTokens:    a.MaxTokens,
		SystemPrompt: a.SystemPrompt,
	}
}

// ArchiveConfig controls the optional SQLite plan archive.
type ArchiveConfig struct {
	Enabled         bool
	Path            string
	Retention       time.Duration
	CleanupInterval time.Duration
}

// NotificationConfig controls which notifier is used and its settings.
type NotificationConfig struct {
	Type       string `yaml:"type"`        // "log" or "slack"
	WebhookURL string `yaml:"webhook_url"` // required if type is "slack"
}

// rawConfig is used for YAML unmarshaling (snake_case fields and duration as string).
type rawConfig struct {
	Server       rawServerConfig    `yaml:"server"`
	AI           rawAIConfig        `yaml:"ai"`
	Archive      rawArchiveConfig   `yaml:"archive"`
	Notification NotificationConfig `yaml:"notification"`
}

type rawServerConfig struct {
	Addr         string   `yaml:"addr"`
	ReadTimeout  string   `yaml:"read_timeout"`
	WriteTimeout string   `yaml:"write_timeout"`
	CORSOrigins  []string `yaml:"cors_origins"`
	PlanInterval string   `yaml:"plan_interval"`
}

type rawAIConfig struct {
	Provider     string   `yaml:"provider"`
	BaseURL      string   `yaml:"base_url"`
	Model        string   `yaml:"model"`
	APIKey       string   `yaml:"api_key"`
	Timeout      string   `yaml:"timeout"`
	MaxRetries   int      `yaml:"max_retries"`
	RetryDelay   string   `yaml:"retry_delay"`
	MinDelay     string   `yaml:"min_delay"`
	Temperature  *float64 `yaml:"temperature"`
	MaxTokens    int      `yaml:"max_tokens"`
	SystemPrompt string   `yaml:"system_prompt"`
}

type rawArchiveConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Path            string `yaml:"path"`
	Retention       string `yaml:"retention"`
	CleanupInterval string `yaml:"cleanup_interval"`
}

// ResolvePath picks the config file: the flag value, then WELLPLAN_CONFIG,
// then DefaultPath. explicit reports whether the user named a file.
func ResolvePath(flag string) (path string, explicit bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(EnvPath); env != "" {
		return env, true
	}
	return DefaultPath, false
}

// LoadDotEnv loads KEY=value pairs from the given files into the process
// environment. Missing files are skipped and existing variables win.
func LoadDotEnv(paths ...string) error {
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// Load reads and parses the YAML config file at path, validates it, and returns Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault behaves like Load but returns the defaults when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Parse(nil)
	}
	return cfg, err
}

// Parse builds a Config from YAML. Empty input yields the defaults.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	var raw rawConfig
	if err := yaml.Unmarshal([]byte(expanded), &raw); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	var errs []error
	duration := func(field, value string, def time.Duration) time.Duration {
		if value == "" {
			return def
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			errs = append(errs, fmt.Errorf("parse %s %q: %w", field, value, err))
		}
		return d
	}

	provider := strings.ToLower(raw.AI.Provider)
	if provider == "" {
		provider = ai.ProviderGroq
	}
	apiKey := raw.AI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv(ai.KeyEnv(provider))
	}
	temperature := 0.7
	if raw.AI.Temperature != nil {
		temperature = *raw.AI.Temperature
	}
	maxTokens := raw.AI.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	addr := raw.Server.Addr
	if addr == "" {
		addr = ":8080"
	}
	origins := raw.Server.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	dbPath := raw.Archive.Path
	if dbPath == "" {
		dbPath = "wellplan.db"
	}
	notifType := raw.Notification.Type
	if notifType == "" {
		notifType = "log"
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:         addr,
			ReadTimeout:  duration("server.read_timeout", raw.Server.ReadTimeout, 10*time.Second),
			WriteTimeout: duration("server.write_timeout", raw.Server.WriteTimeout, 90*time.Second),
			CORSOrigins:  origins,
			PlanInterval: duration("server.plan_interval", raw.Server.PlanInterval, 0),
		},
		AI: AIConfig{
			Provider:     provider,
			BaseURL:      raw.AI.BaseURL,
			Model:        raw.AI.Model,
			APIKey:       apiKey,
			Timeout:      duration("ai.timeout", raw.AI.Timeout, 60*time.Second),
			MaxRetries:   raw.AI.MaxRetries,
			RetryDelay:   duration("ai.retry_delay", raw.AI.RetryDelay, 2*time.Second),
			MinDelay:     duration("ai.min_delay", raw.AI.MinDelay, 0),
			Temperature:  temperature,
			MaxTokens:    maxTokens,
			SystemPrompt: strings.TrimSpace(raw.AI.SystemPrompt),
		},
		Archive: ArchiveConfig{
			Enabled:         raw.Archive.Enabled,
			Path:            dbPath,
			Retention:       duration("archive.retention", raw.Archive.Retention, 720*time.Hour),
			CleanupInterval: duration("archive.cleanup_interval", raw.Archive.CleanupInterval, time.Hour),
		},
		Notification: NotificationConfig{Type: notifType, WebhookURL: raw.Notification.WebhookURL},
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = ai.DefaultBaseURL(provider)
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = ai.DefaultModel(provider)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate leaves the API key alone so commands that never call the model
// still work without one.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case ai.ProviderGroq, ai.ProviderOpenAI, ai.ProviderGemini:
	default:
		return fmt.Errorf("ai.provider must be one of groq, openai, gemini, got %q", cfg.AI.Provider)
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", cfg.AI.Timeout)
	}
	if cfg.AI.MaxRetries < 0 || cfg.AI.MaxRetries > 5 {
		return fmt.Errorf("ai.max_retries must be between 0 and 5, got %d", cfg.AI.MaxRetries)
	}
	if cfg.AI.MinDelay < 0 {
		return fmt.Errorf("ai.min_delay must not be negative, got %v", cfg.AI.MinDelay)
	}
	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("ai.temperature must be between 0 and 2, got %v", cfg.AI.Temperature)
	}
	if cfg.AI.MaxTokens < 0 {
		return fmt.Errorf("ai.max_tokens must not be negative, got %d", cfg.AI.MaxTokens)
	}

	if cfg.Server.PlanInterval < 0 {
		return fmt.Errorf("server.plan_interval must not be negative, got %v", cfg.Server.PlanInterval)
	}
	if cfg.Server.WriteTimeout < cfg.AI.Timeout {
		return fmt.Errorf("server.write_timeout (%v) must be at least ai.timeout (%v)", cfg.Server.WriteTimeout, cfg.AI.Timeout)
	}

	if cfg.Archive.Enabled && cfg.Archive.Retention <= 0 {
		return fmt.Errorf("archive.retention must be positive, got %v", cfg.Archive.Retention)
	}
	if cfg.Archive.CleanupInterval < time.Minute {
		return fmt.Errorf("archive.cleanup_interval must be at least 1m, got %v", cfg.Archive.CleanupInterval)
	}

	switch cfg.Notification.Type {
	case "log":
	case "slack":
		if cfg.Notification.WebhookURL == "" {
			return fmt.Errorf("notification.webhook_url is required when type is \"slack\"")
		}
		if !strings.HasPrefix(cfg.Notification.WebhookURL, "https://hooks.slack.com/") {
			return fmt.Errorf("notification.webhook_url must start with https://hooks.slack.com/")
		}
	default:
		return fmt.Errorf("notification.type must be \"log\" or \"slack\", got %q", cfg.Notification.Type)
	}

	return nil
}

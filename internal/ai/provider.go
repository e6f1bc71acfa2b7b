package ai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amishk599/wellplan/internal/model"
)

// ErrNotConfigured is returned when the provider cannot be initialised,
// typically because no API key is set.
var ErrNotConfigured = errors.New("text generation is not configured")

// LLMProvider sends a prompt to an LLM and returns the raw text response.
type LLMProvider interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Provider names accepted in ai.provider.
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Settings selects and configures a hosted model.
type Settings struct {
	Provider     string
	BaseURL      string
	Model        string
	APIKey       string
	Temperature  float64
	MaxTokens    int
	SystemPrompt string // optional instruction sent before the prompt
}

// Defaults per provider: base URL, model and the env var that usually holds the key.
var providerDefaults = map[string]struct {
	baseURL, model, keyEnv string
}{
	ProviderGroq:   {"https://api.groq.com/openai/v1", "llama3-8b-8192", "GROQ_API_KEY"},
	ProviderOpenAI: {"https://api.openai.com/v1", "gpt-4o-mini", "OPENAI_API_KEY"},
	ProviderGemini: {"https://generativelanguage.googleapis.com/v1beta", "gemini-2.5-flash", "GEMINI_API_KEY"},
}

// DefaultBaseURL returns the endpoint used when ai.base_url is empty.
func DefaultBaseURL(provider string) string { return providerDefaults[provider].baseURL }

// DefaultModel returns the model used when ai.model is empty.
func DefaultModel(provider string) string { return providerDefaults[provider].model }

// KeyEnv returns the environment variable conventionally holding the API key.
func KeyEnv(provider string) string { return providerDefaults[provider].keyEnv }

// NewProvider builds the client for s.Provider. It is called once at startup
// and the result is passed explicitly to whoever needs it.
func NewProvider(s Settings, httpClient *http.Client) (LLMProvider, error) {
	if _, ok := providerDefaults[s.Provider]; !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, s.Provider)
	}
	if s.APIKey == "" {
		return nil, fmt.Errorf("%w: failed to initialize AI model, check %s in your .env file or ai.api_key in config",
			ErrNotConfigured, KeyEnv(s.Provider))
	}
	if s.BaseURL == "" {
		s.BaseURL = DefaultBaseURL(s.Provider)
	}
	if s.Model == "" {
		s.Model = DefaultModel(s.Provider)
	}

	switch s.Provider {
	case ProviderGemini:
		return NewGeminiProvider(s.BaseURL, s.APIKey, s.Model, s.Temperature, s.MaxTokens, httpClient).WithSystemPrompt(s.SystemPrompt), nil
	default:
		return NewOpenAIProvider(s.BaseURL, s.APIKey, s.Model, s.Temperature, s.MaxTokens, httpClient).WithSystemPrompt(s.SystemPrompt), nil
	}
}

// maxErrorBody caps how much of an upstream error body ends up in messages.
const maxErrorBody = 512

// httpError converts a non-200 response into a *model.HTTPError.
func httpError(resp *http.Response, body []byte) error {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "…"
	}
	return &model.HTTPError{
		StatusCode: resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		Body:       msg,
	}
}

// parseRetryAfter accepts delta-seconds or an HTTP date. Unparseable or
// past values yield zero.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := time.Until(at); d > 0 {
			return d
		}
	}
	return 0
}

// readBody reads the full response body.
func readBody(resp *http.Response) ([]byte, error) {
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read llm response: %w", err)
	}
	return b, nil
}

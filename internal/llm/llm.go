// Package llm wraps the external text-generation collaborator behind a
// single best-effort completion call. The collaborator is unreliable and
// latency-bearing; callers own the failure handling.
package llm

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultOllamaModel = "ministral-3:latest"
	defaultOpenAIModel = "gpt-4o-mini"
)

const defaultLLMHTTPTimeout = 3 * time.Minute

// Generator produces one best-effort completion per prompt. No retry or
// rate-limit behavior is promised; a failed call simply returns an error.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Config describes how to build a generator.
type Config struct {
	Provider   string // "ollama" (default) or "openai"
	Model      string
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

// NewFromEnv builds a generator from flags and environment variables.
// An explicit provider wins; otherwise OPENAI_API_KEY selects OpenAI and
// anything else falls back to a local Ollama endpoint.
func NewFromEnv(cfg Config) (Generator, error) {
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if provider == "" && apiKey != "" {
		provider = "openai"
	}

	if provider == "openai" {
		model := cfg.Model
		if model == "" {
			model = defaultOpenAIModel
		}
		return newOpenAIGenerator(apiKey, model, cfg.Endpoint)
	}

	host := cfg.Endpoint
	if host == "" {
		if env := os.Getenv("OLLAMA_HOST"); env != "" {
			host = strings.TrimRight(env, "/")
		} else {
			host = "http://localhost:11434"
		}
	}
	model := cfg.Model
	if model == "" {
		if env := os.Getenv("OLLAMA_MODEL"); env != "" {
			model = env
		} else {
			model = defaultOllamaModel
		}
	}
	return &ollamaGenerator{
		host:   host,
		model:  model,
		client: pickHTTPClient(cfg.HTTPClient),
	}, nil
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Local generations often run past 60s; cancellation rides on the caller's context.
	return &http.Client{Timeout: defaultLLMHTTPTimeout}
}

package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPickHTTPClientHonorsCustomClient(t *testing.T) {
	custom := &http.Client{Timeout: 42 * time.Second}
	if got := pickHTTPClient(custom); got != custom {
		t.Fatalf("expected custom client to be returned")
	}
}

func TestPickHTTPClientUsesLongerTimeout(t *testing.T) {
	client := pickHTTPClient(nil)
	if client.Timeout != defaultLLMHTTPTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultLLMHTTPTimeout, client.Timeout)
	}
}

func TestNewFromEnvDefaultsToOllama(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OLLAMA_HOST", "")
	t.Setenv("OLLAMA_MODEL", "")

	gen, err := NewFromEnv(Config{})
	if err != nil {
		t.Fatalf("NewFromEnv() error = %v", err)
	}
	ollama, ok := gen.(*ollamaGenerator)
	if !ok {
		t.Fatalf("expected ollama generator, got %T", gen)
	}
	if ollama.host != "http://localhost:11434" {
		t.Fatalf("unexpected host %q", ollama.host)
	}
	if ollama.model != defaultOllamaModel {
		t.Fatalf("unexpected model %q", ollama.model)
	}
}

func TestNewFromEnvRequiresKeyForOpenAI(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := NewFromEnv(Config{Provider: "openai"}); err == nil {
		t.Fatal("expected error when openai selected without a key")
	}
}

func TestOllamaGenerateParsesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if req.Prompt != "say hi" {
			t.Errorf("unexpected prompt %q", req.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "  hi there  ", "done": true})
	}))
	defer server.Close()

	gen := &ollamaGenerator{host: server.URL, model: "test", client: server.Client()}
	got, err := gen.Generate(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "hi there" {
		t.Fatalf("Generate() = %q, want %q", got, "hi there")
	}
}

func TestOllamaGenerateSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer server.Close()

	gen := &ollamaGenerator{host: server.URL, model: "test", client: server.Client()}
	if _, err := gen.Generate(context.Background(), "say hi"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestOllamaGenerateRejectsEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"response": "", "done": true})
	}))
	defer server.Close()

	gen := &ollamaGenerator{host: server.URL, model: "test", client: server.Client()}
	if _, err := gen.Generate(context.Background(), "say hi"); err == nil {
		t.Fatal("expected error for empty response body")
	}
}

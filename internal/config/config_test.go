package config

import (
	"testing"
	"time"
)

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when OPENAI_API_KEY is empty")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "")
	t.Setenv("RAG_SERVER_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("OPENAI_TIMEOUT_MS", "")
	t.Setenv("RAG_TOP_K", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.Port)
	}
	if cfg.RetrievalEnabled() {
		t.Fatalf("expected retrieval to be disabled without RAG_SERVER_URL")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.OpenAITimeout != time.Minute {
		t.Fatalf("expected 60s completion timeout, got %v", cfg.OpenAITimeout)
	}
	if cfg.RAGTopK != 5 {
		t.Fatalf("expected top k 5, got %d", cfg.RAGTopK)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "8081")
	t.Setenv("RAG_SERVER_URL", "http://rag:8080/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://127.0.0.1:5173,")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != 8081 {
		t.Fatalf("expected port 8081, got %d", cfg.Port)
	}
	if cfg.RAGServerURL != "http://rag:8080" {
		t.Fatalf("expected trailing slash trimmed, got %q", cfg.RAGServerURL)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://127.0.0.1:5173" {
		t.Fatalf("unexpected CORS origins: %v", cfg.CORSOrigins)
	}
	if cfg.OpenAITemperature != float32(0.2) {
		t.Fatalf("unexpected temperature: %v", cfg.OpenAITemperature)
	}
	if !cfg.IsProduction() {
		t.Fatalf("expected production mode")
	}
}

func TestLoadRejectsBadPort(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for out-of-range port")
	}
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"studybuddy/internal/catalog"
	"studybuddy/internal/config"
	"studybuddy/internal/models"
)

type fakeCompleter struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", fmt.Errorf("no scripted reply")
	}
	reply := f.replies[0]
	if len(f.replies) > 1 {
		f.replies = f.replies[1:]
	}
	return reply, nil
}

func (f *fakeCompleter) calls() []CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CompletionRequest(nil), f.requests...)
}

type fakeRetriever struct {
	results []models.RAGMaterialSearchResult
	err     error
	queries []string
	mu      sync.Mutex
}

func (f *fakeRetriever) SearchMaterials(_ context.Context, classID, query string, limit int) ([]models.RAGMaterialSearchResult, error) {
	f.mu.Lock()
	f.queries = append(f.queries, query)
	f.mu.Unlock()
	return f.results, f.err
}

// tickClock returns a clock that advances one second per call
func tickClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

func seqIDs(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

func newTestAssistant(c Completer, r Retriever) *AssistantService {
	return NewAssistantService(&config.Config{RAGTopK: 3}, c, r, catalog.Default())
}

func strPtr(s string) *string { return &s }

func intPtr(n int) *int { return &n }

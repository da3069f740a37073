package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"studybuddy/internal/catalog"
	"studybuddy/internal/config"
	"studybuddy/internal/models"
	"studybuddy/internal/prompts"
	"studybuddy/internal/util"
)

// Retriever looks up class material excerpts for a query
type Retriever interface {
	SearchMaterials(ctx context.Context, classID, query string, limit int) ([]models.RAGMaterialSearchResult, error)
}

// RunRequest describes one assistant call
type RunRequest struct {
	Mode       prompts.Mode
	ClassID    string
	Message    string
	Focus      string
	Count      int
	Difficulty string
	History    []models.ChatTurn
}

// AssistantService selects the template for a mode, fills it with the class
// name and retrieved excerpts, and sends it to the completion gateway.
type AssistantService struct {
	completer Completer
	retriever Retriever
	catalog   *catalog.Catalog
	topK      int
	logger    *util.Logger
}

// NewAssistantService creates a new assistant service. retriever may be nil,
// in which case prompts are rendered without class material.
func NewAssistantService(cfg *config.Config, completer Completer, retriever Retriever, classes *catalog.Catalog) *AssistantService {
	topK := cfg.RAGTopK
	if topK <= 0 {
		topK = 5
	}
	return &AssistantService{
		completer: completer,
		retriever: retriever,
		catalog:   classes,
		topK:      topK,
		logger:    util.NewLogger("AssistantService"),
	}
}

// Run renders the prompt for req.Mode and returns the raw completion
func (as *AssistantService) Run(ctx context.Context, req RunRequest) (string, error) {
	as.logger.Start("Run " + string(req.Mode))
	defer as.logger.End("Run " + string(req.Mode))

	systemPrompt, err := as.BuildPrompt(ctx, req)
	if err != nil {
		return "", err
	}
	return as.Complete(ctx, systemPrompt, req)
}

// Complete sends an already rendered system prompt with req's history and message
func (as *AssistantService) Complete(ctx context.Context, systemPrompt string, req RunRequest) (string, error) {
	as.logger.Section("Calling completion gateway")
	content, err := as.completer.Complete(ctx, CompletionRequest{
		SystemPrompt: systemPrompt,
		History:      req.History,
		Message:      req.Message,
	})
	if err != nil {
		as.logger.Error("Completion failed", err, "mode", req.Mode, "class_id", req.ClassID)
		return "", err
	}
	return content, nil
}

// BuildPrompt renders the system prompt for req without calling the model
func (as *AssistantService) BuildPrompt(ctx context.Context, req RunRequest) (string, error) {
	excerpts := as.retrieve(ctx, req)

	prompt, err := prompts.Render(req.Mode, prompts.Input{
		ClassName:  as.catalog.DisplayName(req.ClassID),
		Excerpts:   excerpts,
		Focus:      req.Focus,
		Count:      req.Count,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render %s prompt: %w", req.Mode, err)
	}
	return prompt, nil
}

// retrieve fetches excerpts; a failed lookup degrades to no excerpts
func (as *AssistantService) retrieve(ctx context.Context, req RunRequest) []string {
	if as.retriever == nil {
		return nil
	}

	query := strings.TrimSpace(req.Focus)
	if query == "" {
		query = req.Message
	}

	results, err := as.retriever.SearchMaterials(ctx, req.ClassID, query, as.topK)
	if err != nil {
		as.logger.Warn("Material search failed, continuing without excerpts", err, "class_id", req.ClassID)
		return nil
	}

	excerpts := lo.FilterMap(results, func(r models.RAGMaterialSearchResult, _ int) (string, bool) {
		text := strings.TrimSpace(r.Content)
		return text, text != ""
	})
	as.logger.Debug("Retrieved excerpts", "class_id", req.ClassID, "count", len(excerpts))
	return excerpts
}

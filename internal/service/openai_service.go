package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"studybuddy/internal/apperr"
	"studybuddy/internal/config"
	"studybuddy/internal/models"
	"studybuddy/internal/util"
)

// CompletionRequest is one call to the language model: a rendered system
// prompt, prior conversation turns, and the new user message.
type CompletionRequest struct {
	SystemPrompt string
	History      []models.ChatTurn
	Message      string
}

// Completer returns the raw text completion for a request. The text is
// untrusted and must be parsed by the caller.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// OpenAIService handles all interactions with OpenAI API
type OpenAIService struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	timeout     time.Duration
	logger      *util.Logger
}

// NewOpenAIService creates a new OpenAI service instance
func NewOpenAIService(cfg *config.Config) *OpenAIService {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}

	return &OpenAIService{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.OpenAIModel,
		temperature: cfg.OpenAITemperature,
		maxTokens:   cfg.OpenAIMaxTokens,
		timeout:     cfg.OpenAITimeout,
		logger:      util.NewLogger("OpenAIService"),
	}
}

// Complete sends the prompt and conversation to the chat completion endpoint
func (os *OpenAIService) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	os.logger.Start("Completion")
	defer os.logger.End("Completion")

	if os.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, os.timeout)
		defer cancel()
	}

	content, err := os.callOpenAI(ctx, buildMessages(req))
	if err != nil {
		os.logger.Error("Failed to generate completion", err, "model", os.model)
		return "", &apperr.UpstreamError{Op: "chat completion", Err: err}
	}

	os.logger.Success("Completion generated", "chars", len(content))
	return content, nil
}

func buildMessages(req CompletionRequest) []openai.ChatCompletionMessage {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: req.SystemPrompt,
	})

	for _, turn := range req.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == util.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Message,
	})
	return messages
}

// callOpenAI makes a call to OpenAI API with given messages
func (os *OpenAIService) callOpenAI(ctx context.Context, messages []openai.ChatCompletionMessage) (string, error) {
	resp, err := os.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       os.model,
		Messages:    messages,
		Temperature: os.temperature,
		MaxTokens:   os.maxTokens,
	})

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", fmt.Errorf("openai api call timed out: %w", err)
		}
		return "", fmt.Errorf("openai api call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("empty response from openai")
	}

	return content, nil
}

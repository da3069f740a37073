package util

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"

	"studybuddy/internal/apperr"
)

// QuestionPayload is one quiz question as returned by the model
type QuestionPayload struct {
	Question    string   `json:"question" jsonschema:"description=Question text"`
	Options     []string `json:"options" jsonschema:"description=Answer choices"`
	Answer      string   `json:"answer" jsonschema:"description=Correct option text"`
	Explanation string   `json:"explanation" jsonschema:"description=Why the answer is correct"`
}

// FlashcardPayload is one flashcard as returned by the model
type FlashcardPayload struct {
	Front string `json:"front" jsonschema:"description=Term or question"`
	Back  string `json:"back" jsonschema:"description=Definition or answer"`
}

var (
	quizQuestionsValidator = mustArraySchema[QuestionPayload]()
	flashcardsValidator    = mustArraySchema[FlashcardPayload]()
)

// mustArraySchema compiles a validator for a JSON array of T. Every field
// without omitempty is required; unknown fields are tolerated.
func mustArraySchema[T any]() *gojsonschema.Schema {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
		Anonymous:                 true,
	}
	var v T
	item := reflector.Reflect(v)
	item.Version = ""

	doc := map[string]interface{}{
		"type":  "array",
		"items": item,
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(doc))
	if err != nil {
		panic(fmt.Sprintf("invalid built-in schema: %v", err))
	}
	return schema
}

// ParseQuizQuestions validates a completion against the quiz question schema
// and decodes it. Any mismatch is a GenerationParseError.
func ParseQuizQuestions(content string) ([]QuestionPayload, error) {
	var questions []QuestionPayload
	if err := decodeStrict(quizQuestionsValidator, content, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// ParseFlashcards validates a completion against the flashcard schema and decodes it.
func ParseFlashcards(content string) ([]FlashcardPayload, error) {
	var cards []FlashcardPayload
	if err := decodeStrict(flashcardsValidator, content, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func decodeStrict(schema *gojsonschema.Schema, content string, out interface{}) error {
	payload := StripCodeFence(content)
	if payload == "" {
		return &apperr.GenerationParseError{Reason: "empty completion"}
	}

	result, err := schema.Validate(gojsonschema.NewStringLoader(payload))
	if err != nil {
		return &apperr.GenerationParseError{Reason: "completion is not valid JSON", Err: err}
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return &apperr.GenerationParseError{Reason: "schema mismatch: " + strings.Join(msgs, "; ")}
	}

	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return &apperr.GenerationParseError{Reason: "decode failed", Err: err}
	}
	return nil
}

// StripCodeFence removes a surrounding markdown code block (```json ... ```)
// that models often wrap JSON in. Content without a fence is only trimmed.
func StripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}

	start := 3
	if idx := strings.Index(content[start:], "\n"); idx != -1 {
		start += idx + 1
	} else {
		start = len(content)
	}
	body := content[start:]
	if end := strings.LastIndex(body, "```"); end != -1 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}

// Truncate shortens s to at most n runes, appending suffix when it was cut.
func Truncate(s string, n int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + suffix
}

package prompts

import (
	"fmt"
	"strconv"
	"strings"

	"studybuddy/internal/apperr"
)

// Mode selects which template a request is rendered with
type Mode string

const (
	ModeChat      Mode = "chat"
	ModeFlashcard Mode = "flashcard"
	ModeQuiz      Mode = "quiz"
)

// ParseMode converts a raw mode string into a Mode
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := registry[m]; !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnsupportedMode, s)
	}
	return m, nil
}

// Input holds the values substituted into a template
type Input struct {
	ClassName  string
	Excerpts   []string
	Focus      string
	Count      int
	Difficulty string
}

type templateSpec struct {
	body          string
	requiresCount bool
}

const (
	noMaterials = "(No class materials were found for this request. Say so if you cannot answer from general course knowledge.)"
	noFocus     = "No specific focus; cover the material broadly."
	excerptSep  = "\n\n---\n\n"
)

// ===== Templates =====

const chatTemplate = `
You are Study Buddy, an AI tutor for the subject: {{class_name}}.

The following are relevant excerpts from the student's class materials:
{{retrieved_chunks}}

The student would like to focus on:
{{user_focus_prompt}}

Rules:
- Answer based on the provided excerpts
- Be concise and accurate
- If the excerpts don't contain enough info, say so clearly
- Use examples to clarify concepts when helpful
- Ask clarifying questions if the request is ambiguous
- Do not invent information beyond what the excerpts contain
`

const flashcardTemplate = `
You are Study Buddy, a flashcard generator for the subject: {{class_name}}.

The following are relevant excerpts from the student's class materials:
{{retrieved_chunks}}

The user has requested flashcards with the following focus:
{{user_focus_prompt}}

Rules:
- Generate flashcards based ONLY on the provided excerpts
- Return ONLY valid JSON in this exact format, no other text:

[
  { "front": "question or term", "back": "answer or definition" },
  { "front": "question or term", "back": "answer or definition" }
]

- Generate exactly {{count}} flashcards
- If a focus area is provided, prioritize that topic
`

const quizTemplate = `
You are Study Buddy, a quiz generator for the subject: {{class_name}}.

The following are relevant excerpts from the student's class materials:
{{retrieved_chunks}}

The user has requested a quiz with the following focus:
{{user_focus_prompt}}

Rules:
- Generate questions based ONLY on the provided excerpts
- Return ONLY valid JSON in this exact format, no other text:

[
  {
    "question": "question text",
    "options": ["A", "B", "C", "D"],
    "answer": "the exact text of the correct option",
    "explanation": "brief explanation"
  }
]

- Generate exactly {{count}} questions
- The "answer" value must be copied exactly from one of the "options"
- Target difficulty: {{difficulty}}
- If a focus area is provided, prioritize that topic
`

var registry = map[Mode]templateSpec{
	ModeChat:      {body: chatTemplate},
	ModeFlashcard: {body: flashcardTemplate, requiresCount: true},
	ModeQuiz:      {body: quizTemplate, requiresCount: true},
}

// Render produces the system prompt for a mode
func Render(mode Mode, in Input) (string, error) {
	spec, ok := registry[mode]
	if !ok {
		return "", fmt.Errorf("%w: %q", apperr.ErrUnsupportedMode, string(mode))
	}
	if spec.requiresCount && in.Count <= 0 {
		return "", fmt.Errorf("%s prompt requires a positive item count, got %d", mode, in.Count)
	}

	excerpts := noMaterials
	if len(in.Excerpts) > 0 {
		excerpts = strings.Join(in.Excerpts, excerptSep)
	}

	focus := strings.TrimSpace(in.Focus)
	if focus == "" {
		focus = noFocus
	}

	difficulty := strings.TrimSpace(in.Difficulty)
	if difficulty == "" {
		difficulty = "mixed"
	}

	r := strings.NewReplacer(
		"{{class_name}}", in.ClassName,
		"{{retrieved_chunks}}", excerpts,
		"{{user_focus_prompt}}", focus,
		"{{count}}", strconv.Itoa(in.Count),
		"{{difficulty}}", difficulty,
	)
	return strings.TrimSpace(r.Replace(spec.body)), nil
}

// QuizInstruction builds the user turn sent alongside the quiz template
func QuizInstruction(count int, focus string) string {
	msg := fmt.Sprintf("Generate %d quiz questions", count)
	if f := strings.TrimSpace(focus); f != "" {
		msg += " focusing on: " + f
	}
	return msg
}

// FlashcardInstruction builds the user turn sent alongside the flashcard template
func FlashcardInstruction(count int, focus string) string {
	msg := fmt.Sprintf("Generate %d flashcards", count)
	if f := strings.TrimSpace(focus); f != "" {
		msg += " focusing on: " + f
	}
	return msg
}

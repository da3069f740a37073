package util

import (
	"errors"
	"testing"

	"studybuddy/internal/apperr"
)

func TestParseQuizQuestions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
		wantErr bool
	}{
		{
			name:    "two questions",
			content: `[{"question":"Q1","options":["A","B"],"answer":"A","explanation":"e1"},{"question":"Q2","options":["C","D"],"answer":"D","explanation":"e2"}]`,
			want:    2,
		},
		{
			name:    "fenced payload",
			content: "```json\n[{\"question\":\"Q1\",\"options\":[\"A\"],\"answer\":\"A\",\"explanation\":\"e\"}]\n```",
			want:    1,
		},
		{
			name:    "extra fields are tolerated",
			content: `[{"question":"Q1","options":["A"],"answer":"A","explanation":"e","topic":"lists"}]`,
			want:    1,
		},
		{
			name:    "empty array",
			content: `[]`,
			want:    0,
		},
		{
			name:    "malformed json",
			content: `[{"question": "Q1",`,
			wantErr: true,
		},
		{
			name:    "missing explanation",
			content: `[{"question":"Q1","options":["A"],"answer":"A"}]`,
			wantErr: true,
		},
		{
			name:    "options not strings",
			content: `[{"question":"Q1","options":[1,2],"answer":"A","explanation":"e"}]`,
			wantErr: true,
		},
		{
			name:    "object instead of array",
			content: `{"question":"Q1","options":["A"],"answer":"A","explanation":"e"}`,
			wantErr: true,
		},
		{
			name:    "prose",
			content: "Sure! Here are your questions.",
			wantErr: true,
		},
		{
			name:    "empty",
			content: "   ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuizQuestions(tt.content)
			if tt.wantErr {
				var perr *apperr.GenerationParseError
				if !errors.As(err, &perr) {
					t.Fatalf("expected GenerationParseError, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("expected %d questions, got %d", tt.want, len(got))
			}
		})
	}
}

func TestParseQuizQuestionsKeepsOrderAndFields(t *testing.T) {
	got, err := ParseQuizQuestions(`[{"question":"Q1","options":["A","B"],"answer":"A","explanation":"e1"},{"question":"Q2","options":["C","D"],"answer":"D","explanation":"e2"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Question != "Q1" || got[1].Answer != "D" || got[1].Options[0] != "C" {
		t.Fatalf("unexpected payload: %+v", got)
	}
}

func TestParseFlashcards(t *testing.T) {
	cards, err := ParseFlashcards(`[{"front":"term","back":"definition"}]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cards) != 1 || cards[0].Front != "term" || cards[0].Back != "definition" {
		t.Fatalf("unexpected cards: %+v", cards)
	}

	if _, err := ParseFlashcards(`[{"front":"term"}]`); err == nil {
		t.Fatalf("expected error for missing back")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := map[string]string{
		"[1]":               "[1]",
		"  [1]  ":           "[1]",
		"```json\n[1]\n```": "[1]",
		"```\n[1]\n```":     "[1]",
		"```json\n[1]":      "[1]",
		"```":               "",
	}
	for in, want := range cases {
		if got := StripCodeFence(in); got != want {
			t.Fatalf("StripCodeFence(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 50, "..."); got != "short" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("abcdef", 3, "..."); got != "abc..." {
		t.Fatalf("unexpected: %q", got)
	}
	if got := Truncate("héllo", 2, ""); got != "hé" {
		t.Fatalf("expected rune-safe truncation, got %q", got)
	}
}

// Package quizbank serves sample questions from a small built-in bank.
package quizbank

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"

	"studybuddy/internal/models"
)

// DefaultTopic is used when a request names no topic
const DefaultTopic = "General"

// DefaultNumQuestions is the sample size when a request gives none
const DefaultNumQuestions = 5

// Question is a bank entry. CorrectIndex and Explanation stay server side.
type Question struct {
	ID           string
	Prompt       string
	Topic        string
	Difficulty   string
	Options      []string
	CorrectIndex int
	Explanation  string
}

var builtin = []Question{
	{
		ID:           "q1",
		Prompt:       "What does (first '(10 20 30)) return?",
		Topic:        "Lists",
		Difficulty:   "Easy",
		Options:      []string{"'(10 20 30)", "10", "20", "30"},
		CorrectIndex: 1,
		Explanation:  "first returns the first element.",
	},
	{
		ID:           "q2",
		Prompt:       "What does (rest '(10 20 30)) return?",
		Topic:        "Lists",
		Difficulty:   "Easy",
		Options:      []string{"'(10 20 30)", "'(20 30)", "20", "30"},
		CorrectIndex: 1,
		Explanation:  "rest returns the list without first element.",
	},
	{
		ID:           "q3",
		Prompt:       "foldr processes list from which direction?",
		Topic:        "Higher-order functions",
		Difficulty:   "Medium",
		Options:      []string{"Left", "Right", "Random", "Depends"},
		CorrectIndex: 1,
		Explanation:  "foldr combines from right to left.",
	},
}

// Bank draws random samples from a fixed question list
type Bank struct {
	questions []Question
	mu        sync.Mutex
	rng       *rand.Rand
}

// New creates a bank over questions using the given random source
func New(questions []Question, src rand.Source) *Bank {
	return &Bank{
		questions: append([]Question(nil), questions...),
		rng:       rand.New(src),
	}
}

// Default returns the built-in bank seeded from the clock
func Default() *Bank {
	return New(builtin, rand.NewSource(time.Now().UnixNano()))
}

// Questions returns a copy of the bank contents
func (b *Bank) Questions() []Question {
	return append([]Question(nil), b.questions...)
}

// Len returns the number of questions in the bank
func (b *Bank) Len() int {
	return len(b.questions)
}

// Sample returns up to n distinct questions in random order. Questions whose
// topic contains topic (case-insensitive) are preferred, then fuzzy topic
// matches; when neither matches the whole bank is used.
func (b *Bank) Sample(topic string, n int) []Question {
	pool := b.matching(topic)
	if len(pool) == 0 {
		pool = b.questions
	}
	if n > len(pool) {
		n = len(pool)
	}
	if n <= 0 {
		return []Question{}
	}

	b.mu.Lock()
	perm := b.rng.Perm(len(pool))
	b.mu.Unlock()

	out := make([]Question, n)
	for i := 0; i < n; i++ {
		out[i] = pool[perm[i]]
	}
	return out
}

// Generate answers a bank quiz request with defaults applied
func (b *Bank) Generate(req *models.BankQuizRequest) *models.BankQuizResponse {
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = DefaultTopic
	}
	n := DefaultNumQuestions
	if req.NumQuestions != nil {
		n = *req.NumQuestions
	}

	chosen := b.Sample(topic, n)
	questions := lo.Map(chosen, func(q Question, _ int) models.BankQuestion {
		return q.Public()
	})

	return &models.BankQuizResponse{
		Topic:        topic,
		NumQuestions: len(questions),
		Questions:    questions,
	}
}

// Public strips the answer key
func (q Question) Public() models.BankQuestion {
	return models.BankQuestion{
		ID:         q.ID,
		Prompt:     q.Prompt,
		Topic:      q.Topic,
		Difficulty: q.Difficulty,
		Options:    append([]string(nil), q.Options...),
	}
}

func (b *Bank) matching(topic string) []Question {
	needle := strings.ToLower(topic)
	exact := lo.Filter(b.questions, func(q Question, _ int) bool {
		return strings.Contains(strings.ToLower(q.Topic), needle)
	})
	if len(exact) > 0 {
		return exact
	}
	return lo.Filter(b.questions, func(q Question, _ int) bool {
		return fuzzy.MatchFold(topic, q.Topic)
	})
}

package util

// Log message constants
const (
	LogStart   = "=== %s START ==="
	LogEnd     = "=== %s END ==="
	LogSection = "--- %s ---"
)

// Difficulty levels
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Generation defaults
const (
	DefaultQuestionCount  = 10
	DefaultFlashcardCount = 10
	MaxGeneratedItems     = 50
	DefaultDifficulty     = DifficultyMedium
)

// Chat defaults
const (
	DefaultSessionTitle = "New Conversation"
	PreviewLength       = 50
	PreviewSuffix       = "..."
)

// Score bounds
const (
	MinScore = 0
	MaxScore = 100
)

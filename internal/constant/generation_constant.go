package constant

import (
	"fmt"

	"github.com/google/uuid"
)

// Module keys: the units of generated content an interview can carry.
const (
	ModuleBrief      = "brief"
	ModuleMcqs       = "mcqs"
	ModuleQuestions  = "questions"
	ModuleFlashcards = "flashcards"
)

// Stream session lifecycle: none -> active -> {completed, error}.
const (
	StreamStatusNone      = "none"
	StreamStatusActive    = "active"
	StreamStatusCompleted = "completed"
	StreamStatusError     = "error"
)

// DefaultModuleCounts is the item count used when the request omits one.
var DefaultModuleCounts = map[string]int{
	ModuleBrief:      1,
	ModuleMcqs:       5,
	ModuleQuestions:  5,
	ModuleFlashcards: 10,
}

// ModuleCreditCosts supports fractional decrements for cheaper operations.
var ModuleCreditCosts = map[string]float64{
	ModuleBrief:      1.0,
	ModuleMcqs:       1.0,
	ModuleQuestions:  1.0,
	ModuleFlashcards: 0.5,
}

// MaxModuleCount bounds a single generation request.
const MaxModuleCount = 25

// IsValidModule reports whether the key names a known module type.
func IsValidModule(module string) bool {
	_, ok := DefaultModuleCounts[module]
	return ok
}

// ScopeKey is the compound identifier a stream session and its replay buffer
// are keyed by: at most one active session exists per interview+module.
func ScopeKey(interviewId uuid.UUID, module string) string {
	return fmt.Sprintf("%s:%s", interviewId, module)
}

package domain

import "strings"

// Difficulty is the canonical difficulty scale. Lessons carry levels 1..5;
// the label mapping below covers the three tiers used in prompts and paths.
type Difficulty int

const (
	DifficultyBeginner     Difficulty = 1
	DifficultyIntermediate Difficulty = 2
	DifficultyAdvanced     Difficulty = 3

	// MaxDifficultyLevel bounds the lesson difficulty scale.
	MaxDifficultyLevel = 5
)

// Label returns the human-readable tier name.
func (d Difficulty) Label() string {
	switch {
	case d <= DifficultyBeginner:
		return "Beginner"
	case d == DifficultyIntermediate:
		return "Intermediate"
	default:
		return "Advanced"
	}
}

// ParseDifficulty maps a free-text label to the canonical scale. Unknown
// labels default to Beginner.
func ParseDifficulty(label string) Difficulty {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "intermediate", "2":
		return DifficultyIntermediate
	case "advanced", "expert", "3":
		return DifficultyAdvanced
	default:
		return DifficultyBeginner
	}
}

// ClampDifficultyLevel forces a decoded level into the 1..5 lesson range.
func ClampDifficultyLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > MaxDifficultyLevel {
		return MaxDifficultyLevel
	}
	return level
}

package models

import "time"

// Difficulty levels accepted for a problem.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Problem is a catalog entry. Test cases and judging live elsewhere.
type Problem struct {
	ID          string
	Title       string
	Description string
	Difficulty  string
	CreatedAt   time.Time
}

package model

import (
	"time"
)

type QuestionDifficulty string

const (
	DifficultyEasy   QuestionDifficulty = "Easy"
	DifficultyMedium QuestionDifficulty = "Medium"
	DifficultyHard   QuestionDifficulty = "Hard"
)

// Question is the catalog record for a single practice question. Title is
// unique (enforced by the store); Tags is a comma-separated list kept
// verbatim as entered; normalization happens only at scoring time.
type Question struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Description string             `json:"description"`
	Difficulty  QuestionDifficulty `json:"difficulty"`
	Tags        string             `json:"tags"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
}

// RecommendedQuestion is the trimmed shape returned by the recommendation
// endpoint. Description and tags are intentionally omitted.
type RecommendedQuestion struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Difficulty QuestionDifficulty `json:"difficulty"`
}

package models

import "time"

// Word statuses. A word moves unknown -> learning -> known as reviews
// accumulate; a wrong answer can drop it back to learning.
const (
	StatusUnknown  = "unknown"
	StatusLearning = "learning"
	StatusKnown    = "known"
)

// Word represents one vocabulary entry a user is tracking.
type Word struct {
	ID              string     `json:"id"`
	UserID          int        `json:"user_id"`
	Text            string     `json:"text"`
	NormalizedText  string     `json:"normalized_text"`
	Status          string     `json:"status"`
	Definition      string     `json:"definition,omitempty"`
	ExampleSentence string     `json:"example_sentence,omitempty"`
	Reading         string     `json:"reading,omitempty"`
	ReviewCount     int        `json:"review_count"`
	CorrectCount    int        `json:"correct_count"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Eligible reports whether the word should still be quizzed.
func (w *Word) Eligible() bool {
	return w.Status == StatusUnknown || w.Status == StatusLearning
}

// WordRequest for creating/updating words. Empty fields are left untouched
// on update (merge semantics).
type WordRequest struct {
	Text            string `json:"text"`
	Definition      string `json:"definition,omitempty"`
	ExampleSentence string `json:"example_sentence,omitempty"`
	Reading         string `json:"reading,omitempty"`
	Status          string `json:"status,omitempty"`
}

// WordStats summarizes a user's vocabulary.
type WordStats struct {
	TotalWords   int     `json:"total_words"`
	Unknown      int     `json:"unknown"`
	Learning     int     `json:"learning"`
	Known        int     `json:"known"`
	TotalReviews int     `json:"total_reviews"`
	Accuracy     float64 `json:"accuracy"`
}

package quiz

import (
	"time"

	"language-companion-api/models"
)

// ApplyReview evolves a word's counters and status after one answer.
//
// A word becomes known on a correct answer once it has at least 3 reviews
// and 2 correct ones; any other review leaves it at learning, including an
// incorrect review of a word that was already known.
func ApplyReview(word *models.Word, correct bool, now time.Time) {
	word.ReviewCount++
	if correct {
		word.CorrectCount++
	}

	if correct && word.ReviewCount >= 3 && word.CorrectCount >= 2 {
		word.Status = models.StatusKnown
	} else if word.ReviewCount > 0 {
		word.Status = models.StatusLearning
	}

	reviewedAt := now
	word.LastReviewedAt = &reviewedAt
}

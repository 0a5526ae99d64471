package quiz

import (
	"fmt"
	"math/rand"
	"regexp"

	"github.com/google/uuid"

	"language-companion-api/models"
)

const (
	blankMarker       = "___"
	noDefinitionText  = "No definition available"
	usageFallbackText = `Please use "%s" in a sentence.`
)

// GenerateQuestion derives one question from a word. The question type is
// chosen uniformly between meaning and usage via rng; everything else is a
// pure function of the word.
func GenerateQuestion(word *models.Word, rng *rand.Rand) models.QuizQuestion {
	question := models.QuizQuestion{
		ID:       uuid.NewString(),
		WordID:   word.ID,
		WordText: word.Text,
	}

	if rng.Intn(2) == 0 {
		question.QuestionType = models.QuestionMeaning
		question.QuestionText = fmt.Sprintf("What does %q mean?", word.Text)
		if word.Definition != "" {
			question.CorrectAnswer = word.Definition
		} else {
			question.CorrectAnswer = noDefinitionText
		}
		return question
	}

	question.QuestionType = models.QuestionUsage
	question.CorrectAnswer = word.Text
	if word.ExampleSentence != "" {
		question.QuestionText = blankOutWord(word.ExampleSentence, word.Text)
	} else {
		question.QuestionText = fmt.Sprintf(usageFallbackText, word.Text)
	}
	return question
}

// blankOutWord replaces every case-insensitive occurrence of the word in the
// sentence with the blank marker.
func blankOutWord(sentence, word string) string {
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(word))
	return re.ReplaceAllString(sentence, blankMarker)
}

package quiz

import (
	"strings"
	"unicode"

	"language-companion-api/models"
)

// ScoreAnswer judges a submitted answer against a question. Pure and
// deterministic: the same question/answer pair always scores the same.
//
// An answer that is empty after trimming is always wrong, whatever the
// question type; skipping counts as a miss.
func ScoreAnswer(question *models.QuizQuestion, answer string) bool {
	submitted := strings.TrimSpace(answer)
	if submitted == "" {
		return false
	}

	if question.QuestionType == models.QuestionUsage {
		return scoreUsage(question.CorrectAnswer, submitted)
	}
	return scoreMeaning(question.CorrectAnswer, submitted)
}

// scoreUsage requires the exact target word, case-insensitively. The target
// may carry trailing punctuation picked up from an example sentence; that is
// ignored.
func scoreUsage(target, submitted string) bool {
	normalizedTarget := strings.TrimRight(strings.ToLower(strings.TrimSpace(target)), "!?.,")
	return strings.ToLower(submitted) == normalizedTarget
}

// scoreMeaning is the lenient overlap rule for definitions: the answer is
// accepted when any canonical token and any submitted token agree up to a
// substring relationship in either direction. Full coverage of the canonical
// answer is not required, so partial and paraphrased answers pass.
func scoreMeaning(canonical, submitted string) bool {
	canonicalTokens := tokenizeAnswer(canonical)
	if len(canonicalTokens) == 0 {
		return true
	}

	submittedTokens := tokenizeAnswer(submitted)
	for _, ct := range canonicalTokens {
		for _, st := range submittedTokens {
			if strings.Contains(ct, st) || strings.Contains(st, ct) {
				return true
			}
		}
	}
	return false
}

// tokenizeAnswer splits on commas (ASCII and ideographic) and whitespace,
// dropping empty tokens.
func tokenizeAnswer(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return r == ',' || r == '、' || unicode.IsSpace(r)
	})
}

package quiz

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lithammer/shortuuid/v4"

	"language-companion-api/models"
	"language-companion-api/utils"
)

var (
	// ErrNoWordsAvailable means the user has no unknown or learning words
	// left to quiz. Callers should prompt for new words, not show a failure.
	ErrNoWordsAvailable = errors.New("no words available for quiz")

	// ErrSessionNotFound means the session id is not active: it completed,
	// never existed, or was lost to a restart.
	ErrSessionNotFound = errors.New("quiz session not found")

	// ErrNoCurrentQuestion means an answer was submitted to a session whose
	// questions are all answered. Caller misuse, not a normal outcome.
	ErrNoCurrentQuestion = errors.New("no current question in session")
)

// WordStore is the persistence the quiz engine depends on. The db package
// satisfies it; tests supply an in-memory stand-in.
type WordStore interface {
	GetWordsByUser(userID int) ([]models.Word, error)
	SaveWord(word *models.Word) error
}

// activeSession pairs the session with the word snapshots its questions were
// built from. The snapshots are what the mastery updates mutate and save.
type activeSession struct {
	session *models.QuizSession
	words   map[string]*models.Word
}

// Manager owns all in-progress quiz sessions. Sessions live only in memory;
// a restart drops them, which is an accepted boundary since sessions are
// ephemeral by design.
type Manager struct {
	store WordStore
	rng   *rand.Rand

	mutex   sync.Mutex
	active  map[string]*activeSession
	results map[string]*models.QuizResults
}

// NewManager creates a session manager backed by the given store. Passing a
// seeded rng makes shuffling and question-type choice deterministic for
// tests; nil gets a time-seeded source.
func NewManager(store WordStore, rng *rand.Rand) *Manager {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		store:   store,
		rng:     rng,
		active:  make(map[string]*activeSession),
		results: make(map[string]*models.QuizResults),
	}
}

// StartSession builds a new quiz from the user's unknown and learning words:
// uniform shuffle, truncate to min(questionCount, pool size), one question
// per word.
func (m *Manager) StartSession(userID, questionCount int) (*models.QuizSession, error) {
	if questionCount <= 0 {
		return nil, fmt.Errorf("question count must be positive, got %d", questionCount)
	}

	words, err := m.store.GetWordsByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("load words for user %d: %w", userID, err)
	}

	pool := make([]models.Word, 0, len(words))
	for _, w := range words {
		if w.Eligible() {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return nil, ErrNoWordsAvailable
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	count := questionCount
	if len(pool) < count {
		count = len(pool)
	}
	selected := pool[:count]

	session := &models.QuizSession{
		ID:        shortuuid.New(),
		UserID:    userID,
		Answers:   []models.QuizAnswer{},
		StartedAt: time.Now(),
	}
	snapshots := make(map[string]*models.Word, count)
	for i := range selected {
		word := &selected[i]
		session.Questions = append(session.Questions, GenerateQuestion(word, m.rng))
		snapshots[word.ID] = word
	}

	m.active[session.ID] = &activeSession{session: session, words: snapshots}

	utils.LogQuiz("Started session %s for user %d: %d questions (pool %d)",
		session.ID, userID, len(session.Questions), len(pool))
	return session, nil
}

// CurrentQuestion returns the question awaiting an answer, or nil when the
// session has none left.
func (m *Manager) CurrentQuestion(sessionID string) (*models.QuizQuestion, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	entry, ok := m.active[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	question := entry.session.CurrentQuestion()
	if question == nil {
		return nil, nil
	}
	copied := *question
	return &copied, nil
}

// SubmitAnswer scores the answer, applies the mastery update, records the
// answer, and advances the session. Completing the last question evicts the
// session from the active table; its summary stays retrievable through
// SessionResults and is also returned inline.
func (m *Manager) SubmitAnswer(sessionID, answerText string, responseTimeMs int) (*models.AnswerResult, error) {
	m.mutex.Lock()

	entry, ok := m.active[sessionID]
	if !ok {
		m.mutex.Unlock()
		return nil, ErrSessionNotFound
	}

	session := entry.session
	question := session.CurrentQuestion()
	if question == nil {
		m.mutex.Unlock()
		return nil, ErrNoCurrentQuestion
	}

	correct := ScoreAnswer(question, answerText)
	word := entry.words[question.WordID]

	session.Answers = append(session.Answers, models.QuizAnswer{
		QuestionID:     question.ID,
		UserAnswer:     answerText,
		IsCorrect:      correct,
		ResponseTimeMs: responseTimeMs,
		AnsweredAt:     time.Now(),
	})
	session.Position++

	result := &models.AnswerResult{
		IsCorrect:     correct,
		CorrectAnswer: question.CorrectAnswer,
	}
	if correct {
		result.Explanation = "Correct!"
	} else {
		result.Explanation = fmt.Sprintf("The correct answer is %q.", question.CorrectAnswer)
	}

	if session.Complete() {
		now := time.Now()
		session.CompletedAt = &now
		result.SessionCompleted = true

		summary := summarize(session)
		m.results[sessionID] = summary
		result.Results = summary
		delete(m.active, sessionID)

		utils.LogQuiz("Session %s completed: %d/%d correct",
			sessionID, summary.CorrectAnswers, summary.TotalQuestions)
	} else {
		next := session.Questions[session.Position]
		result.NextQuestion = &next
	}

	m.mutex.Unlock()

	// Mastery persistence is best-effort: a failed save never blocks the
	// quiz, the caller just gets a warning alongside the result.
	if word != nil {
		ApplyReview(word, correct, time.Now())
		if err := m.store.SaveWord(word); err != nil {
			utils.LogError("Failed to save review for word %s: %v", word.ID, err)
			result.PersistWarning = fmt.Sprintf("review for %q was not saved: %v", word.Text, err)
		}
	}

	return result, nil
}

// SessionResults summarizes a session: live totals while it is active, the
// final summary after completion, nil for an unknown id.
func (m *Manager) SessionResults(sessionID string) *models.QuizResults {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if entry, ok := m.active[sessionID]; ok {
		return summarize(entry.session)
	}
	return m.results[sessionID]
}

func summarize(session *models.QuizSession) *models.QuizResults {
	correct := 0
	for _, a := range session.Answers {
		if a.IsCorrect {
			correct++
		}
	}

	total := len(session.Questions)
	accuracy := 0.0
	if total > 0 {
		accuracy = float64(correct) / float64(total)
	}

	answers := make([]models.QuizAnswer, len(session.Answers))
	copy(answers, session.Answers)

	return &models.QuizResults{
		SessionID:      session.ID,
		TotalQuestions: total,
		CorrectAnswers: correct,
		Accuracy:       accuracy,
		Answers:        answers,
		StartedAt:      session.StartedAt,
		CompletedAt:    session.CompletedAt,
	}
}

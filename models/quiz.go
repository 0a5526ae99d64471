package models

import "time"

// Question types. Meaning questions ask for the definition; usage questions
// blank the word out of its example sentence.
const (
	QuestionMeaning = "meaning"
	QuestionUsage   = "usage"
)

// QuizQuestion is one prompt derived from a word at session-build time.
// Immutable once built; it lives only as long as its owning session.
type QuizQuestion struct {
	ID            string `json:"id"`
	WordID        string `json:"word_id"`
	WordText      string `json:"word_text"`
	QuestionType  string `json:"question_type"`
	QuestionText  string `json:"question_text"`
	CorrectAnswer string `json:"-"`
}

// QuizAnswer records one submitted response.
type QuizAnswer struct {
	QuestionID     string    `json:"question_id"`
	UserAnswer     string    `json:"user_answer"`
	IsCorrect      bool      `json:"is_correct"`
	ResponseTimeMs int       `json:"response_time_ms,omitempty"`
	AnsweredAt     time.Time `json:"answered_at"`
}

// QuizSession holds the state of one in-progress quiz. Position always
// equals len(Answers); the session is complete when it reaches
// len(Questions).
type QuizSession struct {
	ID          string         `json:"session_id"`
	UserID      int            `json:"user_id"`
	Questions   []QuizQuestion `json:"questions"`
	Position    int            `json:"position"`
	Answers     []QuizAnswer   `json:"answers"`
	StartedAt   time.Time      `json:"started_at"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
}

// Complete reports whether every question has been answered.
func (s *QuizSession) Complete() bool {
	return s.Position >= len(s.Questions)
}

// CurrentQuestion returns the question at the current position, or nil when
// the session is complete.
func (s *QuizSession) CurrentQuestion() *QuizQuestion {
	if s.Complete() {
		return nil
	}
	return &s.Questions[s.Position]
}

// AnswerRequest for submitting an answer.
type AnswerRequest struct {
	Answer         string `json:"answer"`
	ResponseTimeMs int    `json:"response_time_ms,omitempty"`
}

// AnswerResult is returned for each submitted answer. PersistWarning is set
// when the mastery update could not be saved; the quiz itself still advanced.
type AnswerResult struct {
	IsCorrect        bool          `json:"is_correct"`
	CorrectAnswer    string        `json:"correct_answer"`
	Explanation      string        `json:"explanation"`
	NextQuestion     *QuizQuestion `json:"next_question,omitempty"`
	SessionCompleted bool          `json:"session_completed"`
	Results          *QuizResults  `json:"results,omitempty"`
	PersistWarning   string        `json:"persist_warning,omitempty"`
}

// QuizResults summarizes a finished (or in-progress) session.
type QuizResults struct {
	SessionID      string       `json:"session_id"`
	TotalQuestions int          `json:"total_questions"`
	CorrectAnswers int          `json:"correct_answers"`
	Accuracy       float64      `json:"accuracy"`
	Answers        []QuizAnswer `json:"answers"`
	StartedAt      time.Time    `json:"started_at"`
	CompletedAt    *time.Time   `json:"completed_at,omitempty"`
}

// StartQuizRequest for starting a session.
type StartQuizRequest struct {
	QuestionCount int `json:"question_count"`
}

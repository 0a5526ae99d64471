package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"language-companion-api/models"
	"language-companion-api/quiz"
	"language-companion-api/utils"
)

type QuizHandlers struct {
	manager     *quiz.Manager
	defaultSize int
}

func NewQuizHandlers(manager *quiz.Manager, defaultSize int) *QuizHandlers {
	return &QuizHandlers{
		manager:     manager,
		defaultSize: defaultSize,
	}
}

func (qh *QuizHandlers) StartQuiz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := getSessionFromContext(r.Context())

	var req models.StartQuizRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
	}
	if req.QuestionCount <= 0 {
		req.QuestionCount = qh.defaultSize
	}

	quizSession, err := qh.manager.StartSession(session.UserID, req.QuestionCount)
	if err != nil {
		if errors.Is(err, quiz.ErrNoWordsAvailable) {
			http.Error(w, "No words available for a quiz. Add some words first.", http.StatusConflict)
			return
		}
		utils.LogError("Failed to start quiz for user %d: %v", session.UserID, err)
		http.Error(w, "Failed to start quiz", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(quizSession)
}

// HandleQuizSession dispatches /quiz/{id}/question, /quiz/{id}/answer and
// /quiz/{id}/results.
func (qh *QuizHandlers) HandleQuizSession(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/quiz/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.Error(w, "Invalid quiz path", http.StatusBadRequest)
		return
	}
	sessionID := parts[0]

	switch {
	case parts[1] == "question" && r.Method == http.MethodGet:
		qh.getCurrentQuestion(w, sessionID)
	case parts[1] == "answer" && r.Method == http.MethodPost:
		qh.submitAnswer(w, r, sessionID)
	case parts[1] == "results" && r.Method == http.MethodGet:
		qh.getResults(w, sessionID)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (qh *QuizHandlers) getCurrentQuestion(w http.ResponseWriter, sessionID string) {
	question, err := qh.manager.CurrentQuestion(sessionID)
	if err != nil {
		if errors.Is(err, quiz.ErrSessionNotFound) {
			http.Error(w, "Quiz session not found", http.StatusNotFound)
			return
		}
		http.Error(w, "Failed to fetch question", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if question == nil {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"question":  nil,
			"completed": true,
		})
		return
	}
	json.NewEncoder(w).Encode(question)
}

func (qh *QuizHandlers) submitAnswer(w http.ResponseWriter, r *http.Request, sessionID string) {
	var req models.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	result, err := qh.manager.SubmitAnswer(sessionID, req.Answer, req.ResponseTimeMs)
	if err != nil {
		switch {
		case errors.Is(err, quiz.ErrSessionNotFound):
			http.Error(w, "Quiz session not found", http.StatusNotFound)
		case errors.Is(err, quiz.ErrNoCurrentQuestion):
			http.Error(w, "All questions already answered", http.StatusBadRequest)
		default:
			utils.LogError("Failed to submit answer for session %s: %v", sessionID, err)
			http.Error(w, "Failed to submit answer", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (qh *QuizHandlers) getResults(w http.ResponseWriter, sessionID string) {
	results := qh.manager.SessionResults(sessionID)
	if results == nil {
		http.Error(w, "Quiz session not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

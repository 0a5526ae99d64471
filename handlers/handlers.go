package handlers

import (
	"net/http"

	"language-companion-api/auth"
	"language-companion-api/config"
	"language-companion-api/db"
	"language-companion-api/dictionary"
	"language-companion-api/jobs"
	"language-companion-api/quiz"
	"language-companion-api/utils"
)

// API wrapper to hold all handlers
type API struct {
	authHandlers  *AuthHandlers
	wordHandlers  *WordHandlers
	quizHandlers  *QuizHandlers
	exportHandler *ExportHandler
}

func NewRouter(database *db.DB, sessionStore *auth.SessionStore, quizManager *quiz.Manager,
	analyzer *dictionary.Analyzer, jobManager *jobs.JobManager, cfg *config.Config) http.Handler {

	api := &API{
		authHandlers:  NewAuthHandlers(database, sessionStore),
		wordHandlers:  NewWordHandlers(database, analyzer),
		quizHandlers:  NewQuizHandlers(quizManager, cfg.DefaultQuizSize),
		exportHandler: NewExportHandler(jobManager),
	}

	requireAuth := authMiddleware(sessionStore)

	mux := http.NewServeMux()

	// Health check (no auth required)
	mux.HandleFunc("/health", healthCheck)

	// Auth endpoints (handle their own auth as needed)
	mux.HandleFunc("/auth/", api.authHandlers.HandleAuth)

	// Word routes with auth
	mux.HandleFunc("/words", requireAuth(api.wordHandlers.HandleWords))
	mux.HandleFunc("/words/stats", requireAuth(api.wordHandlers.GetWordStats))
	mux.HandleFunc("/words/", requireAuth(api.wordHandlers.HandleWordByID))

	// Quiz routes with auth
	mux.HandleFunc("/quiz/start", requireAuth(api.quizHandlers.StartQuiz))
	mux.HandleFunc("/quiz/", requireAuth(api.quizHandlers.HandleQuizSession))

	// Export route with auth
	mux.HandleFunc("/export", requireAuth(api.exportHandler.QueueExport))

	return corsMiddleware(loggingMiddleware(mux))
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.LogHTTP("Health check requested")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

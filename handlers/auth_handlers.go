package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"language-companion-api/auth"
	"language-companion-api/db"
	"language-companion-api/models"
	"language-companion-api/utils"
)

type AuthHandlers struct {
	db           *db.DB
	sessionStore *auth.SessionStore
}

func NewAuthHandlers(database *db.DB, sessionStore *auth.SessionStore) *AuthHandlers {
	return &AuthHandlers{
		db:           database,
		sessionStore: sessionStore,
	}
}

// HandleAuth dispatches /auth/* requests.
func (ah *AuthHandlers) HandleAuth(w http.ResponseWriter, r *http.Request) {
	action := strings.TrimPrefix(r.URL.Path, "/auth/")
	utils.LogHTTP("%s /auth/%s", r.Method, action)

	switch {
	case action == "register" && r.Method == http.MethodPost:
		ah.register(w, r)
	case action == "login" && r.Method == http.MethodPost:
		ah.login(w, r)
	case action == "logout" && r.Method == http.MethodPost:
		ah.logout(w, r)
	case action == "me" && r.Method == http.MethodGet:
		ah.me(w, r)
	default:
		http.Error(w, "Not found", http.StatusNotFound)
	}
}

func (ah *AuthHandlers) register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := utils.ValidateUsername(req.Username); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	user, err := ah.db.CreateUser(req, hash)
	if err != nil {
		utils.LogError("Failed to create user '%s': %v", req.Username, err)
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	session := ah.sessionStore.CreateSession(user)
	ah.writeSessionResponse(w, http.StatusCreated, user, session)
}

func (ah *AuthHandlers) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	user, hash, err := ah.db.GetUserForLogin(req.Username)
	if err != nil || !auth.CheckPassword(hash, req.Password) {
		utils.LogInfo("Failed login attempt for '%s'", req.Username)
		http.Error(w, "Invalid username or password", http.StatusUnauthorized)
		return
	}

	session := ah.sessionStore.CreateSession(user)
	utils.LogInfo("User '%s' logged in", user.Username)
	ah.writeSessionResponse(w, http.StatusOK, user, session)
}

func (ah *AuthHandlers) logout(w http.ResponseWriter, r *http.Request) {
	sessionID := extractSessionFromRequest(r)
	if sessionID != "" {
		ah.sessionStore.DeleteSession(sessionID)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (ah *AuthHandlers) me(w http.ResponseWriter, r *http.Request) {
	sessionID := extractSessionFromRequest(r)
	session, exists := ah.sessionStore.GetSession(sessionID)
	if !exists {
		http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
		return
	}

	user, err := ah.db.GetUserByID(session.UserID)
	if err != nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(user)
}

func (ah *AuthHandlers) writeSessionResponse(w http.ResponseWriter, status int, user *models.User, session *models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    session.ID,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"user":       user,
		"session_id": session.ID,
		"expires_at": session.ExpiresAt,
	})
}

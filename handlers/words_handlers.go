package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"language-companion-api/db"
	"language-companion-api/dictionary"
	"language-companion-api/models"
	"language-companion-api/utils"
)

type WordHandlers struct {
	db       *db.DB
	analyzer *dictionary.Analyzer
}

func NewWordHandlers(database *db.DB, analyzer *dictionary.Analyzer) *WordHandlers {
	return &WordHandlers{
		db:       database,
		analyzer: analyzer,
	}
}

func (wh *WordHandlers) HandleWords(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		wh.listWords(w, r)
	case http.MethodPost:
		wh.createWord(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (wh *WordHandlers) HandleWordByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/words/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Invalid word ID", http.StatusBadRequest)
		return
	}

	session := getSessionFromContext(r.Context())
	word, err := wh.db.GetWordByID(id)
	if err != nil {
		http.Error(w, "Failed to fetch word", http.StatusInternalServerError)
		return
	}
	if word == nil || word.UserID != session.UserID {
		http.Error(w, "Word not found", http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodGet:
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(word)
	case http.MethodPut:
		wh.updateWord(w, r, word)
	case http.MethodDelete:
		wh.deleteWord(w, word)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (wh *WordHandlers) listWords(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r.Context())

	words, err := wh.db.GetWordsByUser(session.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch words", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"words": words,
		"count": len(words),
	})
}

func (wh *WordHandlers) createWord(w http.ResponseWriter, r *http.Request) {
	session := getSessionFromContext(r.Context())

	var req models.WordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		http.Error(w, "text is required", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateWordStatus(req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Japanese words get their reading filled in locally when the caller
	// didn't supply one.
	if req.Reading == "" && wh.analyzer != nil && dictionary.ContainsJapanese(req.Text) {
		entry := wh.analyzer.Lookup(req.Text)
		req.Reading = entry.Reading
	}

	word, err := wh.db.CreateWord(session.UserID, req)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			http.Error(w, "Word already exists", http.StatusConflict)
			return
		}
		utils.LogError("Failed to create word: %v", err)
		http.Error(w, "Failed to create word", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(word)
}

func (wh *WordHandlers) updateWord(w http.ResponseWriter, r *http.Request, word *models.Word) {
	var req models.WordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := utils.ValidateWordStatus(req.Status); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := wh.db.UpdateWord(word.ID, req)
	if err != nil {
		utils.LogError("Failed to update word %s: %v", word.ID, err)
		http.Error(w, "Failed to update word", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(updated)
}

func (wh *WordHandlers) deleteWord(w http.ResponseWriter, word *models.Word) {
	if err := wh.db.DeleteWord(word.ID); err != nil {
		utils.LogError("Failed to delete word %s: %v", word.ID, err)
		http.Error(w, "Failed to delete word", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (wh *WordHandlers) GetWordStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	session := getSessionFromContext(r.Context())
	stats, err := wh.db.GetUserWordStats(session.UserID)
	if err != nil {
		http.Error(w, "Failed to fetch stats", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

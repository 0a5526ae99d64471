package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"language-companion-api/auth"
	"language-companion-api/config"
	"language-companion-api/db"
	"language-companion-api/models"
	"language-companion-api/quiz"
)

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database, err := db.InitDB(":memory:")
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	database.SetMaxOpenConns(1)
	t.Cleanup(func() { database.Close() })

	sessionStore := auth.NewSessionStore(time.Hour, time.Hour)
	t.Cleanup(sessionStore.Stop)

	manager := quiz.NewManager(database, nil)
	cfg := &config.Config{DefaultQuizSize: 10}

	router := NewRouter(database, sessionStore, manager, nil, nil, cfg)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, body interface{}, out interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response of %s %s: %v", method, url, err)
		}
	}
	return resp
}

func registerTestUser(t *testing.T, server *httptest.Server) string {
	t.Helper()

	var reg struct {
		SessionID string `json:"session_id"`
	}
	resp := doJSON(t, http.MethodPost, server.URL+"/auth/register", "", models.UserRequest{
		Username: "taro",
		Email:    "taro@example.com",
		Password: "password123",
	}, &reg)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: unexpected status %d", resp.StatusCode)
	}
	if reg.SessionID == "" {
		t.Fatalf("register: empty session id")
	}
	return reg.SessionID
}

func TestQuizFlowOverHTTP(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	// No words yet: starting a quiz is a distinct, actionable failure.
	resp := doJSON(t, http.MethodPost, server.URL+"/quiz/start", token,
		models.StartQuizRequest{QuestionCount: 2}, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 with empty vocabulary, got %d", resp.StatusCode)
	}

	for _, word := range []models.WordRequest{
		{Text: "cat", Definition: "猫"},
		{Text: "dog", Definition: "犬"},
	} {
		resp := doJSON(t, http.MethodPost, server.URL+"/words", token, word, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("create word %q: unexpected status %d", word.Text, resp.StatusCode)
		}
	}

	var session models.QuizSession
	resp = doJSON(t, http.MethodPost, server.URL+"/quiz/start", token,
		models.StartQuizRequest{QuestionCount: 2}, &session)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("start quiz: unexpected status %d", resp.StatusCode)
	}
	if len(session.Questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(session.Questions))
	}

	base := fmt.Sprintf("%s/quiz/%s", server.URL, session.ID)

	// Answer both questions correctly. Meaning questions take the
	// definition, usage questions take the word itself.
	answers := map[string]map[string]string{
		models.QuestionMeaning: {"cat": "猫", "dog": "犬"},
		models.QuestionUsage:   {"cat": "cat", "dog": "dog"},
	}
	for i := 0; i < 2; i++ {
		var question models.QuizQuestion
		resp := doJSON(t, http.MethodGet, base+"/question", token, nil, &question)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("get question: unexpected status %d", resp.StatusCode)
		}

		var result models.AnswerResult
		doJSON(t, http.MethodPost, base+"/answer", token, models.AnswerRequest{
			Answer: answers[question.QuestionType][question.WordText],
		}, &result)
		if !result.IsCorrect {
			t.Fatalf("expected correct answer for %q question on %q", question.QuestionType, question.WordText)
		}
		if i == 1 && !result.SessionCompleted {
			t.Fatalf("expected session completed after final answer")
		}
	}

	var results models.QuizResults
	resp = doJSON(t, http.MethodGet, base+"/results", token, nil, &results)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get results: unexpected status %d", resp.StatusCode)
	}
	if results.TotalQuestions != 2 || results.CorrectAnswers != 2 || results.Accuracy != 1.0 {
		t.Fatalf("unexpected results: %+v", results)
	}

	// The completed session is gone from the active table.
	resp = doJSON(t, http.MethodGet, base+"/question", token, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for completed session, got %d", resp.StatusCode)
	}

	// Both words were reviewed once and moved to learning.
	var stats models.WordStats
	doJSON(t, http.MethodGet, server.URL+"/words/stats", token, nil, &stats)
	if stats.Learning != 2 || stats.TotalReviews != 2 {
		t.Fatalf("unexpected stats after quiz: %+v", stats)
	}
}

func TestQuizEndpointsRequireAuth(t *testing.T) {
	server := setupTestServer(t)

	resp := doJSON(t, http.MethodPost, server.URL+"/quiz/start", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/words", "", nil, nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", resp.StatusCode)
	}
}

func TestUnknownQuizSessionOverHTTP(t *testing.T) {
	server := setupTestServer(t)
	token := registerTestUser(t, server)

	resp := doJSON(t, http.MethodGet, server.URL+"/quiz/does-not-exist/question", token, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown session, got %d", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, server.URL+"/quiz/does-not-exist/results", token, nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown results, got %d", resp.StatusCode)
	}
}

package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"language-companion-api/models"
	"language-companion-api/utils"
)

const wordColumns = `id, user_id, text, normalized_text, status, definition,
	example_sentence, reading, review_count, correct_count, last_reviewed_at,
	created_at, updated_at`

func scanWord(scanner interface{ Scan(...interface{}) error }) (*models.Word, error) {
	var w models.Word
	var definition, example, reading sql.NullString
	var lastReviewed sql.NullTime

	err := scanner.Scan(&w.ID, &w.UserID, &w.Text, &w.NormalizedText, &w.Status,
		&definition, &example, &reading, &w.ReviewCount, &w.CorrectCount,
		&lastReviewed, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return nil, err
	}

	w.Definition = definition.String
	w.ExampleSentence = example.String
	w.Reading = reading.String
	if lastReviewed.Valid {
		t := lastReviewed.Time
		w.LastReviewedAt = &t
	}
	return &w, nil
}

// CreateWord inserts a new vocabulary entry for the user. Counters start at
// zero and status defaults to unknown unless the request says otherwise.
func (db *DB) CreateWord(userID int, req models.WordRequest) (*models.Word, error) {
	utils.LogDB("Creating word '%s' for user %d", req.Text, userID)
	start := time.Now()

	status := req.Status
	if status == "" {
		status = models.StatusUnknown
	}

	id := uuid.NewString()
	normalized := utils.NormalizeWord(req.Text)

	_, err := db.Exec(`
        INSERT INTO words (id, user_id, text, normalized_text, status, definition, example_sentence, reading)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `, id, userID, req.Text, normalized, status, req.Definition, req.ExampleSentence, req.Reading)

	if err != nil {
		duration := time.Since(start)
		utils.LogError("CreateWord failed: %v (%v)", err, duration)
		return nil, err
	}

	duration := time.Since(start)
	utils.LogDB("Word created with ID %s in %v", id, duration)

	return db.GetWordByID(id)
}

func (db *DB) GetWordByID(id string) (*models.Word, error) {
	utils.LogDB("Executing query: GetWordByID(%s)", id)

	w, err := scanWord(db.QueryRow(`SELECT `+wordColumns+` FROM words WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			utils.LogDB("Word ID %s not found", id)
			return nil, nil
		}
		utils.LogError("GetWordByID(%s) failed: %v", id, err)
		return nil, err
	}
	return w, nil
}

func (db *DB) GetWordsByUser(userID int) ([]models.Word, error) {
	utils.LogDB("Executing query: GetWordsByUser(%d)", userID)
	start := time.Now()

	rows, err := db.Query(`
        SELECT `+wordColumns+` FROM words WHERE user_id = ? ORDER BY created_at DESC
    `, userID)
	if err != nil {
		utils.LogError("GetWordsByUser(%d) query failed: %v", userID, err)
		return nil, err
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			utils.LogError("Failed to scan word row: %v", err)
			return nil, err
		}
		words = append(words, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	utils.LogDB("GetWordsByUser(%d) completed: %d words in %v", userID, len(words), duration)
	return words, nil
}

// UpdateWord merges non-empty request fields into an existing word. Text
// changes recompute the normalized key.
func (db *DB) UpdateWord(id string, req models.WordRequest) (*models.Word, error) {
	utils.LogDB("Updating word ID %s", id)
	start := time.Now()

	current, err := db.GetWordByID(id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, sql.ErrNoRows
	}

	if req.Text != "" {
		current.Text = req.Text
		current.NormalizedText = utils.NormalizeWord(req.Text)
	}
	if req.Definition != "" {
		current.Definition = req.Definition
	}
	if req.ExampleSentence != "" {
		current.ExampleSentence = req.ExampleSentence
	}
	if req.Reading != "" {
		current.Reading = req.Reading
	}
	if req.Status != "" {
		current.Status = req.Status
	}

	_, err = db.Exec(`
        UPDATE words
        SET text = ?, normalized_text = ?, status = ?, definition = ?, example_sentence = ?, reading = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `, current.Text, current.NormalizedText, current.Status, current.Definition,
		current.ExampleSentence, current.Reading, id)

	if err != nil {
		duration := time.Since(start)
		utils.LogError("UpdateWord(%s) failed: %v (%v)", id, err, duration)
		return nil, err
	}

	duration := time.Since(start)
	utils.LogDB("UpdateWord(%s) completed in %v", id, duration)
	return db.GetWordByID(id)
}

// SaveWord writes back the review state of a word after a quiz answer.
func (db *DB) SaveWord(w *models.Word) error {
	utils.LogDB("Saving review state for word %s: reviews=%d correct=%d status=%s",
		w.ID, w.ReviewCount, w.CorrectCount, w.Status)

	result, err := db.Exec(`
        UPDATE words
        SET status = ?, review_count = ?, correct_count = ?, last_reviewed_at = ?, updated_at = CURRENT_TIMESTAMP
        WHERE id = ?
    `, w.Status, w.ReviewCount, w.CorrectCount, w.LastReviewedAt, w.ID)
	if err != nil {
		utils.LogError("SaveWord(%s) failed: %v", w.ID, err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("word %s not found", w.ID)
	}
	return nil
}

func (db *DB) DeleteWord(id string) error {
	utils.LogDB("Deleting word ID %s", id)

	result, err := db.Exec("DELETE FROM words WHERE id = ?", id)
	if err != nil {
		utils.LogError("DeleteWord(%s) failed: %v", id, err)
		return err
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		utils.LogDB("DeleteWord(%s): no rows affected", id)
		return sql.ErrNoRows
	}
	return nil
}

// GetUserWordStats summarizes a user's vocabulary counts and review accuracy.
func (db *DB) GetUserWordStats(userID int) (*models.WordStats, error) {
	utils.LogDB("Calculating word stats for user %d", userID)
	start := time.Now()

	stats := &models.WordStats{}
	var totalCorrect int

	err := db.QueryRow(`
        SELECT COUNT(*),
               COALESCE(SUM(CASE WHEN status = 'unknown' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN status = 'learning' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(CASE WHEN status = 'known' THEN 1 ELSE 0 END), 0),
               COALESCE(SUM(review_count), 0),
               COALESCE(SUM(correct_count), 0)
        FROM words WHERE user_id = ?
    `, userID).Scan(&stats.TotalWords, &stats.Unknown, &stats.Learning,
		&stats.Known, &stats.TotalReviews, &totalCorrect)
	if err != nil {
		utils.LogError("Failed to get word stats for user %d: %v", userID, err)
		return nil, err
	}

	if stats.TotalReviews > 0 {
		stats.Accuracy = float64(totalCorrect) / float64(stats.TotalReviews)
	}

	duration := time.Since(start)
	utils.LogDB("Word stats for user %d: %d words (%d known), %d reviews (%.1f%%) in %v",
		userID, stats.TotalWords, stats.Known, stats.TotalReviews, stats.Accuracy*100, duration)
	return stats, nil
}

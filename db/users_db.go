package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"language-companion-api/models"
	"language-companion-api/utils"
)

// CreateUser inserts a new user with an already-hashed password.
func (db *DB) CreateUser(req models.UserRequest, passwordHash string) (*models.User, error) {
	utils.LogDB("Creating user '%s'", req.Username)
	start := time.Now()

	result, err := db.Exec(`
        INSERT INTO users (username, email, password_hash)
        VALUES (?, ?, ?)
    `, req.Username, req.Email, passwordHash)

	if err != nil {
		duration := time.Since(start)
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			utils.LogDB("CreateUser: username or email already taken (%v)", duration)
			return nil, fmt.Errorf("username or email already exists")
		}
		utils.LogError("CreateUser failed: %v (%v)", err, duration)
		return nil, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		utils.LogError("Failed to get user LastInsertId: %v", err)
		return nil, err
	}

	duration := time.Since(start)
	utils.LogDB("User created with ID %d in %v", id, duration)
	return db.GetUserByID(int(id))
}

func (db *DB) GetUserByID(id int) (*models.User, error) {
	var u models.User
	err := db.QueryRow(`
        SELECT id, username, email, created_at, updated_at
        FROM users WHERE id = ?
    `, id).Scan(&u.ID, &u.Username, &u.Email, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			utils.LogDB("User ID %d not found", id)
		} else {
			utils.LogError("GetUserByID(%d) failed: %v", id, err)
		}
		return nil, err
	}
	return &u, nil
}

// GetUserForLogin returns the user plus the stored password hash.
func (db *DB) GetUserForLogin(username string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := db.QueryRow(`
        SELECT id, username, email, password_hash, created_at, updated_at
        FROM users WHERE username = ?
    `, username).Scan(&u.ID, &u.Username, &u.Email, &hash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			utils.LogDB("User '%s' not found", username)
		} else {
			utils.LogError("GetUserForLogin(%s) failed: %v", username, err)
		}
		return nil, "", err
	}
	return &u, hash, nil
}

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// User is a leaderboard account.
type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	HighScore    int
	CreatedAt    time.Time
}

// LeaderboardRow is one line of the public leaderboard.
type LeaderboardRow struct {
	Username  string
	HighScore int
}

// CreateUser inserts a new account. Returns ErrDuplicate if the username
// is taken.
func (s *Store) CreateUser(username string, passwordHash []byte) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO users (username, password_hash) VALUES (?, ?)",
		username, passwordHash,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, fmt.Errorf("storage: user %q: %w", username, ErrDuplicate)
		}
		return 0, fmt.Errorf("storage: cannot create user: %w", err)
	}
	return result.LastInsertId()
}

// UserByName looks up an account by username.
func (s *Store) UserByName(username string) (*User, error) {
	return s.queryUser("WHERE username = ?", username)
}

// UserByToken resolves a session token that has not expired at now.
func (s *Store) UserByToken(token string, now time.Time) (*User, error) {
	return s.queryUser(
		"WHERE id = (SELECT user_id FROM tokens WHERE token = ? AND expires_at > ?)",
		token, now.UTC().Format(timeLayout),
	)
}

func (s *Store) queryUser(where string, args ...any) (*User, error) {
	var u User
	var createdAt any
	err := s.db.QueryRow(
		"SELECT id, username, password_hash, high_score, created_at FROM users "+where,
		args...,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.HighScore, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query user: %w", err)
	}
	u.CreatedAt = parseTime(createdAt)
	return &u, nil
}

// UpdateHighScore raises the user's high score to score if it is higher.
// Returns the stored high score.
func (s *Store) UpdateHighScore(userID int64, score int) (int, error) {
	if _, err := s.db.Exec(
		"UPDATE users SET high_score = ? WHERE id = ? AND high_score < ?",
		score, userID, score,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot update high score: %w", err)
	}

	var high int
	err := s.db.QueryRow("SELECT high_score FROM users WHERE id = ?", userID).Scan(&high)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read high score: %w", err)
	}
	return high, nil
}

// Leaderboard returns users with a non-zero high score, best first.
func (s *Store) Leaderboard(limit int) ([]LeaderboardRow, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(
		`SELECT username, high_score FROM users
		 WHERE high_score > 0
		 ORDER BY high_score DESC, username ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var board []LeaderboardRow
	for rows.Next() {
		var r LeaderboardRow
		if err := rows.Scan(&r.Username, &r.HighScore); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		board = append(board, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return board, nil
}

// CreateToken stores a session token for userID valid until expiresAt.
func (s *Store) CreateToken(token string, userID int64, expiresAt time.Time) error {
	_, err := s.db.Exec(
		"INSERT INTO tokens (token, user_id, expires_at) VALUES (?, ?, ?)",
		token, userID, expiresAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot create token: %w", err)
	}
	return nil
}

// DeleteToken revokes a session token.
func (s *Store) DeleteToken(token string) error {
	if _, err := s.db.Exec("DELETE FROM tokens WHERE token = ?", token); err != nil {
		return fmt.Errorf("storage: cannot delete token: %w", err)
	}
	return nil
}

// PurgeExpiredTokens removes tokens that expired before now.
// Returns the number of removed tokens.
func (s *Store) PurgeExpiredTokens(now time.Time) (int64, error) {
	res, err := s.db.Exec("DELETE FROM tokens WHERE expires_at <= ?", now.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("storage: cannot purge tokens: %w", err)
	}
	return res.RowsAffected()
}

// Package leaderboard implements the remote account and high-score service:
// an HTTP JSON server backed by storage, a client for it, and reporters that
// feed Infinite-mode game-over scores to the client.
package leaderboard

import "errors"

var (
	// ErrUnauthorized is returned when the bearer token is missing, unknown or expired.
	ErrUnauthorized = errors.New("leaderboard: unauthorized")

	// ErrUserExists is returned when registering a taken username.
	ErrUserExists = errors.New("leaderboard: username already taken")

	// ErrInvalidCredentials is returned when login fails.
	ErrInvalidCredentials = errors.New("leaderboard: invalid username or password")

	// ErrInvalidInput is returned for malformed requests.
	ErrInvalidInput = errors.New("leaderboard: invalid input")
)

// Request and response bodies.

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type ScoreUpdate struct {
	Score int `json:"score"`
}

type Entry struct {
	Username  string `json:"username"`
	HighScore int    `json:"highscore"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

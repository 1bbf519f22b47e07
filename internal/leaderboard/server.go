package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,32}$`)

const (
	minPasswordLen = 4
	maxPasswordLen = 72 // bcrypt input limit
	maxBodyBytes   = 1 << 12
)

// ServerConfig holds configuration for the leaderboard server.
type ServerConfig struct {
	Addr     string
	TokenTTL time.Duration
	HashCost int
}

// DefaultServerConfig returns sensible defaults.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:     ":8080",
		TokenTTL: 30 * 24 * time.Hour,
		HashCost: bcrypt.DefaultCost,
	}
}

// Server serves the account and leaderboard API.
type Server struct {
	config ServerConfig
	store  *storage.Store
	logger *log.Logger
	now    func() time.Time
}

// NewServer creates a leaderboard server over store.
func NewServer(store *storage.Store, cfg ServerConfig, logger *log.Logger) *Server {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = DefaultServerConfig().TokenTTL
	}
	if cfg.HashCost == 0 {
		cfg.HashCost = bcrypt.DefaultCost
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		config: cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Handler returns the HTTP handler with all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.authenticated(s.handleLogout))
	mux.HandleFunc("GET /me", s.authenticated(s.handleMe))
	mux.HandleFunc("GET /leaderboard", s.authenticated(s.handleLeaderboard))
	mux.HandleFunc("POST /update_user_score", s.authenticated(s.handleUpdateScore))
	return s.logRequests(mux)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting leaderboard server", "addr", s.config.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("leaderboard: server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down leaderboard server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("leaderboard: shutdown: %w", err)
	}
	return nil
}

type tokenKey struct{}

// authenticated resolves the bearer token and stores the user in the
// request context.
func (s *Server) authenticated(next func(http.ResponseWriter, *http.Request, *storage.User)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		user, err := s.store.UserByToken(token, s.now())
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		if err != nil {
			s.internalError(w, "resolve token", err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), tokenKey{}, token)), user)
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	token = strings.TrimSpace(token)
	return token, ok && token != ""
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if !decode(w, r, &creds) {
		return
	}
	if err := validateCredentials(creds); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.config.HashCost)
	if err != nil {
		s.internalError(w, "hash password", err)
		return
	}
	if _, err := s.store.CreateUser(creds.Username, hash); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(w, http.StatusConflict, ErrUserExists)
			return
		}
		s.internalError(w, "create user", err)
		return
	}

	s.logger.Info("Registered user", "username", creds.Username)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds Credentials
	if !decode(w, r, &creds) {
		return
	}

	user, err := s.store.UserByName(creds.Username)
	if errors.Is(err, storage.ErrNotFound) {
		writeError(w, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}
	if err != nil {
		s.internalError(w, "find user", err)
		return
	}
	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(creds.Password)) != nil {
		writeError(w, http.StatusUnauthorized, ErrInvalidCredentials)
		return
	}

	token := uuid.NewString()
	if err := s.store.CreateToken(token, user.ID, s.now().Add(s.config.TokenTTL)); err != nil {
		s.internalError(w, "create token", err)
		return
	}
	writeJSON(w, http.StatusOK, TokenResponse{Token: token})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request, _ *storage.User) {
	token, _ := r.Context().Value(tokenKey{}).(string)
	if err := s.store.DeleteToken(token); err != nil {
		s.internalError(w, "delete token", err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleMe(w http.ResponseWriter, _ *http.Request, user *storage.User) {
	writeJSON(w, http.StatusOK, Entry{Username: user.Username, HighScore: user.HighScore})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, _ *http.Request, _ *storage.User) {
	rows, err := s.store.Leaderboard(100)
	if err != nil {
		s.internalError(w, "leaderboard", err)
		return
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{Username: row.Username, HighScore: row.HighScore})
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleUpdateScore(w http.ResponseWriter, r *http.Request, user *storage.User) {
	var upd ScoreUpdate
	if !decode(w, r, &upd) {
		return
	}
	if upd.Score < 0 {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: negative score", ErrInvalidInput))
		return
	}
	high, err := s.store.UpdateHighScore(user.ID, upd.Score)
	if err != nil {
		s.internalError(w, "update score", err)
		return
	}
	s.logger.Debug("Score update", "username", user.Username, "score", upd.Score, "highscore", high)
	writeJSON(w, http.StatusOK, Entry{Username: user.Username, HighScore: high})
}

func validateCredentials(c Credentials) error {
	if !usernamePattern.MatchString(c.Username) {
		return fmt.Errorf("%w: username must be 3-32 letters, digits, '_' or '-'", ErrInvalidInput)
	}
	if n := len(c.Password); n < minPasswordLen || n > maxPasswordLen {
		return fmt.Errorf("%w: password must be %d-%d bytes", ErrInvalidInput, minPasswordLen, maxPasswordLen)
	}
	return nil
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("%w: %v", ErrInvalidInput, err))
		return false
	}
	return true
}

func (s *Server) internalError(w http.ResponseWriter, op string, err error) {
	s.logger.Error("Request failed", "op", op, "error", err)
	writeError(w, http.StatusInternalServerError, errors.New("internal error"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // Client went away
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// logRequests logs each request with its status and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

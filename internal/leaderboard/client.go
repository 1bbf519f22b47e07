package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Client talks to a leaderboard server.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient creates a client for baseURL authenticated with token (may be empty).
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Authenticated reports whether the client holds a token.
func (c *Client) Authenticated() bool {
	return c.Token != ""
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	return c.do(ctx, http.MethodPost, "/register", Credentials{Username: username, Password: password}, nil, false)
}

// Login exchanges credentials for a token and stores it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp TokenResponse
	err := c.do(ctx, http.MethodPost, "/login", Credentials{Username: username, Password: password}, &resp, false)
	if errors.Is(err, ErrUnauthorized) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", fmt.Errorf("leaderboard: empty token in login response")
	}
	c.Token = resp.Token
	return resp.Token, nil
}

// Logout revokes the token on the server and forgets it.
func (c *Client) Logout(ctx context.Context) error {
	if c.Token == "" {
		return nil
	}
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil, true)
	c.Token = ""
	if errors.Is(err, ErrUnauthorized) {
		return nil
	}
	return err
}

// Me returns the account behind the token. It fails with ErrUnauthorized
// when the token is no longer valid.
func (c *Client) Me(ctx context.Context) (Entry, error) {
	var e Entry
	err := c.do(ctx, http.MethodGet, "/me", nil, &e, true)
	return e, err
}

// UpdateHighScore submits a score and returns the stored high score.
func (c *Client) UpdateHighScore(ctx context.Context, score int) (int, error) {
	var e Entry
	if err := c.do(ctx, http.MethodPost, "/update_user_score", ScoreUpdate{Score: score}, &e, true); err != nil {
		return 0, err
	}
	return e.HighScore, nil
}

// Leaderboard returns entries with a non-zero high score, best first.
func (c *Client) Leaderboard(ctx context.Context) ([]Entry, error) {
	var entries []Entry
	if err := c.do(ctx, http.MethodGet, "/leaderboard", nil, &entries, true); err != nil {
		return nil, err
	}
	filtered := entries[:0]
	for _, e := range entries {
		if e.HighScore > 0 {
			filtered = append(filtered, e)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].HighScore > filtered[j].HighScore
	})
	return filtered, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, auth bool) error {
	if auth && c.Token == "" {
		return ErrUnauthorized
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("leaderboard: encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("leaderboard: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("leaderboard: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return statusError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("leaderboard: decode %s response: %w", path, err)
	}
	return nil
}

// statusError maps a non-200 response to a sentinel error.
func statusError(resp *http.Response) error {
	var e ErrorResponse
	json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&e) //nolint:errcheck // Body is optional
	msg := e.Error
	if msg == "" {
		msg = resp.Status
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusConflict:
		return ErrUserExists
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.TrimPrefix(msg, ErrInvalidInput.Error()+": "))
	default:
		return fmt.Errorf("leaderboard: server returned %s: %s", resp.Status, msg)
	}
}

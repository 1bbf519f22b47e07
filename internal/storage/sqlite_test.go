package storage

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		mode    string
		score   int
		outcome Outcome
	}{
		{"classic", 100, OutcomeLost},
		{"classic", 50, OutcomeLost},
		{"classic", 798, OutcomeWon},
		{"arcade", 500, OutcomeLost},
	} {
		if _, err := store.SaveScore(s.mode, s.score, s.outcome, s.score+1); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("classic", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	want := []int{798, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Outcome != OutcomeWon || scores[0].Length != 799 {
		t.Errorf("top entry = %+v", scores[0])
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not parsed")
	}

	arcade, err := store.TopScores("arcade", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(arcade) != 1 || arcade[0].Score != 500 {
		t.Errorf("arcade scores = %+v", arcade)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore("infinite", i*10, OutcomeLost, 1); err != nil {
			t.Fatal(err)
		}
	}

	scores, err := store.TopScores("infinite", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	all, err := store.AllScores("infinite")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(all))
	}
}

func TestStoreHighScoreAndClear(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("classic")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty mode, got %d", high)
	}

	store.SaveScore("classic", 12, OutcomeLost, 13)
	store.SaveScore("classic", 40, OutcomeLost, 41)
	store.SaveScore("arcade", 99, OutcomeLost, 60)

	if high, _ = store.HighScore("classic"); high != 40 {
		t.Errorf("HighScore = %d, want 40", high)
	}

	if err := store.ClearScores("classic"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if scores, _ := store.TopScores("classic", 10); len(scores) != 0 {
		t.Errorf("Expected no classic scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("arcade", 10); len(scores) != 1 {
		t.Error("ClearScores removed another mode's scores")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("classic", 10, OutcomeLost, 11)
	store.SaveScore("classic", 798, OutcomeWon, 799)
	store.SaveScore("arcade", 30, OutcomeLost, 31)

	stats, err := store.GetGameStats("classic")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 798 || stats.TotalScore != 808 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 404 {
		t.Errorf("AvgScore = %v, want 404", stats.AvgScore)
	}

	empty, err := store.GetGameStats("infinite")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["arcade"] == nil || all["arcade"].HighScore != 30 {
		t.Errorf("all stats = %+v", all)
	}
}

func TestSummarize(t *testing.T) {
	if d := Summarize(nil); d.Count != 0 {
		t.Errorf("empty summary = %+v", d)
	}

	single := Summarize([]ScoreEntry{{Score: 7}})
	if single.Mean != 7 || single.Median != 7 || single.StdDev != 0 {
		t.Errorf("single summary = %+v", single)
	}

	entries := []ScoreEntry{{Score: 2}, {Score: 4}, {Score: 4}, {Score: 4}, {Score: 5}, {Score: 5}, {Score: 7}, {Score: 9}}
	d := Summarize(entries)
	if d.Count != 8 || d.Mean != 5 {
		t.Errorf("summary = %+v", d)
	}
	if d.Median != 4 {
		t.Errorf("median = %v, want 4", d.Median)
	}
	// Sample standard deviation of the set above.
	if want := math.Sqrt(32.0 / 7.0); math.Abs(d.StdDev-want) > 1e-9 {
		t.Errorf("stddev = %v, want %v", d.StdDev, want)
	}
}

func TestExportCSV(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("arcade", 55, OutcomeLost, 20)
	store.SaveScore("arcade", 999, OutcomeWon, 300)

	entries, err := store.AllScores("arcade")
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, entries); err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "id,mode,score,outcome,length,played_at") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], ",arcade,999,won,300,") {
		t.Errorf("first row = %q", lines[1])
	}
}

func TestAccounts(t *testing.T) {
	store := openTestStore(t)

	id, err := store.CreateUser("alice", []byte("hash"))
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	if _, err := store.CreateUser("alice", []byte("other")); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate user error = %v, want ErrDuplicate", err)
	}

	u, err := store.UserByName("alice")
	if err != nil {
		t.Fatalf("UserByName() failed: %v", err)
	}
	if u.ID != id || string(u.PasswordHash) != "hash" || u.HighScore != 0 {
		t.Errorf("user = %+v", u)
	}
	if _, err := store.UserByName("bob"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user error = %v, want ErrNotFound", err)
	}

	for _, tt := range []struct{ score, want int }{{50, 50}, {20, 50}, {80, 80}} {
		got, err := store.UpdateHighScore(id, tt.score)
		if err != nil {
			t.Fatalf("UpdateHighScore() failed: %v", err)
		}
		if got != tt.want {
			t.Errorf("UpdateHighScore(%d) = %d, want %d", tt.score, got, tt.want)
		}
	}
	if _, err := store.UpdateHighScore(id+100, 10); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown user error = %v, want ErrNotFound", err)
	}
}

func TestLeaderboardOrder(t *testing.T) {
	store := openTestStore(t)

	for name, score := range map[string]int{"alice": 120, "bob": 300, "carol": 0, "dave": 120} {
		id, err := store.CreateUser(name, []byte("x"))
		if err != nil {
			t.Fatal(err)
		}
		if score > 0 {
			store.UpdateHighScore(id, score)
		}
	}

	board, err := store.Leaderboard(10)
	if err != nil {
		t.Fatalf("Leaderboard() failed: %v", err)
	}
	want := []LeaderboardRow{{"bob", 300}, {"alice", 120}, {"dave", 120}}
	if len(board) != len(want) {
		t.Fatalf("board = %+v, want %+v", board, want)
	}
	for i := range want {
		if board[i] != want[i] {
			t.Errorf("board[%d] = %+v, want %+v", i, board[i], want[i])
		}
	}
}

func TestTokens(t *testing.T) {
	store := openTestStore(t)
	id, _ := store.CreateUser("alice", []byte("x"))
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	if err := store.CreateToken("live", id, now.Add(time.Hour)); err != nil {
		t.Fatalf("CreateToken() failed: %v", err)
	}
	if err := store.CreateToken("stale", id, now.Add(-time.Hour)); err != nil {
		t.Fatalf("CreateToken() failed: %v", err)
	}

	u, err := store.UserByToken("live", now)
	if err != nil || u.Username != "alice" {
		t.Fatalf("UserByToken(live) = %v, %v", u, err)
	}
	if _, err := store.UserByToken("stale", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("expired token error = %v, want ErrNotFound", err)
	}
	if _, err := store.UserByToken("nope", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token error = %v, want ErrNotFound", err)
	}

	n, err := store.PurgeExpiredTokens(now)
	if err != nil || n != 1 {
		t.Errorf("PurgeExpiredTokens = %d, %v; want 1", n, err)
	}

	if err := store.DeleteToken("live"); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}
	if _, err := store.UserByToken("live", now); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoked token error = %v, want ErrNotFound", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.snake/scores.db")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".snake", "scores.db")); err != nil {
		t.Errorf("database not created under HOME: %v", err)
	}
}

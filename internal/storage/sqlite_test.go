package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
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

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SaveHighScore("attract", 420); err != nil {
		t.Fatalf("SaveHighScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if got, _ := store.LoadHighScore("attract"); got != 420 {
		t.Errorf("high score after reopen = %d, want 420", got)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("attract", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("attract_open", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("attract", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
		if scores[i].GameID != "attract" {
			t.Errorf("scores[%d] game = %q", i, scores[i].GameID)
		}
	}

	open, err := store.TopScores("attract_open", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(open) != 1 || open[0].Score != 500 {
		t.Errorf("attract_open scores = %+v", open)
	}
}

func TestStoreRunIDs(t *testing.T) {
	store := openTestStore(t)

	id1, err := store.SaveScore("attract", 10)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	id2, _ := store.SaveScore("attract", 20)

	if id1 == id2 {
		t.Error("run IDs must be unique")
	}
	if _, err := uuid.Parse(id1); err != nil {
		t.Errorf("run ID %q is not a UUID: %v", id1, err)
	}

	entry, err := store.ScoreByRun(id2)
	if err != nil {
		t.Fatalf("ScoreByRun() failed: %v", err)
	}
	if entry == nil || entry.Score != 20 || entry.RunID != id2 {
		t.Errorf("ScoreByRun = %+v", entry)
	}
	if entry != nil && entry.CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}

	missing, err := store.ScoreByRun(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("unknown run = %+v, %v; want nil, nil", missing, err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 20 {
		if _, err := store.SaveScore("attract", i*10); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores("attract", 5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected top score 190, got %d", scores[0].Score)
	}

	// Non-positive limit falls back to 10
	scores, _ = store.TopScores("attract", 0)
	if len(scores) != 10 {
		t.Errorf("Expected default limit 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("attract")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty game, got %d", high)
	}

	store.SaveScore("attract", 100)
	store.SaveScore("attract", 300)
	store.SaveScore("attract", 200)

	high, _ = store.HighScore("attract")
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStorePersistedHighScoreOnlyRises(t *testing.T) {
	store := openTestStore(t)

	if got, err := store.LoadHighScore("attract"); err != nil || got != 0 {
		t.Fatalf("LoadHighScore on empty = %d, %v", got, err)
	}

	steps := []struct {
		save int
		want int
	}{
		{save: 150, want: 150},
		{save: 90, want: 150},
		{save: 150, want: 150},
		{save: 610, want: 610},
	}
	for _, s := range steps {
		if err := store.SaveHighScore("attract", s.save); err != nil {
			t.Fatalf("SaveHighScore(%d) failed: %v", s.save, err)
		}
		if got, _ := store.LoadHighScore("attract"); got != s.want {
			t.Errorf("after saving %d: high = %d, want %d", s.save, got, s.want)
		}
	}

	if got, _ := store.LoadHighScore("attract_open"); got != 0 {
		t.Errorf("high scores leak across games: %d", got)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("attract", 100)
	store.SaveScore("attract_open", 200)
	store.SaveHighScore("attract", 100)

	if err := store.ClearScores("attract"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, _ := store.TopScores("attract", 10)
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if high, _ := store.LoadHighScore("attract"); high != 0 {
		t.Errorf("high score survived clear: %d", high)
	}

	other, _ := store.TopScores("attract_open", 10)
	if len(other) != 1 {
		t.Errorf("Expected other game untouched, got %d scores", len(other))
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("attract")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.RunsCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("attract", 100)
	store.SaveScore("attract", 300)
	store.SaveHighScore("attract", 450)

	stats, err := store.GetGameStats("attract")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.RunsCount != 2 {
		t.Errorf("runs = %d, want 2", stats.RunsCount)
	}
	if stats.HighScore != 450 {
		t.Errorf("high = %d, want persisted 450", stats.HighScore)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("avg=%v total=%d", stats.AvgScore, stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played not set")
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.kiosk-idle/test.db")
	if err != nil {
		t.Fatalf("Open() with ~ failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".kiosk-idle", "test.db")); err != nil {
		t.Errorf("database not created under home: %v", err)
	}
}

package storage

import (
	"os"
	"path/filepath"
	"testing"
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
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

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
	if err := store.Set("breakoutHighScore", 1234); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	v, ok, err := store.Get("breakoutHighScore")
	if err != nil || !ok || v != 1234 {
		t.Errorf("Get() = (%d, %v, %v), expected (1234, true, nil)", v, ok, err)
	}
}

func TestStoreKeyValue(t *testing.T) {
	store := openTestStore(t)

	v, ok, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok || v != 0 {
		t.Errorf("Get(missing) = (%d, %v), expected (0, false)", v, ok)
	}

	if err := store.Set("k", 10); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("k", 25); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok, err = store.Get("k")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok || v != 25 {
		t.Errorf("Get(k) = (%d, %v), expected (25, true)", v, ok)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("breakout", s, 2); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("memory", 500, 1); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("breakout", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	expected := []int{200, 100, 50}
	for i, e := range scores {
		if e.Score != expected[i] {
			t.Errorf("scores[%d] = %d, expected %d", i, e.Score, expected[i])
		}
		if e.Level != 2 {
			t.Errorf("scores[%d].Level = %d, expected 2", i, e.Level)
		}
		if e.GameID != "breakout" {
			t.Errorf("scores[%d].GameID = %q", i, e.GameID)
		}
	}

	other, err := store.TopScores("memory", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 memory score, got %d", len(other))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100, 1)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	for i := 0; i < 10; i++ {
		store.SaveScore("test", i, 1)
	}
	scores, _ = store.TopScores("test", 0)
	if len(scores) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("breakout", 100, 1)
	store.SaveScore("breakout", 300, 3)
	store.SaveScore("breakout", 200, 2)

	high, err = store.HighScore("breakout")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("breakout", 100, 1)
	store.SaveScore("breakout", 200, 1)
	store.SaveScore("memory", 300, 1)

	if err := store.ClearScores("breakout"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("breakout", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 breakout scores after clear, got %d", len(cleared))
	}

	kept, _ := store.TopScores("memory", 10)
	if len(kept) != 1 {
		t.Errorf("Other games should not be affected by clearing breakout")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GameStats("breakout")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	store.SaveScore("breakout", 100, 1)
	store.SaveScore("breakout", 300, 4)
	store.SaveScore("memory", 7, 1)

	stats, err := store.GameStats("breakout")
	if err != nil {
		t.Fatalf("GameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 300 || stats.TotalScore != 400 || stats.AvgScore != 200 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.BestLevel != 4 {
		t.Errorf("BestLevel = %d, expected 4", stats.BestLevel)
	}

	all, err := store.AllGamesStats()
	if err != nil {
		t.Fatalf("AllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["memory"].HighScore != 7 {
		t.Errorf("memory high = %d, expected 7", all["memory"].HighScore)
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

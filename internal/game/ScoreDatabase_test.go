package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSQLiteStoreKeepsMaximum(t *testing.T) {
	store, err := NewSQLStore(DriverSQLite, filepath.Join(t.TempDir(), "highscores.db"))
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	defer store.Close()

	score, err := store.ReadHighScore()
	if err != nil || score != 0 {
		t.Fatalf("expected 0 from an empty table, got %d (%v)", score, err)
	}

	for _, s := range []int{5, 12, 3} {
		if err := store.WriteHighScore(s); err != nil {
			t.Fatalf("WriteHighScore(%d): %v", s, err)
		}
	}

	score, err = store.ReadHighScore()
	if err != nil || score != 12 {
		t.Errorf("expected 12, got %d (%v)", score, err)
	}
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscores.db")
	store, err := NewSQLStore(DriverSQLite, path)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	NewHighScoreService(store).Save(42)
	store.Close()

	reopened, err := NewSQLStore(DriverSQLite, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	if got := NewHighScoreService(reopened).Load(); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
}

func TestNewSQLStoreUnknownDriver(t *testing.T) {
	if _, err := NewSQLStore("mysql", "whatever"); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestPostgresStore(t *testing.T) {
	dsn := os.Getenv("SNAKE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("SNAKE_TEST_POSTGRES_DSN not set")
	}

	store, err := NewSQLStore(DriverPostgres, dsn)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	defer store.Close()

	before, err := store.ReadHighScore()
	if err != nil {
		t.Fatalf("ReadHighScore: %v", err)
	}
	if err := store.WriteHighScore(before + 1); err != nil {
		t.Fatalf("WriteHighScore: %v", err)
	}
	if got, _ := store.ReadHighScore(); got != before+1 {
		t.Errorf("expected %d, got %d", before+1, got)
	}
}

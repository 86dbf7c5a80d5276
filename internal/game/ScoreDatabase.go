package game

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"

	tableName = "high_scores"
)

type sqlDialect struct {
	createTable string
	insert      string
	selectMax   string
}

var dialects = map[string]sqlDialect{
	DriverSQLite: {
		createTable: `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		score INTEGER NOT NULL,
		recorded_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);`,
		insert:    `INSERT INTO ` + tableName + ` (score) VALUES (?);`,
		selectMax: `SELECT COALESCE(MAX(score), 0) FROM ` + tableName + `;`,
	},
	DriverPostgres: {
		createTable: `
	CREATE TABLE IF NOT EXISTS ` + tableName + ` (
		id SERIAL PRIMARY KEY,
		score INTEGER NOT NULL,
		recorded_at TIMESTAMPTZ DEFAULT now()
	);`,
		insert:    `INSERT INTO ` + tableName + ` (score) VALUES ($1);`,
		selectMax: `SELECT COALESCE(MAX(score), 0) FROM ` + tableName + `;`,
	},
}

// SQLStore keeps every new record as a row; the high score is the maximum.
type SQLStore struct {
	db      *sql.DB
	dialect sqlDialect
}

// NewSQLStore opens the database, checks the connection and ensures the
// table exists. driver is DriverSQLite or DriverPostgres.
func NewSQLStore(driver, dsn string) (*SQLStore, error) {
	dialect, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported score database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach %s database: %w", driver, err)
	}

	store := &SQLStore{db: db, dialect: dialect}
	if err := store.createTable(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLStore) createTable() error {
	if _, err := s.db.Exec(s.dialect.createTable); err != nil {
		return fmt.Errorf("failed to execute CREATE TABLE: %w", err)
	}
	log.Debug("High scores table ensured.")
	return nil
}

func (s *SQLStore) ReadHighScore() (int, error) {
	var score int
	if err := s.db.QueryRow(s.dialect.selectMax).Scan(&score); err != nil {
		return 0, fmt.Errorf("failed to query high score: %w", err)
	}
	return score, nil
}

func (s *SQLStore) WriteHighScore(score int) error {
	if score < 0 {
		return errNegativeScore
	}
	if _, err := s.db.Exec(s.dialect.insert, score); err != nil {
		return fmt.Errorf("failed to insert high score %d: %w", score, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

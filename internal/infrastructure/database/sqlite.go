package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SQLiteClient local readings store for offline use and bench testing
type SQLiteClient struct {
	DB *sql.DB
}

// NewSQLiteClient opens (and creates if needed) the database at path.
// ":memory:" gives a private in-memory database.
func NewSQLiteClient(path string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", path, err)
	}
	// in-memory databases are per connection
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cell_readings (
			cell_row          INTEGER NOT NULL,
			cell_col          INTEGER NOT NULL,
			survivors         INTEGER NOT NULL DEFAULT 0,
			building_damage   BOOLEAN NOT NULL DEFAULT 0,
			flood             BOOLEAN NOT NULL DEFAULT 0,
			flood_prediction  BOOLEAN NOT NULL DEFAULT 0,
			notes             TEXT NOT NULL DEFAULT '',
			updated_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (cell_row, cell_col)
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cell_readings table: %w", err)
	}

	return &SQLiteClient{DB: db}, nil
}

// Close closes the database
func (sc *SQLiteClient) Close() error {
	if sc.DB != nil {
		return sc.DB.Close()
	}
	return nil
}

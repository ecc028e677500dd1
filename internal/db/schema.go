package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const SchemaSQL = `
CREATE TABLE IF NOT EXISTS volumes (
    id TEXT PRIMARY KEY,
    pages INTEGER,
    total_tokens INTEGER,
    body_tokens INTEGER,
    header_tokens INTEGER,
    sentence_count INTEGER,
    line_count INTEGER,
    type_token REAL,
    sentence_length REAL,
    line_length REAL
);

CREATE TABLE IF NOT EXISTS features (
    volume_id TEXT,
    feature TEXT,
    value REAL,
    PRIMARY KEY (volume_id, feature)
);
`

func Open(path string) (*sql.DB, error) {
	// Batch workers may write concurrently; wait on locks instead of failing.
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(SchemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return db, nil
}

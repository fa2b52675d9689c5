package store

import "database/sql"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS price_points (
  source TEXT NOT NULL,
  time TEXT NOT NULL,
  price REAL NOT NULL,
  UNIQUE(source, time)
);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  triggered_by TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT,
  status TEXT NOT NULL,
  error TEXT,
  revision TEXT
);

CREATE INDEX IF NOT EXISTS idx_price_points_source_time ON price_points(source, time);
CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
`

func bootstrapSchema(db *sql.DB) error {
	_, err := db.Exec(schemaSQL)
	return err
}

package store

import (
	"time"

	"pricewatch/internal/models"
)

// RunRow is one recorded pipeline run.
type RunRow struct {
	ID        int64
	Trigger   string
	StartedAt string
	EndedAt   string
	Status    string
	Error     string
	Revision  string
}

// BeginRun records the start of a run and returns its id.
func (s *Store) BeginRun(trigger models.Trigger, startedAt time.Time) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO runs (triggered_by, started_at, status) VALUES (?, ?, 'running')",
		string(trigger), startedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// FinishRun records the outcome of a run started with BeginRun.
func (s *Store) FinishRun(id int64, result *models.RunResult) error {
	status := "success"
	errMsg := ""
	if result.Error != nil {
		status = "failed"
		errMsg = string(result.Error.Type) + ": " + result.Error.Message
	}
	_, err := s.db.Exec(
		"UPDATE runs SET ended_at = ?, status = ?, error = ?, revision = ? WHERE id = ?",
		result.Timestamps.EndedAt.UTC().Format(time.RFC3339), status, errMsg, result.Revision, id)
	return err
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRow, error) {
	rows, err := s.db.Query(
		"SELECT id, triggered_by, started_at, COALESCE(ended_at, ''), status, COALESCE(error, ''), COALESCE(revision, '') FROM runs ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRow
	for rows.Next() {
		var r RunRow
		if err := rows.Scan(&r.ID, &r.Trigger, &r.StartedAt, &r.EndedAt, &r.Status, &r.Error, &r.Revision); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

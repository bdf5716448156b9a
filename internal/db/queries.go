package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// CycleRecord is one completed poll cycle as stored in the history.
type CycleRecord struct {
	ID          int64
	At          time.Time
	TotalTokens int64
	Requests    int64
	Cost        float64
	AlertCount  int
	Err         string
}

// InsertCycle appends a poll cycle to the history.
func (db *DB) InsertCycle(rec *CycleRecord) error {
	query := `
		INSERT INTO cycles (at, total_tokens, requests, cost, alert_count, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	at := rec.At
	if at.IsZero() {
		at = time.Now()
	}

	result, err := db.ExecContext(context.Background(), query,
		at.Format("2006-01-02 15:04:05"),
		rec.TotalTokens,
		rec.Requests,
		rec.Cost,
		rec.AlertCount,
		nullString(rec.Err),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		rec.ID = id
	}

	return nil
}

// RecentCycles returns up to limit of the most recent cycles in
// chronological order, oldest first.
func (db *DB) RecentCycles(limit int) ([]CycleRecord, error) {
	query := `
		SELECT id, at, total_tokens, requests, cost, alert_count, error
		FROM (
			SELECT id, at, total_tokens, requests, cost, alert_count, error
			FROM cycles
			ORDER BY id DESC
			LIMIT ?
		)
		ORDER BY id ASC
	`

	rows, err := db.QueryContext(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent cycles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var cycles []CycleRecord
	for rows.Next() {
		var rec CycleRecord
		var atStr string
		var errStr sql.NullString

		err := rows.Scan(
			&rec.ID,
			&atStr,
			&rec.TotalTokens,
			&rec.Requests,
			&rec.Cost,
			&rec.AlertCount,
			&errStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}

		if t, perr := time.Parse("2006-01-02 15:04:05", atStr); perr == nil {
			rec.At = t
		}
		rec.Err = errStr.String
		cycles = append(cycles, rec)
	}

	return cycles, rows.Err()
}

// CycleCount returns the number of cycles recorded this session.
func (db *DB) CycleCount() (int, error) {
	var count int
	err := db.QueryRowContext(context.Background(), "SELECT COUNT(*) FROM cycles").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count cycles: %w", err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

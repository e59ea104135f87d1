package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"rosync/internal/ports"
	"rosync/internal/types"
)

const (
	historyBusyTimeoutMs = 5000
	defaultHistoryLimit  = 20
)

const historySchema = `
CREATE TABLE IF NOT EXISTS sync_runs (
	id          TEXT PRIMARY KEY,
	path        TEXT NOT NULL,
	changed     INTEGER NOT NULL,
	dry_run     INTEGER NOT NULL,
	removals    INTEGER NOT NULL,
	updates     INTEGER NOT NULL,
	creations   INTEGER NOT NULL,
	moves       INTEGER NOT NULL,
	error       TEXT,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sync_runs_started_at ON sync_runs (started_at);
`

// HistorySQLiteAdapter stores one row per reconciliation run.
type HistorySQLiteAdapter struct {
	db *sql.DB
}

func OpenHistorySQLiteAdapter(path string) (*HistorySQLiteAdapter, error) {
	if path == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("history database path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create history directory").
			WithCause(err)
	}
	dsn := fmt.Sprintf("file:%s?_busy_timeout=%d&_journal_mode=WAL", path, historyBusyTimeoutMs)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open history database").
			WithCause(err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to migrate history database").
			WithCause(err)
	}
	return &HistorySQLiteAdapter{db: db}, nil
}

func (a *HistorySQLiteAdapter) Record(ctx context.Context, record types.RunRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO sync_runs (id, path, changed, dry_run, removals, updates, creations, moves, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Path, record.Changed, record.DryRun,
		record.Summary.Removals, record.Summary.Updates, record.Summary.Creations, record.Summary.Moves,
		nullableText(record.Error),
		record.StartedAt.UTC().Format(time.RFC3339Nano),
		record.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to record sync run").
			WithCause(err)
	}
	return nil
}

// Recent returns the latest runs, newest first.
func (a *HistorySQLiteAdapter) Recent(ctx context.Context, limit int) ([]types.RunRecord, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	rows, err := a.db.QueryContext(ctx,
		`SELECT id, path, changed, dry_run, removals, updates, creations, moves, error, started_at, finished_at
		 FROM sync_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to query sync runs").
			WithCause(err)
	}
	defer rows.Close()

	var out []types.RunRecord
	for rows.Next() {
		var record types.RunRecord
		var failure sql.NullString
		var startedAt, finishedAt string
		if err := rows.Scan(&record.ID, &record.Path, &record.Changed, &record.DryRun,
			&record.Summary.Removals, &record.Summary.Updates, &record.Summary.Creations, &record.Summary.Moves,
			&failure, &startedAt, &finishedAt); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to scan sync run").
				WithCause(err)
		}
		record.Error = failure.String
		record.StartedAt = parseRunTime(startedAt)
		record.FinishedAt = parseRunTime(finishedAt)
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read sync runs").
			WithCause(err)
	}
	return out, nil
}

func (a *HistorySQLiteAdapter) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// Rows written by Record use RFC 3339. Rows inserted by hand with
// sqlite's datetime() are accepted too.
var runTimeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05"}

func parseRunTime(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range runTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

func nullableText(s string) any {
	if s == "" {
		return nil
	}
	return s
}

var _ ports.HistoryPort = (*HistorySQLiteAdapter)(nil)

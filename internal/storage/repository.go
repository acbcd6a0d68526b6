// Package storage keeps a local history of generated reports in SQLite so
// past weeks can be listed and re-rendered without refetching.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"weeknab/internal/core"
	"weeknab/internal/report"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db *sql.DB
}

// Run is one stored report run.
type Run struct {
	ID        int64
	BudgetID  string
	Week      core.ReportingWeek
	CreatedAt time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// SaveRun persists one report run with its rows and returns the run id.
func (r *SQLiteRepository) SaveRun(ctx context.Context, budgetID string, week core.ReportingWeek, rows []report.Row) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO report_runs (budget_id, week_start, week_end, week_number) VALUES (?, ?, ?, ?)`,
		budgetID, week.Start.String(), week.End.String(), week.Number)
	if err != nil {
		return 0, fmt.Errorf("insert report run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO report_rows (run_id, position, category_name, group_name, budgeted, balance, spent)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		if _, err := stmt.ExecContext(ctx, runID, i, row.CategoryName, row.GroupName,
			row.Budgeted, row.Balance, row.Spent); err != nil {
			return 0, fmt.Errorf("insert report row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit report run: %w", err)
	}

	slog.InfoContext(ctx, "Report run saved",
		"run_id", runID,
		"budget_id", budgetID,
		"week_start", week.Start.String(),
		"rows", len(rows))

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (r *SQLiteRepository) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, budget_id, week_start, week_end, week_number, created_at
		 FROM report_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query report runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			start, end string
		)
		if err := rows.Scan(&run.ID, &run.BudgetID, &start, &end, &run.Week.Number, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report run: %w", err)
		}
		if run.Week.Start, err = core.ParseDate(start); err != nil {
			return nil, fmt.Errorf("stored week start: %w", err)
		}
		if run.Week.End, err = core.ParseDate(end); err != nil {
			return nil, fmt.Errorf("stored week end: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunRows loads the stored rows of a run in their original order. Goal
// fields are not persisted; re-rendered history shows amounts only.
func (r *SQLiteRepository) RunRows(ctx context.Context, runID int64) ([]report.Row, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_name, group_name, budgeted, balance, spent
		 FROM report_rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query report rows: %w", err)
	}
	defer rows.Close()

	var result []report.Row
	for rows.Next() {
		var row report.Row
		if err := rows.Scan(&row.CategoryName, &row.GroupName, &row.Budgeted, &row.Balance, &row.Spent); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

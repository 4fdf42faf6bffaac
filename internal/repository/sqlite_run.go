package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sprintsense/internal/domain"
)

// SQLiteRunRepo implements RunRepo using a SQLite database.
type SQLiteRunRepo struct {
	db *sql.DB
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo.
func NewSQLiteRunRepo(db *sql.DB) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: db}
}

const runColumns = `id, kind, work_item_id, items_checked, items_with_issues,
	tasks_created, tasks_failed, fields_updated, summary, started_at, finished_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, rec *domain.RunRecord) error {
	query := `INSERT INTO runs (` + runColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		string(rec.Kind),
		rec.WorkItemID,
		rec.ItemsChecked,
		rec.ItemsWithIssues,
		rec.TasksCreated,
		rec.TasksFailed,
		rec.FieldsUpdated,
		rec.Summary,
		rec.StartedAt.UTC().Format(time.RFC3339),
		rec.FinishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE id = ?`
	return r.scanRun(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing recent runs: %w", err)
	}
	defer rows.Close()
	return r.scanRuns(rows)
}

func (r *SQLiteRunRepo) ListByKind(ctx context.Context, kind domain.RunKind, limit int) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE kind = ? ORDER BY started_at DESC LIMIT ?`
	rows, err := r.db.QueryContext(ctx, query, string(kind), limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs by kind: %w", err)
	}
	defer rows.Close()
	return r.scanRuns(rows)
}

func (r *SQLiteRunRepo) ListByWorkItem(ctx context.Context, workItemID int) ([]*domain.RunRecord, error) {
	query := `SELECT ` + runColumns + ` FROM runs WHERE work_item_id = ? ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, workItemID)
	if err != nil {
		return nil, fmt.Errorf("listing runs by work item: %w", err)
	}
	defer rows.Close()
	return r.scanRuns(rows)
}

func (r *SQLiteRunRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting run record: %w", err)
	}
	return nil
}

func (r *SQLiteRunRepo) scanRun(row *sql.Row) (*domain.RunRecord, error) {
	var rec domain.RunRecord
	var kind, startedAtStr, finishedAtStr string

	err := row.Scan(
		&rec.ID, &kind, &rec.WorkItemID, &rec.ItemsChecked, &rec.ItemsWithIssues,
		&rec.TasksCreated, &rec.TasksFailed, &rec.FieldsUpdated, &rec.Summary,
		&startedAtStr, &finishedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("run record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning run record: %w", err)
	}

	return r.populateRun(&rec, kind, startedAtStr, finishedAtStr)
}

func (r *SQLiteRunRepo) scanRuns(rows *sql.Rows) ([]*domain.RunRecord, error) {
	var records []*domain.RunRecord
	for rows.Next() {
		var rec domain.RunRecord
		var kind, startedAtStr, finishedAtStr string

		err := rows.Scan(
			&rec.ID, &kind, &rec.WorkItemID, &rec.ItemsChecked, &rec.ItemsWithIssues,
			&rec.TasksCreated, &rec.TasksFailed, &rec.FieldsUpdated, &rec.Summary,
			&startedAtStr, &finishedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning run row: %w", err)
		}

		record, parseErr := r.populateRun(&rec, kind, startedAtStr, finishedAtStr)
		if parseErr != nil {
			return nil, parseErr
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return records, nil
}

// populateRun fills in parsed fields on a RunRecord after scanning raw strings.
func (r *SQLiteRunRepo) populateRun(rec *domain.RunRecord, kind, startedAtStr, finishedAtStr string) (*domain.RunRecord, error) {
	rec.Kind = domain.RunKind(kind)

	var parseErr error
	rec.StartedAt, parseErr = time.Parse(time.RFC3339, startedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing started_at: %w", parseErr)
	}
	rec.FinishedAt, parseErr = time.Parse(time.RFC3339, finishedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", parseErr)
	}
	return rec, nil
}

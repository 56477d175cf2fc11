package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/roadmap/internal/db"
	"github.com/alexanderramin/roadmap/internal/domain"
)

// SQLiteProgressRepo implements ProgressRepo. Save rewrites a day's
// checklist wholesale, so callers wanting atomicity run it in a UnitOfWork.
type SQLiteProgressRepo struct {
	db db.DBTX
}

func NewSQLiteProgressRepo(conn db.DBTX) *SQLiteProgressRepo {
	return &SQLiteProgressRepo{db: conn}
}

func (r *SQLiteProgressRepo) Save(ctx context.Context, p domain.Progress) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO unit_progress (day, status, time_spent_hours, confidence, notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(day) DO UPDATE SET
			status = excluded.status,
			time_spent_hours = excluded.time_spent_hours,
			confidence = excluded.confidence,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		p.Index, string(p.Status), nullableFloat(p.TimeSpentHours), nullableInt(p.ConfidenceLevel), p.Notes, nowUTC())
	if err != nil {
		return fmt.Errorf("saving progress for day %d: %w", p.Index, err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM checklist_items WHERE day = ?`, p.Index); err != nil {
		return fmt.Errorf("clearing checklist for day %d: %w", p.Index, err)
	}
	for pos, item := range p.Checklist {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO checklist_items (day, item_id, position, text, done) VALUES (?, ?, ?, ?, ?)`,
			p.Index, item.ID, pos, item.Text, boolToInt(item.Done))
		if err != nil {
			return fmt.Errorf("saving checklist item %s for day %d: %w", item.ID, p.Index, err)
		}
	}
	return nil
}

func (r *SQLiteProgressRepo) Get(ctx context.Context, day int) (*domain.Progress, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT day, status, time_spent_hours, confidence, notes FROM unit_progress WHERE day = ?`, day)
	p, err := scanProgress(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("progress for day %d: %w", day, ErrNotFound)
		}
		return nil, err
	}

	items, err := r.listItems(ctx, `WHERE day = ?`, day)
	if err != nil {
		return nil, err
	}
	p.Checklist = items[day]
	return &p, nil
}

func (r *SQLiteProgressRepo) List(ctx context.Context) ([]domain.Progress, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, status, time_spent_hours, confidence, notes FROM unit_progress ORDER BY day`)
	if err != nil {
		return nil, fmt.Errorf("listing progress: %w", err)
	}
	defer rows.Close()

	var out []domain.Progress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating progress: %w", err)
	}
	rows.Close()

	items, err := r.listItems(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Checklist = items[out[i].Index]
	}
	return out, nil
}

func (r *SQLiteProgressRepo) Delete(ctx context.Context, day int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM unit_progress WHERE day = ?`, day); err != nil {
		return fmt.Errorf("deleting progress for day %d: %w", day, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProgress(s scanner) (domain.Progress, error) {
	var (
		p          domain.Progress
		status     string
		timeSpent  sql.NullFloat64
		confidence sql.NullInt64
	)
	if err := s.Scan(&p.Index, &status, &timeSpent, &confidence, &p.Notes); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return p, err
		}
		return p, fmt.Errorf("scanning progress: %w", err)
	}
	p.Status = domain.Status(status)
	p.TimeSpentHours = floatPtr(timeSpent)
	p.ConfidenceLevel = intPtr(confidence)
	return p, nil
}

// listItems returns checklist items grouped by day, in position order.
func (r *SQLiteProgressRepo) listItems(ctx context.Context, where string, args ...any) (map[int][]domain.ChecklistItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT day, item_id, text, done FROM checklist_items `+where+` ORDER BY day, position`, args...)
	if err != nil {
		return nil, fmt.Errorf("listing checklist items: %w", err)
	}
	defer rows.Close()

	out := make(map[int][]domain.ChecklistItem)
	for rows.Next() {
		var (
			day  int
			item domain.ChecklistItem
			done int
		)
		if err := rows.Scan(&day, &item.ID, &item.Text, &done); err != nil {
			return nil, fmt.Errorf("scanning checklist item: %w", err)
		}
		item.Done = intToBool(done)
		out[day] = append(out[day], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating checklist items: %w", err)
	}
	return out, nil
}

package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/conference-registration/internal/model"
)

// PeriodRepo provides access to the early_bird_periods table.  Period
// resolution is a live predicate: every call queries the database so that a
// window an admin just closed stops applying on the very next request.
type PeriodRepo struct{ DB *sql.DB }

// NewPeriodRepo returns a PeriodRepo bound to the given database.
func NewPeriodRepo(db *sql.DB) *PeriodRepo { return &PeriodRepo{DB: db} }

// ActivePeriod returns the active period whose inclusive [start_date,
// end_date] window contains now.  When several overlap, the one with the
// latest end date wins; this favors extended periods deterministically
// regardless of insertion order.  No matching period returns (nil, nil),
// meaning regular pricing applies.
func (r *PeriodRepo) ActivePeriod(ctx context.Context, now time.Time) (*model.EarlyBirdPeriod, error) {
	const q = `SELECT id, start_date, end_date, is_active, created_at
			   FROM early_bird_periods
			   WHERE is_active = 1 AND start_date <= ? AND end_date >= ?
			   ORDER BY end_date DESC
			   LIMIT 1`
	var p model.EarlyBirdPeriod
	err := r.DB.QueryRowContext(ctx, q, now, now).Scan(
		&p.ID, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a new period and returns its ID.  Creation is additive:
// older periods keep whatever active flag they had, which is why the
// latest-end-date tie-break in ActivePeriod matters.
func (r *PeriodRepo) Create(ctx context.Context, startDate, endDate time.Time, isActive bool) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO early_bird_periods (start_date, end_date, is_active) VALUES (?,?,?)",
		startDate, endDate, isActive)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// List returns all periods, most recently ending first.
func (r *PeriodRepo) List(ctx context.Context) ([]model.EarlyBirdPeriod, error) {
	const q = `SELECT id, start_date, end_date, is_active, created_at
			   FROM early_bird_periods ORDER BY end_date DESC`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var periods []model.EarlyBirdPeriod
	for rows.Next() {
		var p model.EarlyBirdPeriod
		if err := rows.Scan(&p.ID, &p.StartDate, &p.EndDate, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// SetActive flips the active flag of one period.
func (r *PeriodRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE early_bird_periods SET is_active=? WHERE id=?", active, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var exists uint64
		if err := r.DB.QueryRowContext(ctx,
			"SELECT id FROM early_bird_periods WHERE id=? LIMIT 1", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/conference-registration/internal/model"
)

// FeeRepo provides access to the registration_fees table.  The table is
// read on every fee quote and mutated only through the admin price editor,
// so reads deliberately go straight to the database with no caching layer.
type FeeRepo struct{ DB *sql.DB }

// NewFeeRepo returns a FeeRepo bound to the given database.
func NewFeeRepo(db *sql.DB) *FeeRepo { return &FeeRepo{DB: db} }

// GetByType returns the fee row for a registration type.  A missing row is
// reported as (nil, nil): absence is a domain outcome ("unconfigured"), not
// a database error.
func (r *FeeRepo) GetByType(ctx context.Context, registrationType string) (*model.RegistrationFee, error) {
	const q = `SELECT id, registration_type, regular_fee, early_bird_fee, updated_at
			   FROM registration_fees WHERE registration_type = ? LIMIT 1`
	var f model.RegistrationFee
	err := r.DB.QueryRowContext(ctx, q, registrationType).Scan(
		&f.ID, &f.RegistrationType, &f.RegularFee, &f.EarlyBirdFee, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// List returns every fee row ordered by registration type for stable output.
func (r *FeeRepo) List(ctx context.Context) ([]model.RegistrationFee, error) {
	const q = `SELECT id, registration_type, regular_fee, early_bird_fee, updated_at
			   FROM registration_fees ORDER BY registration_type`
	rows, err := r.DB.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var fees []model.RegistrationFee
	for rows.Next() {
		var f model.RegistrationFee
		if err := rows.Scan(&f.ID, &f.RegistrationType, &f.RegularFee, &f.EarlyBirdFee, &f.UpdatedAt); err != nil {
			return nil, err
		}
		fees = append(fees, f)
	}
	return fees, rows.Err()
}

// UpdateFees sets the regular and early-bird price of one fee row.  The new
// values are visible to the next quote immediately.  Returns ErrNotFound
// when the id does not exist.
func (r *FeeRepo) UpdateFees(ctx context.Context, id uint64, regularFee, earlyBirdFee int64) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE registration_fees SET regular_fee=?, early_bird_fee=? WHERE id=?",
		regularFee, earlyBirdFee, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the values did not change; confirm the
		// row exists before reporting not found.
		var exists uint64
		if err := r.DB.QueryRowContext(ctx,
			"SELECT id FROM registration_fees WHERE id=? LIMIT 1", id).Scan(&exists); err == sql.ErrNoRows {
			return ErrNotFound
		} else if err != nil {
			return err
		}
	}
	return nil
}

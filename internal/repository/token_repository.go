package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/conference-registration/internal/model"
)

// TokenRepo stores refresh-token hashes for dashboard sessions.  Only the
// SHA-256 hash ever reaches the database, never the raw token.
type TokenRepo struct{ DB *sql.DB }

func NewTokenRepo(db *sql.DB) *TokenRepo { return &TokenRepo{DB: db} }

// StoreRefresh records a newly issued refresh token.
func (r *TokenRepo) StoreRefresh(ctx context.Context, userID uint64, tokenHash string, expiresAt time.Time) error {
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO refresh_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`,
		userID, tokenHash, expiresAt)
	return err
}

// ValidateRefresh looks up a token hash and returns the owning user ID.
// Revoked and expired tokens both surface as sql.ErrNoRows so callers
// treat them the same as an unknown token.
func (r *TokenRepo) ValidateRefresh(ctx context.Context, tokenHash string) (uint64, error) {
	var (
		rt      model.RefreshToken
		revoked sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, user_id, token_hash, expires_at, revoked_at, created_at
		 FROM refresh_tokens WHERE token_hash = ? LIMIT 1`,
		tokenHash).Scan(&rt.ID, &rt.UserID, &rt.TokenHash, &rt.ExpiresAt, &revoked, &rt.CreatedAt)
	if err != nil {
		return 0, err
	}
	if revoked.Valid {
		rt.RevokedAt = &revoked.Time
	}
	if rt.RevokedAt != nil || time.Now().UTC().After(rt.ExpiresAt) {
		return 0, sql.ErrNoRows
	}
	return rt.UserID, nil
}

// RevokeByHash revokes a single token, used on logout and on rotation.
func (r *TokenRepo) RevokeByHash(ctx context.Context, tokenHash string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE token_hash = ? AND revoked_at IS NULL`,
		tokenHash)
	return err
}

// RevokeAllForUser ends every active session of a user at once.
func (r *TokenRepo) RevokeAllForUser(ctx context.Context, userID uint64) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = ? AND revoked_at IS NULL`,
		userID)
	return err
}

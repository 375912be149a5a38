package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenRow(userID int64, expiresAt time.Time, revokedAt driver.Value) stubResultSet {
	return stubResultSet{
		match: "FROM refresh_tokens",
		cols:  []string{"id", "user_id", "token_hash", "expires_at", "revoked_at", "created_at"},
		rows: [][]driver.Value{
			{int64(1), userID, []byte("aabbcc"), expiresAt, revokedAt, time.Now().UTC()},
		},
	}
}

func TestValidateRefreshReturnsOwner(t *testing.T) {
	conn := &stubConn{results: []stubResultSet{
		tokenRow(7, time.Now().UTC().Add(time.Hour), nil),
	}}
	repo := NewTokenRepo(openStubDB(t, conn))

	userID, err := repo.ValidateRefresh(context.Background(), "aabbcc")
	require.NoError(t, err)
	assert.Equal(t, uint64(7), userID)
}

func TestValidateRefreshRejectsRevoked(t *testing.T) {
	conn := &stubConn{results: []stubResultSet{
		tokenRow(7, time.Now().UTC().Add(time.Hour), time.Now().UTC().Add(-time.Minute)),
	}}
	repo := NewTokenRepo(openStubDB(t, conn))

	_, err := repo.ValidateRefresh(context.Background(), "aabbcc")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestValidateRefreshRejectsExpired(t *testing.T) {
	conn := &stubConn{results: []stubResultSet{
		tokenRow(7, time.Now().UTC().Add(-time.Hour), nil),
	}}
	repo := NewTokenRepo(openStubDB(t, conn))

	_, err := repo.ValidateRefresh(context.Background(), "aabbcc")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestRevokeAllForUserUpdatesActiveRows(t *testing.T) {
	conn := &stubConn{}
	repo := NewTokenRepo(openStubDB(t, conn))

	require.NoError(t, repo.RevokeAllForUser(context.Background(), 7))
	require.Len(t, conn.execLog, 1)
	assert.Contains(t, conn.execLog[0], "UPDATE refresh_tokens SET revoked_at = NOW()")
	assert.Contains(t, conn.execLog[0], "user_id = ? AND revoked_at IS NULL")
}

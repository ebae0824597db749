package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// openMetadata opens an in-memory SQLite database with the key/value layout
// the client keeps its access token in.
func openMetadata(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value BLOB NOT NULL)`)
	require.NoError(t, err)
	return db
}

func putPair(ctx context.Context, tx DBTX, token, storedAt string) error {
	for k, v := range map[string]string{"accessToken": token, "tokenStoredAt": storedAt} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES (?, ?)`, k, v); err != nil {
			return err
		}
	}
	return nil
}

func keys(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT key FROM metadata ORDER BY key`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var k string
		require.NoError(t, rows.Scan(&k))
		out = append(out, k)
	}
	require.NoError(t, rows.Err())
	return out
}

func TestWithTx_TokenAndTimestampCommitTogether(t *testing.T) {
	db := openMetadata(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return putPair(ctx, tx, "jwt", "1767225600000")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"accessToken", "tokenStoredAt"}, keys(t, db))
}

func TestWithTx_FailedSecondWriteLeavesNoToken(t *testing.T) {
	db := openMetadata(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('accessToken', 'jwt')`); err != nil {
			return err
		}
		// duplicate key
		_, err := tx.ExecContext(ctx, `INSERT INTO metadata(key, value) VALUES ('accessToken', 'other')`)
		return err
	})
	require.Error(t, err)
	assert.Empty(t, keys(t, db))
}

func TestWithTx_PanicRollsBackAndPropagates(t *testing.T) {
	db := openMetadata(t)

	require.PanicsWithValue(t, "storage driver bug", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			require.NoError(t, putPair(ctx, tx, "jwt", "1"))
			panic("storage driver bug")
		})
	})
	assert.Empty(t, keys(t, db))
}

func TestWithTx_ClosedDatabase(t *testing.T) {
	db := openMetadata(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		t.Fatal("fn must not run without a transaction")
		return nil
	})
	require.ErrorContains(t, err, "begin tx")
}

func TestWithTx_CallbackErrorIsReturnedAsIs(t *testing.T) {
	db := openMetadata(t)
	errNoToken := errors.New("no token in login response")

	err := WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		return errNoToken
	})
	require.ErrorIs(t, err, errNoToken)
	assert.Equal(t, errNoToken.Error(), err.Error())
}

func TestWithTx_CommitErrorWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM metadata`).
		WithArgs("accessToken", "tokenStoredAt").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	err = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		_, err := tx.ExecContext(ctx, `DELETE FROM metadata WHERE key IN (?, ?)`, "accessToken", "tokenStoredAt")
		return err
	})
	require.ErrorContains(t, err, "commit tx: database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}

package repositories

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

type seedRow struct {
	id      int64
	symbol  string
	status  string
	message interface{} // nil stores NULL
	ts      interface{}
}

// openSeeded creates a file database holding pipeline_logs with the given rows.
// tsType is the declared type of the timestamp column.
func openSeeded(t *testing.T, tsType string, rows []seedRow) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "pipeline.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE pipeline_logs (
		id INTEGER PRIMARY KEY,
		symbol TEXT,
		status TEXT,
		message TEXT,
		"timestamp" ` + tsType + `
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO pipeline_logs (id, symbol, status, message, "timestamp") VALUES (?, ?, ?, ?, ?)`,
			r.id, r.symbol, r.status, r.message, r.ts)
		require.NoError(t, err)
	}
	return db
}

package repositories

import "fmt"

// FetchLimit caps the number of rows read per report.
const FetchLimit = 100

// logColumns is the projection every dialect reads. "timestamp" is quoted
// because it is a reserved word in Oracle and a type name elsewhere.
const logColumns = `id, symbol, status, message, "timestamp"`

// Dialect selects the row-limiting syntax of the source database.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite3"
	DialectPostgres Dialect = "postgres"

	// DialectOracle reads the column as "timestamp", lowercase and quoted. Oracle
	// matches quoted names case-sensitively, so a column created as TIMESTAMP
	// (or "TIMESTAMP") must be exposed through a view with a lowercase alias.
	DialectOracle Dialect = "godror"
)

func (d Dialect) limitClause(n int) string {
	if d == DialectOracle {
		return fmt.Sprintf("FETCH FIRST %d ROWS ONLY", n)
	}
	return fmt.Sprintf("LIMIT %d", n)
}

// RecentLogsQuery builds the read query for table.
// By default it reads the first FetchLimit rows in ascending id order. With newest
// set it reads the FetchLimit highest ids and still returns them ascending.
func (d Dialect) RecentLogsQuery(table string, newest bool) string {
	if !newest {
		return fmt.Sprintf(`SELECT %s FROM %s ORDER BY id ASC %s`, logColumns, table, d.limitClause(FetchLimit))
	}
	return fmt.Sprintf(`SELECT %s FROM (SELECT %s FROM %s ORDER BY id DESC %s) recent ORDER BY id ASC`,
		logColumns, logColumns, table, d.limitClause(FetchLimit))
}

// Package database provides a DataSource which reads the result of a SQL query.
// The sqlite3 and duckdb database/sql drivers are registered by this package.
package database

// Package postgres implements the store interfaces against PostgreSQL,
// accessed through database/sql with the pgx stdlib driver. Each store
// accepts a DBTX so it can run against either the pool or a transaction.
package postgres

// Package postgres provides PostgreSQL implementations of the store
// interfaces. Each store accepts a store.DBTX so it can run against either
// a *sql.DB or a *sql.Tx, and exposes WithTx to rebind itself to an open
// transaction.
package postgres

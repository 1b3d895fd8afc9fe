// Package postgres implements the store interfaces on PostgreSQL using
// database/sql with the pgx stdlib driver. Each store accepts a store.DBTX
// so it can run on a plain connection or be rebound to a transaction via
// WithTx. Database errors are translated to store sentinel errors through
// MapError so callers never match on driver-specific error types.
package postgres

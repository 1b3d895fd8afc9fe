// Package store defines the persistence interfaces for the application's
// entities, the shared sentinel errors, and the transaction helper. The
// interfaces are implemented for PostgreSQL in internal/platform/postgres;
// services depend only on this package so any backend can be substituted.
package store

// Package store defines the persistence interfaces the services depend on:
// vocabulary cards, per-card scheduling state, and study-session summaries.
// Implementations live in internal/platform/postgres. The DBTX abstraction
// lets every store run against either a connection or a transaction.
package store

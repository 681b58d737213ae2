// Package resources holds the content record written by the Medium importer
// and the repositories that store it: an in-memory store used by tests and
// dry runs, and a bun-backed store for SQLite or Postgres.
package resources

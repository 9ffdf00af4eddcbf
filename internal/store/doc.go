// Package store persists submission records in SQLite. Answer values are
// stored as JSON text so the schemaless per-type shapes survive round trips
// unchanged.
package store

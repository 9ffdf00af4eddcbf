// Package stats renders persisted answers for the aggregate statistics
// table. Cell is a total function over (type, stored value): malformed values
// fall back to the closest generic presentation instead of failing the table.
// Columns always derive from the current instance model, not from the
// per-submission snapshots, so editing a form after collection changes which
// stored values are shown.
package stats

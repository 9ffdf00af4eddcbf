// Package answers collects respondent input during fill-in and converts the
// raw value map into the wire-format answer list at submission time.
//
// The Collector is the session-scoped value store: one entry per instance,
// last write wins. The Normalizer applies the per-type coercion rules that
// turn raw widget values into durable answer entries. Required-field gating
// runs against raw values before normalization and blocks submission locally
// when unsatisfied.
package answers

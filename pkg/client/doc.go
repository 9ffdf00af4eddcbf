// Package client talks to the answer-persistence service: it submits
// completed respondent sessions and pages through stored answers for the
// statistics table.
package client

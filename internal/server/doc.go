// Package server exposes the answer-persistence service over HTTP: it
// accepts submissions, serves paginated statistics pages, and optionally
// renders the publish page for a hosted questionnaire.
package server

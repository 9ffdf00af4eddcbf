// Package importer bootstraps questionnaire definitions from OpenAPI
// documents: each property of an operation's request schema becomes a
// question instance with a type inferred from the schema shape.
package importer

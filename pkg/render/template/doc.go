// Package template defines the renderer-agnostic template contract that page
// rendering depends on. Concrete engines live in subpackages so the pongo2
// backend stays swappable.
package template

// Package render dispatches component instances to their registered widget
// renderers. One dispatch contract serves the design canvas, the author
// preview, and the respondent answer surface; the mode decides which
// descriptor role runs and whether the widget is interactive.
package render

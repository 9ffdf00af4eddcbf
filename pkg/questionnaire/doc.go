// Package questionnaire models a form definition: the ordered list of
// configured component instances an author assembles on the canvas. The
// definition is owned by the author at design time and read-only to
// respondents.
package questionnaire

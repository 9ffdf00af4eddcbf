// Package fill runs a respondent session in the terminal: it walks the
// visible instances of a questionnaire, prompts per question type, feeds the
// answer collector, and submits the normalized record.
package fill

package answers

import (
	"time"

	"github.com/ZRMYDYCG/QuizzyFlow-sub002/pkg/material"
)

// AnswerEntry is one normalized answer on the wire. Type is a snapshot taken
// at submission time and stays valid even if the instance is later retyped
// or removed.
type AnswerEntry struct {
	InstanceID string        `json:"instanceId"`
	Type       material.Type `json:"typeId"`
	Value      any           `json:"value"`
}

// SubmissionRecord is one completed respondent session. Records are written
// once and never edited; a correction is a new record.
type SubmissionRecord struct {
	QuestionID         string        `json:"questionId"`
	Entries            []AnswerEntry `json:"answerList"`
	ElapsedFillSeconds int64         `json:"duration"`
	SubmittedAt        time.Time     `json:"submittedAt"`
}

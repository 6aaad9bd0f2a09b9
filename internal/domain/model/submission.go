package model

import "time"

type SubmissionStatus string

const (
	StatusAttempted SubmissionStatus = "attempted"
	StatusSolved    SubmissionStatus = "solved"
)

// Submission records that a user attempted or solved a question. The status
// is asserted by the caller; nothing here ties it to execution results.
type Submission struct {
	ID         string           `json:"id"`
	UserID     string           `json:"user_id"`
	QuestionID string           `json:"question_id"`
	Status     SubmissionStatus `json:"status"`
	Timestamp  time.Time        `json:"timestamp"`
}

package model

import "time"

type ExecutionStatus string

const (
	ExecStatusQueued   ExecutionStatus = "Queued"
	ExecStatusFinished ExecutionStatus = "Finished"
	ExecStatusError    ExecutionStatus = "Error"
)

// ExecutionJob is the payload queued for the external code executor. Jobs are
// ephemeral: they live on the Redis queue and their results expire after a
// configured TTL. Nothing about sandboxing is decided here.
type ExecutionJob struct {
	ID         string    `json:"id"`
	Language   string    `json:"language"`
	Code       string    `json:"code"`
	Stdin      string    `json:"stdin"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ExecutionResult is what the external executor reports back for a job.
type ExecutionResult struct {
	JobID    string          `json:"job_id"`
	Status   ExecutionStatus `json:"status"`
	Stdout   string          `json:"stdout"`
	Stderr   string          `json:"stderr"`
	ExitCode int             `json:"exit_code"`
	Error    string          `json:"error,omitempty"`
}

package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

// Job is one unit of asynchronous processing work. VideoID is set only
// once the job has succeeded and references the published video record.
type Job struct {
	ID           string
	VideoURL     string
	Status       JobStatus
	ErrorMessage string
	VideoID      string
	Attempts     int64
	CreatedAt    time.Time
	StartedAt    sql.NullTime
	CompletedAt  sql.NullTime
}

func NewJob(videoURL string) *Job {
	return &Job{
		ID:        uuid.NewString(),
		VideoURL:  videoURL,
		Status:    JobStatusPending,
		CreatedAt: time.Now(),
	}
}

// IsTerminal reports whether the job can no longer change state.
func (j *Job) IsTerminal() bool {
	return j.Status == JobStatusSucceeded || j.Status == JobStatusFailed
}

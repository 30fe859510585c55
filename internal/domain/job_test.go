package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewJob(t *testing.T) {
	job := NewJob("https://example.com/video.mp4")

	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "https://example.com/video.mp4", job.VideoURL)
	assert.Equal(t, JobStatusPending, job.Status)
	assert.Empty(t, job.VideoID)
	assert.Empty(t, job.ErrorMessage)
	assert.WithinDuration(t, time.Now(), job.CreatedAt, time.Second)

	other := NewJob("https://example.com/video.mp4")
	assert.NotEqual(t, job.ID, other.ID)
}

func TestJobIsTerminal(t *testing.T) {
	tests := []struct {
		status   JobStatus
		terminal bool
	}{
		{JobStatusPending, false},
		{JobStatusRunning, false},
		{JobStatusSucceeded, true},
		{JobStatusFailed, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			job := Job{Status: tt.status}
			assert.Equal(t, tt.terminal, job.IsTerminal())
		})
	}
}

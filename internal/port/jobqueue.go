package port

import "github.com/bnema/proctor/internal/domain"

type JobQueue interface {
	Enqueue(videoURL string) (*domain.Job, error)
	Get(id string) (*domain.Job, error)
	Claim() (*domain.Job, error)
	Complete(id, videoID string) error
	Fail(id, errMsg string) error
	ResetStalled() error
}

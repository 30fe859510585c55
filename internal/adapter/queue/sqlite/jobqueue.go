package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/bnema/proctor/internal/domain"
	"github.com/bnema/proctor/internal/port"
)

const jobColumns = "id, video_url, status, error_message, video_id, attempts, created_at, started_at, completed_at"

type JobQueue struct {
	db *sql.DB
}

func NewJobQueue(store *Store) *JobQueue {
	return &JobQueue{db: store.db}
}

func (q *JobQueue) Enqueue(videoURL string) (*domain.Job, error) {
	job := domain.NewJob(videoURL)

	ctx := context.Background()
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO jobs (id, video_url, status, created_at) VALUES (?, ?, ?, ?)`,
		job.ID, job.VideoURL, string(job.Status), job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}

func (q *JobQueue) Get(id string) (*domain.Job, error) {
	ctx := context.Background()
	row := q.db.QueryRowContext(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ?`, id)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// Claim atomically moves the oldest pending job to running and returns it.
// Returns nil, nil when no job is pending.
func (q *JobQueue) Claim() (*domain.Job, error) {
	ctx := context.Background()
	row := q.db.QueryRowContext(ctx,
		`UPDATE jobs
		 SET status = ?, attempts = attempts + 1, started_at = ?
		 WHERE id = (
		     SELECT id FROM jobs WHERE status = ? ORDER BY created_at, id LIMIT 1
		 )
		 RETURNING `+jobColumns,
		string(domain.JobStatusRunning), time.Now(), string(domain.JobStatusPending),
	)

	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return job, nil
}

func (q *JobQueue) Complete(id, videoID string) error {
	ctx := context.Background()
	_, err := q.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, video_id = ?, completed_at = ? WHERE id = ?`,
		string(domain.JobStatusSucceeded), videoID, time.Now(), id,
	)
	return err
}

func (q *JobQueue) Fail(id, errMsg string) error {
	ctx := context.Background()
	_, err := q.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, error_message = ?, completed_at = ? WHERE id = ?`,
		string(domain.JobStatusFailed), errMsg, time.Now(), id,
	)
	return err
}

// ResetStalled re-pends jobs left running by a crashed worker so they get
// picked up again after restart.
func (q *JobQueue) ResetStalled() error {
	ctx := context.Background()
	_, err := q.db.ExecContext(ctx,
		`UPDATE jobs SET status = ?, started_at = NULL WHERE status = ?`,
		string(domain.JobStatusPending), string(domain.JobStatusRunning),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*domain.Job, error) {
	var job domain.Job
	var status string
	if err := row.Scan(
		&job.ID,
		&job.VideoURL,
		&status,
		&job.ErrorMessage,
		&job.VideoID,
		&job.Attempts,
		&job.CreatedAt,
		&job.StartedAt,
		&job.CompletedAt,
	); err != nil {
		return nil, err
	}
	job.Status = domain.JobStatus(status)
	return &job, nil
}

var _ port.JobQueue = (*JobQueue)(nil)

package port

import (
	"context"

	"github.com/bnema/proctor/internal/domain"
)

// ProcessResult carries the rendered video and its report. Both still live
// in the worker's scratch directory; publishing them is the caller's job.
type ProcessResult struct {
	VideoPath string
	Report    *domain.Report
}

type Processor interface {
	Process(ctx context.Context, inputPath, workDir, videoID string) (*ProcessResult, error)
}

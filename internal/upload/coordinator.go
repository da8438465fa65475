// Package upload batches local resume files into one request and keeps the
// resume cache honest about what the server actually stored.
package upload

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dkoval/hirematch/internal/cache"
	"github.com/dkoval/hirematch/internal/talentwire"
)

// ErrNoFiles is returned before any network IO when the batch is empty.
var ErrNoFiles = errors.New("no files selected for upload")

type uploader interface {
	UploadResumes(ctx context.Context, files []talentwire.UploadFile) (*talentwire.UploadOutcome, error)
}

type Coordinator struct {
	client  uploader
	resumes *cache.Cache[*talentwire.Resume]
	logger  *zap.Logger
}

func NewCoordinator(client uploader, resumes *cache.Cache[*talentwire.Resume], logger *zap.Logger) *Coordinator {
	return &Coordinator{
		client:  client,
		resumes: resumes,
		logger:  logger,
	}
}

// Upload sends all files in a single batched request. Any response from the
// server, even one reporting per-file failures, triggers a resume cache
// refresh so the visible list reflects exactly what the server now holds. A
// transport failure leaves the cache untouched.
func (c *Coordinator) Upload(ctx context.Context, files []talentwire.UploadFile) (*talentwire.UploadOutcome, error) {
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	batchID := uuid.NewString()
	c.logger.Info("uploading resume batch",
		zap.String("batch_id", batchID),
		zap.Int("files", len(files)),
	)

	outcome, err := c.client.UploadResumes(ctx, files)
	if err != nil {
		return nil, err
	}

	for _, failure := range outcome.Failures {
		c.logger.Warn("file rejected by server",
			zap.String("batch_id", batchID),
			zap.String("filename", failure.Filename),
			zap.String("reason", failure.Reason),
		)
	}

	if _, err := c.resumes.InvalidateAndRefresh(ctx); err != nil {
		// The upload itself settled; a failed refetch must not mask its
		// outcome. The next refresh catches the list up.
		c.logger.Warn("refreshing resumes after upload", zap.String("batch_id", batchID), zap.Error(err))
	}

	c.logger.Info("resume batch settled",
		zap.String("batch_id", batchID),
		zap.Int("uploaded", outcome.UploadedCount),
		zap.Int("failed", len(outcome.Failures)),
	)

	return outcome, nil
}

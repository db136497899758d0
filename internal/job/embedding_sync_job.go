package job

import (
	"context"

	appErr "github.com/paperly/paperly/internal/pkg/errors"
	"github.com/paperly/paperly/internal/service"
)

// EmbeddingSyncJob keeps the vector index in step with paper edits. It is a
// no-op when no embedding provider is configured.
type EmbeddingSyncJob struct {
	related *service.RelatedService
}

func NewEmbeddingSyncJob(related *service.RelatedService) *EmbeddingSyncJob {
	return &EmbeddingSyncJob{related: related}
}

func (j *EmbeddingSyncJob) Name() string {
	return "embedding_sync"
}

func (j *EmbeddingSyncJob) Run(ctx context.Context) error {
	if j.related == nil {
		return nil
	}
	err := j.related.ProcessStaleEmbeddings(ctx)
	if appErr.IsAIUnavailable(err) {
		return nil
	}
	return err
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// JobRepository defines persistence operations for processing jobs
type JobRepository interface {
	Create(ctx context.Context, job *entities.ProcessingJob) error
	Update(ctx context.Context, job *entities.ProcessingJob) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.ProcessingJob, error)
	GetLatestByMeetingID(ctx context.Context, meetingID string, jobType entities.JobType) (*entities.ProcessingJob, error)
	ListByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]entities.ProcessingJob, error)
	ListPending(ctx context.Context, limit int) ([]entities.ProcessingJob, error)
	MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	IncrementRetry(ctx context.Context, id uuid.UUID, errMsg string) error
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// JobRepository handles processing job data operations
type JobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

// Create creates a new processing job
func (r *JobRepository) Create(ctx context.Context, job *entities.ProcessingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).Create(job).Error
}

// Update updates a processing job
func (r *JobRepository) Update(ctx context.Context, job *entities.ProcessingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	return r.db.WithContext(ctx).
		Model(&entities.ProcessingJob{}).
		Where("id = ?", job.ID).
		Save(job).Error
}

// GetByID retrieves a processing job by ID
func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// GetLatestByMeetingID retrieves the latest job for a meeting
func (r *JobRepository) GetLatestByMeetingID(ctx context.Context, meetingID string, jobType entities.JobType) (*entities.ProcessingJob, error) {
	var job entities.ProcessingJob
	query := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID)
	if jobType != "" {
		query = query.Where("job_type = ?", jobType)
	}
	if err := query.Order("created_at DESC").First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &job, nil
}

// ListByStatus retrieves jobs with a specific status
func (r *JobRepository) ListByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]entities.ProcessingJob, error) {
	var jobs []entities.ProcessingJob
	if limit == 0 {
		limit = 100
	}
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// ListPending retrieves jobs that are ready for processing
func (r *JobRepository) ListPending(ctx context.Context, limit int) ([]entities.ProcessingJob, error) {
	var jobs []entities.ProcessingJob
	if limit == 0 {
		limit = 10
	}
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []entities.JobStatus{entities.JobStatusPending, entities.JobStatusRetrying}).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// MarkAsFailed marks a job as failed with error message
func (r *JobRepository) MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.ProcessingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     entities.JobStatusFailed,
			"last_error": errMsg,
			"updated_at": now,
		}).Error
}

// IncrementRetry increments the retry count and marks the job for retry
func (r *JobRepository) IncrementRetry(ctx context.Context, id uuid.UUID, errMsg string) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&entities.ProcessingJob{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"retry_count": gorm.Expr("retry_count + 1"),
			"status":      entities.JobStatusRetrying,
			"last_error":  errMsg,
			"updated_at":  now,
		}).Error
}

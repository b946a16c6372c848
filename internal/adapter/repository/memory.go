package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// In-memory repository implementations. Used by tests and by deployments
// that run without Postgres.

// MemoryTranscriptRepository stores transcripts in memory
type MemoryTranscriptRepository struct {
	mu        sync.RWMutex
	byMeeting map[string]*entities.Transcript
}

// NewMemoryTranscriptRepository creates an in-memory transcript repository
func NewMemoryTranscriptRepository() *MemoryTranscriptRepository {
	return &MemoryTranscriptRepository{byMeeting: make(map[string]*entities.Transcript)}
}

func (r *MemoryTranscriptRepository) Create(ctx context.Context, t *entities.Transcript) error {
	if t == nil {
		return errors.New("transcript cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *t
	r.byMeeting[t.MeetingID] = &cp
	return nil
}

func (r *MemoryTranscriptRepository) Update(ctx context.Context, t *entities.Transcript) error {
	return r.Create(ctx, t)
}

func (r *MemoryTranscriptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, t := range r.byMeeting {
		if t.ID == id {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *MemoryTranscriptRepository) GetByMeetingID(ctx context.Context, meetingID string) (*entities.Transcript, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.byMeeting[meetingID]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *MemoryTranscriptRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byMeeting, meetingID)
	return nil
}

// MemorySummaryRepository stores meeting summaries in memory
type MemorySummaryRepository struct {
	mu        sync.RWMutex
	byMeeting map[string]*entities.MeetingSummary
}

// NewMemorySummaryRepository creates an in-memory summary repository
func NewMemorySummaryRepository() *MemorySummaryRepository {
	return &MemorySummaryRepository{byMeeting: make(map[string]*entities.MeetingSummary)}
}

func (r *MemorySummaryRepository) Save(ctx context.Context, s *entities.MeetingSummary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.byMeeting[s.MeetingID] = &cp
	return nil
}

func (r *MemorySummaryRepository) GetByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byMeeting[meetingID]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *MemorySummaryRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byMeeting, meetingID)
	return nil
}

// MemoryJobRepository stores processing jobs in memory
type MemoryJobRepository struct {
	mu   sync.RWMutex
	jobs map[uuid.UUID]*entities.ProcessingJob
}

// NewMemoryJobRepository creates an in-memory job repository
func NewMemoryJobRepository() *MemoryJobRepository {
	return &MemoryJobRepository{jobs: make(map[uuid.UUID]*entities.ProcessingJob)}
}

func (r *MemoryJobRepository) Create(ctx context.Context, job *entities.ProcessingJob) error {
	if job == nil {
		return errors.New("job cannot be nil")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *job
	r.jobs[job.ID] = &cp
	return nil
}

func (r *MemoryJobRepository) Update(ctx context.Context, job *entities.ProcessingJob) error {
	return r.Create(ctx, job)
}

func (r *MemoryJobRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.jobs[id]
	if !ok {
		return nil, nil
	}
	cp := *job
	return &cp, nil
}

func (r *MemoryJobRepository) GetLatestByMeetingID(ctx context.Context, meetingID string, jobType entities.JobType) (*entities.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest *entities.ProcessingJob
	for _, job := range r.jobs {
		if job.MeetingID != meetingID {
			continue
		}
		if jobType != "" && job.JobType != jobType {
			continue
		}
		if latest == nil || job.CreatedAt.After(latest.CreatedAt) {
			latest = job
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (r *MemoryJobRepository) ListByStatus(ctx context.Context, status entities.JobStatus, limit int) ([]entities.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit == 0 {
		limit = 100
	}
	var jobs []entities.ProcessingJob
	for _, job := range r.jobs {
		if job.Status == status {
			jobs = append(jobs, *job)
		}
	}
	sortJobsByCreatedAt(jobs)
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (r *MemoryJobRepository) ListPending(ctx context.Context, limit int) ([]entities.ProcessingJob, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if limit == 0 {
		limit = 10
	}
	var jobs []entities.ProcessingJob
	for _, job := range r.jobs {
		if job.Status == entities.JobStatusPending || job.Status == entities.JobStatusRetrying {
			jobs = append(jobs, *job)
		}
	}
	sortJobsByCreatedAt(jobs)
	if len(jobs) > limit {
		jobs = jobs[:limit]
	}
	return jobs, nil
}

func (r *MemoryJobRepository) MarkAsFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return entities.ErrJobNotFound
	}
	job.MarkAsFailed(errMsg)
	return nil
}

func (r *MemoryJobRepository) IncrementRetry(ctx context.Context, id uuid.UUID, errMsg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	job, ok := r.jobs[id]
	if !ok {
		return entities.ErrJobNotFound
	}
	job.IncrementRetry(errMsg)
	return nil
}

func sortJobsByCreatedAt(jobs []entities.ProcessingJob) {
	sort.Slice(jobs, func(i, j int) bool {
		return jobs[i].CreatedAt.Before(jobs[j].CreatedAt)
	})
}

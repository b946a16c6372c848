package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// TranscriptResponse represents a stored transcript without the raw payload
type TranscriptResponse struct {
	ID              uuid.UUID `json:"id"`
	MeetingID       string    `json:"meeting_id"`
	Title           string    `json:"title,omitempty"`
	Source          string    `json:"source"`
	Language        string    `json:"language,omitempty"`
	WordCount       int       `json:"word_count"`
	DurationSeconds int       `json:"duration_seconds,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// JobResponse represents a processing job
type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	MeetingID   string     `json:"meeting_id"`
	JobType     string     `json:"job_type"`
	Status      string     `json:"status"`
	Provider    string     `json:"provider,omitempty"`
	RetryCount  int        `json:"retry_count"`
	LastError   string     `json:"last_error,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// SubmitResponse is returned when a transcript or recording is accepted
type SubmitResponse struct {
	Transcript *TranscriptResponse `json:"transcript,omitempty"`
	Job        JobResponse         `json:"job"`
}

// NewTranscriptResponse maps the transcript entity to its API shape
func NewTranscriptResponse(t *entities.Transcript) *TranscriptResponse {
	if t == nil {
		return nil
	}
	return &TranscriptResponse{
		ID:              t.ID,
		MeetingID:       t.MeetingID,
		Title:           t.Title,
		Source:          string(t.Source),
		Language:        t.Language,
		WordCount:       t.WordCount,
		DurationSeconds: t.DurationSeconds,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// NewJobResponse maps the job entity to its API shape
func NewJobResponse(job *entities.ProcessingJob) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		MeetingID:   job.MeetingID,
		JobType:     string(job.JobType),
		Status:      string(job.Status),
		Provider:    job.Provider,
		RetryCount:  job.RetryCount,
		StartedAt:   job.StartedAt,
		CompletedAt: job.CompletedAt,
		CreatedAt:   job.CreatedAt,
	}
	if job.LastError != nil {
		resp.LastError = *job.LastError
	}
	return resp
}

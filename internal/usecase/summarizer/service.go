package summarizer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
)

// MaxTranscriptBytes caps accepted transcript text
const MaxTranscriptBytes = 1 * 1024 * 1024

// ProviderStatus describes one backend for the providers endpoint
type ProviderStatus struct {
	Name       string `json:"name"`
	Available  bool   `json:"available"`
	Configured bool   `json:"configured"` // true for the provider selected in configuration
}

// Service orchestrates transcript submission, summarization jobs, and
// summary retrieval
type Service struct {
	transcripts repositories.TranscriptRepository
	summaries   repositories.SummaryRepository
	jobs        repositories.JobRepository
	factory     *Factory
	cache       cache.Store
	cacheTTL    time.Duration
	archive     *storage.AudioStore
	logger      *zap.Logger
}

// NewService constructs the summarization service
func NewService(
	transcripts repositories.TranscriptRepository,
	summaries repositories.SummaryRepository,
	jobs repositories.JobRepository,
	factory *Factory,
	cacheStore cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *Service {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &Service{
		transcripts: transcripts,
		summaries:   summaries,
		jobs:        jobs,
		factory:     factory,
		cache:       cacheStore,
		cacheTTL:    cacheTTL,
		logger:      logger,
	}
}

// SetArchive enables best-effort archival of submitted transcript text to
// object storage. Archival failures never block submission.
func (s *Service) SetArchive(store *storage.AudioStore) {
	s.archive = store
}

// SubmitTranscript stores transcript text and enqueues a summarization job.
// Resubmitting for the same meeting replaces the stored transcript and
// invalidates any existing summary.
func (s *Service) SubmitTranscript(ctx context.Context, meetingID, title, text string) (*entities.Transcript, *entities.ProcessingJob, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil, entities.ErrTranscriptEmpty
	}
	if len(text) > MaxTranscriptBytes {
		return nil, nil, entities.ErrTranscriptTooLarge
	}

	existing, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up transcript: %w", err)
	}

	var transcript *entities.Transcript
	if existing != nil {
		existing.Title = title
		existing.Text = text
		existing.Source = entities.TranscriptSourceText
		existing.WordCount = len(strings.Fields(text))
		existing.UpdatedAt = time.Now()
		if err := s.transcripts.Update(ctx, existing); err != nil {
			return nil, nil, fmt.Errorf("failed to update transcript: %w", err)
		}
		transcript = existing

		// The old summary no longer matches the text
		if err := s.summaries.DeleteByMeetingID(ctx, meetingID); err != nil {
			s.logger.Warn("⚠️ Failed to delete stale summary", zap.String("meeting_id", meetingID), zap.Error(err))
		}
		s.invalidateCache(ctx, meetingID)
	} else {
		transcript = entities.NewTranscript(meetingID, text)
		transcript.Title = title
		if err := s.transcripts.Create(ctx, transcript); err != nil {
			return nil, nil, fmt.Errorf("failed to store transcript: %w", err)
		}
	}

	if s.archive != nil {
		if key, err := s.archive.ArchiveTranscript(ctx, meetingID, text); err != nil {
			s.logger.Warn("⚠️ Failed to archive transcript", zap.String("meeting_id", meetingID), zap.Error(err))
		} else {
			s.logger.Info("✅ Transcript archived", zap.String("object_key", key))
		}
	}

	job := entities.NewProcessingJob(meetingID, entities.JobTypeSummarization)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, nil, fmt.Errorf("failed to create summarization job: %w", err)
	}

	s.logger.Info("🔄 Transcript accepted",
		zap.String("meeting_id", meetingID),
		zap.String("job_id", job.ID.String()),
		zap.Int("word_count", transcript.WordCount))

	return transcript, job, nil
}

// EnqueueSummarization creates a summarization job for a meeting whose
// transcript already exists, e.g. after transcription completes.
func (s *Service) EnqueueSummarization(ctx context.Context, meetingID string) (*entities.ProcessingJob, error) {
	job := entities.NewProcessingJob(meetingID, entities.JobTypeSummarization)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create summarization job: %w", err)
	}
	return job, nil
}

// GetSummary returns the stored summary for a meeting. When processing is
// still in flight it returns ErrSummaryNotReady so the handler can answer
// with 202 instead of 404.
func (s *Service) GetSummary(ctx context.Context, meetingID string) (*entities.MeetingSummary, error) {
	if cached := s.cachedSummary(ctx, meetingID); cached != nil {
		return cached, nil
	}

	summary, err := s.summaries.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load summary: %w", err)
	}
	if summary != nil {
		s.cacheSummary(ctx, summary)
		return summary, nil
	}

	job, err := s.jobs.GetLatestByMeetingID(ctx, meetingID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job != nil {
		switch job.Status {
		case entities.JobStatusPending, entities.JobStatusSubmitted, entities.JobStatusProcessing, entities.JobStatusRetrying:
			return nil, entities.ErrSummaryNotReady
		}
	}
	return nil, entities.ErrSummaryNotFound
}

// DeleteSummary removes the stored summary for a meeting
func (s *Service) DeleteSummary(ctx context.Context, meetingID string) error {
	summary, err := s.summaries.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return fmt.Errorf("failed to load summary: %w", err)
	}
	if summary == nil {
		return entities.ErrSummaryNotFound
	}
	if err := s.summaries.DeleteByMeetingID(ctx, meetingID); err != nil {
		return fmt.Errorf("failed to delete summary: %w", err)
	}
	s.invalidateCache(ctx, meetingID)
	return nil
}

// GetTranscript returns the stored transcript for a meeting
func (s *Service) GetTranscript(ctx context.Context, meetingID string) (*entities.Transcript, error) {
	transcript, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to load transcript: %w", err)
	}
	if transcript == nil {
		return nil, entities.ErrTranscriptNotFound
	}
	return transcript, nil
}

// JobStatus returns the latest processing job for a meeting
func (s *Service) JobStatus(ctx context.Context, meetingID string) (*entities.ProcessingJob, error) {
	job, err := s.jobs.GetLatestByMeetingID(ctx, meetingID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, entities.ErrJobNotFound
	}
	return job, nil
}

// Providers reports the status of every constructed backend
func (s *Service) Providers(ctx context.Context) []ProviderStatus {
	backends := s.factory.Backends()
	out := make([]ProviderStatus, 0, len(backends))
	for _, name := range []string{BackendRuleBased, BackendOllama, BackendOpenAI, BackendAnthropic} {
		b, ok := backends[name]
		if !ok {
			continue
		}
		out = append(out, ProviderStatus{
			Name:       name,
			Available:  b.Available(ctx),
			Configured: name == s.factory.Provider(),
		})
	}
	return out
}

// ProcessJob executes one summarization job. The resolved backend runs
// first; if it fails the rule-based engine takes over so a job only fails
// outright when even pattern extraction cannot run.
func (s *Service) ProcessJob(ctx context.Context, job *entities.ProcessingJob) error {
	transcript, err := s.transcripts.GetByMeetingID(ctx, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	if transcript == nil {
		return fmt.Errorf("transcript not found for meeting %s", job.MeetingID)
	}
	if strings.TrimSpace(transcript.Text) == "" {
		return entities.ErrTranscriptEmpty
	}

	backend := s.factory.Resolve(ctx)
	summary, err := backend.Summarize(ctx, job.MeetingID, transcript.Text)
	if err != nil && backend.Name() != BackendRuleBased {
		s.logger.Warn("⚠️ Backend failed, retrying with rule-based analysis",
			zap.String("meeting_id", job.MeetingID),
			zap.String("backend", backend.Name()),
			zap.Error(err))
		backend = s.factory.RuleBased()
		summary, err = backend.Summarize(ctx, job.MeetingID, transcript.Text)
	}
	if err != nil {
		return fmt.Errorf("summarization failed: %w", err)
	}

	if err := s.summaries.Save(ctx, summary); err != nil {
		return fmt.Errorf("failed to save summary: %w", err)
	}
	s.cacheSummary(ctx, summary)

	job.Provider = backend.Name()
	job.Metadata.WordCount = transcript.WordCount
	job.Metadata.ProcessingTimeMs = int64(summary.ProcessingTime * 1000)
	job.MarkAsCompleted(&transcript.ID)
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Warn("⚠️ Failed to update completed job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	s.logger.Info("✅ Meeting summary saved",
		zap.String("meeting_id", job.MeetingID),
		zap.String("summary_id", summary.ID.String()),
		zap.String("backend", backend.Name()),
		zap.Float64("confidence_score", summary.ConfidenceScore))

	return nil
}

func (s *Service) cacheKey(meetingID string) string {
	return "summary:" + meetingID
}

func (s *Service) cachedSummary(ctx context.Context, meetingID string) *entities.MeetingSummary {
	if s.cache == nil {
		return nil
	}
	raw, ok, err := s.cache.Get(ctx, s.cacheKey(meetingID))
	if err != nil || !ok {
		return nil
	}
	var summary entities.MeetingSummary
	if err := json.Unmarshal([]byte(raw), &summary); err != nil {
		return nil
	}
	return &summary
}

func (s *Service) cacheSummary(ctx context.Context, summary *entities.MeetingSummary) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(summary.MeetingID), string(raw), s.cacheTTL); err != nil {
		s.logger.Warn("⚠️ Failed to cache summary", zap.String("meeting_id", summary.MeetingID), zap.Error(err))
	}
}

func (s *Service) invalidateCache(ctx context.Context, meetingID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, s.cacheKey(meetingID)); err != nil {
		s.logger.Warn("⚠️ Failed to invalidate summary cache", zap.String("meeting_id", meetingID), zap.Error(err))
	}
}

package transcription

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/repositories"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/storage"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
)

// maxAudioBytes caps accepted audio uploads
const maxAudioBytes = 200 * 1024 * 1024

// Service turns uploaded meeting recordings into transcripts. The audio is
// archived in object storage, sent to the transcription provider by a
// background worker, and a summarization job is chained once text arrives.
type Service struct {
	transcripts repositories.TranscriptRepository
	jobs        repositories.JobRepository
	store       *storage.AudioStore
	transcriber *ai.Transcriber
	summaries   *summarizer.Service
	logger      *zap.Logger
}

// NewService constructs the transcription service. transcriber may be nil
// when no provider key is configured; audio uploads are rejected in that
// case.
func NewService(
	transcripts repositories.TranscriptRepository,
	jobs repositories.JobRepository,
	store *storage.AudioStore,
	transcriber *ai.Transcriber,
	summaries *summarizer.Service,
	logger *zap.Logger,
) *Service {
	return &Service{
		transcripts: transcripts,
		jobs:        jobs,
		store:       store,
		transcriber: transcriber,
		summaries:   summaries,
		logger:      logger,
	}
}

// Enabled reports whether audio transcription is configured
func (s *Service) Enabled() bool {
	return s.transcriber != nil
}

// SubmitAudio archives the recording and enqueues a transcription job
func (s *Service) SubmitAudio(ctx context.Context, meetingID, title string, audio io.Reader, size int64, contentType string) (*entities.ProcessingJob, error) {
	if !s.Enabled() || s.store == nil {
		return nil, entities.ErrProviderUnavailable
	}
	if size <= 0 || size > maxAudioBytes {
		return nil, fmt.Errorf("audio size must be between 1 and %d bytes", maxAudioBytes)
	}

	objectKey, err := s.store.UploadAudio(ctx, meetingID, audio, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to archive audio: %w", err)
	}

	s.logger.Info("✅ Audio archived",
		zap.String("meeting_id", meetingID),
		zap.String("object_key", objectKey),
		zap.Int64("size", size))

	existing, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transcript: %w", err)
	}
	if existing != nil {
		existing.Title = title
		existing.Text = ""
		existing.Source = entities.TranscriptSourceAudio
		existing.AudioObjectKey = objectKey
		existing.WordCount = 0
		existing.UpdatedAt = time.Now()
		if err := s.transcripts.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update transcript: %w", err)
		}
	} else {
		transcript := entities.NewTranscript(meetingID, "")
		transcript.Title = title
		transcript.Source = entities.TranscriptSourceAudio
		transcript.AudioObjectKey = objectKey
		if err := s.transcripts.Create(ctx, transcript); err != nil {
			return nil, fmt.Errorf("failed to store transcript: %w", err)
		}
	}

	job := entities.NewProcessingJob(meetingID, entities.JobTypeTranscription)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create transcription job: %w", err)
	}

	s.logger.Info("🔄 Transcription job queued",
		zap.String("meeting_id", meetingID),
		zap.String("job_id", job.ID.String()))

	return job, nil
}

// SubmitAudioURL enqueues transcription of a recording that is already
// hosted elsewhere. Nothing is archived; the provider fetches the URL.
func (s *Service) SubmitAudioURL(ctx context.Context, meetingID, title, audioURL string) (*entities.ProcessingJob, error) {
	if !s.Enabled() {
		return nil, entities.ErrProviderUnavailable
	}
	if strings.TrimSpace(audioURL) == "" {
		return nil, fmt.Errorf("audio url is empty")
	}

	rawData := datatypes.NewJSONType(map[string]interface{}{"audio_url": audioURL})

	existing, err := s.transcripts.GetByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up transcript: %w", err)
	}
	if existing != nil {
		existing.Title = title
		existing.Text = ""
		existing.Source = entities.TranscriptSourceAudio
		existing.AudioObjectKey = ""
		existing.WordCount = 0
		existing.RawData = rawData
		existing.UpdatedAt = time.Now()
		if err := s.transcripts.Update(ctx, existing); err != nil {
			return nil, fmt.Errorf("failed to update transcript: %w", err)
		}
	} else {
		transcript := entities.NewTranscript(meetingID, "")
		transcript.Title = title
		transcript.Source = entities.TranscriptSourceAudio
		transcript.RawData = rawData
		if err := s.transcripts.Create(ctx, transcript); err != nil {
			return nil, fmt.Errorf("failed to store transcript: %w", err)
		}
	}

	job := entities.NewProcessingJob(meetingID, entities.JobTypeTranscription)
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create transcription job: %w", err)
	}

	s.logger.Info("🔄 Transcription job queued for hosted recording",
		zap.String("meeting_id", meetingID),
		zap.String("job_id", job.ID.String()))

	return job, nil
}

// ProcessJob executes one transcription job: stream the archived audio to
// the provider, store the resulting text, and chain a summarization job.
func (s *Service) ProcessJob(ctx context.Context, job *entities.ProcessingJob) error {
	if !s.Enabled() {
		return entities.ErrProviderUnavailable
	}

	transcript, err := s.transcripts.GetByMeetingID(ctx, job.MeetingID)
	if err != nil {
		return fmt.Errorf("failed to load transcript: %w", err)
	}
	if transcript == nil {
		return fmt.Errorf("transcript not found for meeting %s", job.MeetingID)
	}
	var result *ai.TranscriptResult
	switch {
	case transcript.AudioObjectKey != "":
		if s.store == nil {
			return entities.ErrAudioObjectMissing
		}
		audio, err := s.store.GetAudio(ctx, transcript.AudioObjectKey)
		if err != nil {
			return fmt.Errorf("failed to open archived audio: %w", err)
		}
		defer audio.Close()

		s.logger.Info("🎙️ Starting transcription",
			zap.String("meeting_id", job.MeetingID),
			zap.String("object_key", transcript.AudioObjectKey))

		result, err = s.transcriber.TranscribeFromReader(ctx, audio)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
	default:
		audioURL, _ := transcript.RawData.Data()["audio_url"].(string)
		if audioURL == "" {
			return entities.ErrAudioObjectMissing
		}

		s.logger.Info("🎙️ Starting transcription",
			zap.String("meeting_id", job.MeetingID),
			zap.String("audio_url", audioURL))

		var err error
		result, err = s.transcriber.TranscribeFromURL(ctx, audioURL)
		if err != nil {
			return fmt.Errorf("transcription failed: %w", err)
		}
	}
	if strings.TrimSpace(result.Text) == "" {
		return fmt.Errorf("transcription produced no text")
	}

	transcript.Text = result.Text
	transcript.Language = result.Language
	transcript.ConfidenceScore = result.Confidence
	transcript.DurationSeconds = result.DurationSeconds
	transcript.WordCount = len(strings.Fields(result.Text))
	transcript.ModelUsed = "assemblyai"
	transcript.UpdatedAt = time.Now()
	if err := s.transcripts.Update(ctx, transcript); err != nil {
		return fmt.Errorf("failed to store transcript text: %w", err)
	}

	job.Provider = "assemblyai"
	if result.ExternalID != "" {
		externalID := result.ExternalID
		job.ExternalJobID = &externalID
	}
	job.Metadata.Language = result.Language
	job.Metadata.DurationSeconds = result.DurationSeconds
	job.Metadata.WordCount = transcript.WordCount
	job.MarkAsCompleted(&transcript.ID)
	if err := s.jobs.Update(ctx, job); err != nil {
		s.logger.Warn("⚠️ Failed to update completed job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	s.logger.Info("✅ Transcription completed",
		zap.String("meeting_id", job.MeetingID),
		zap.Int("word_count", transcript.WordCount),
		zap.String("language", transcript.Language))

	// Chain summarization so the caller only polls the summary endpoint
	if _, err := s.summaries.EnqueueSummarization(ctx, job.MeetingID); err != nil {
		return fmt.Errorf("failed to enqueue summarization: %w", err)
	}

	return nil
}

package transcription

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/pkg/ai"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func newTestService(t *testing.T, transcriber *ai.Transcriber) (*Service, *repository.MemoryTranscriptRepository, *repository.MemoryJobRepository) {
	t.Helper()

	logger := zap.NewNop()
	transcripts := repository.NewMemoryTranscriptRepository()
	summaries := repository.NewMemorySummaryRepository()
	jobs := repository.NewMemoryJobRepository()

	engine := analysis.NewEngine(logger)
	factory := summarizer.NewFactory(config.SummarizationConfig{
		Provider:      summarizer.BackendRuleBased,
		OllamaBaseURL: "http://127.0.0.1:0",
		HealthTimeout: 100 * time.Millisecond,
	}, engine, logger)
	summarizerSvc := summarizer.NewService(transcripts, summaries, jobs, factory, cache.NewMemoryStore(), time.Hour, logger)

	svc := NewService(transcripts, jobs, nil, transcriber, summarizerSvc, logger)
	return svc, transcripts, jobs
}

func TestSubmitAudioURLQueuesJob(t *testing.T) {
	svc, transcripts, _ := newTestService(t, ai.NewTranscriber("test-key"))
	ctx := context.Background()

	job, err := svc.SubmitAudioURL(ctx, "m-1", "Weekly sync", "https://cdn.example.com/rec.mp3")
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if job.JobType != entities.JobTypeTranscription {
		t.Fatalf("expected transcription job got %s", job.JobType)
	}
	if job.Status != entities.JobStatusPending {
		t.Fatalf("expected pending job got %s", job.Status)
	}

	transcript, err := transcripts.GetByMeetingID(ctx, "m-1")
	if err != nil || transcript == nil {
		t.Fatalf("transcript not stored: %v", err)
	}
	if transcript.Source != entities.TranscriptSourceAudio {
		t.Fatalf("expected audio source got %s", transcript.Source)
	}
	if url, _ := transcript.RawData.Data()["audio_url"].(string); url != "https://cdn.example.com/rec.mp3" {
		t.Fatalf("audio url not recorded: %v", transcript.RawData.Data())
	}
}

func TestSubmitAudioURLRejectsEmptyURL(t *testing.T) {
	svc, _, _ := newTestService(t, ai.NewTranscriber("test-key"))

	if _, err := svc.SubmitAudioURL(context.Background(), "m-1", "", "   "); err == nil {
		t.Fatal("expected error for blank url")
	}
}

func TestSubmitAudioRequiresStore(t *testing.T) {
	svc, _, _ := newTestService(t, ai.NewTranscriber("test-key"))

	_, err := svc.SubmitAudio(context.Background(), "m-1", "", strings.NewReader("riff"), 4, "audio/wav")
	if err != entities.ErrProviderUnavailable {
		t.Fatalf("expected provider unavailable got %v", err)
	}
}

func TestServiceDisabledWithoutTranscriber(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	if svc.Enabled() {
		t.Fatal("expected service to be disabled")
	}
	if _, err := svc.SubmitAudioURL(context.Background(), "m-1", "", "https://example.com/a.mp3"); err != entities.ErrProviderUnavailable {
		t.Fatalf("expected provider unavailable got %v", err)
	}
}

package summarizer

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

func newTestService(t *testing.T) (*Service, *repository.MemoryJobRepository) {
	t.Helper()
	logger := zap.NewNop()
	factory := NewFactory(config.SummarizationConfig{
		Provider:      BackendRuleBased,
		OllamaBaseURL: "http://127.0.0.1:0",
		OllamaModel:   "llama3.1:8b",
		HealthTimeout: 100 * time.Millisecond,
	}, analysis.NewEngine(logger), logger)

	jobs := repository.NewMemoryJobRepository()
	svc := NewService(
		repository.NewMemoryTranscriptRepository(),
		repository.NewMemorySummaryRepository(),
		jobs,
		factory,
		cache.NewMemoryStore(),
		time.Minute,
		logger,
	)
	return svc, jobs
}

const testTranscript = `Alice: We decided: adopt Postgres for the reporting service.
Bob: Sounds good. Alice will prepare the migration plan by Friday.
Alice: The main concern is that the legacy exporter might break during cutover.`

func TestSubmitAndProcessTranscript(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	transcript, job, err := svc.SubmitTranscript(ctx, "meeting-1", "Planning", testTranscript)
	if err != nil {
		t.Fatalf("SubmitTranscript failed: %v", err)
	}
	if transcript.WordCount == 0 {
		t.Fatal("expected word count to be set")
	}
	if job.Status != entities.JobStatusPending {
		t.Fatalf("expected pending job, got %s", job.Status)
	}

	// Summary is not ready while the job is still pending
	if _, err := svc.GetSummary(ctx, "meeting-1"); !errors.Is(err, entities.ErrSummaryNotReady) {
		t.Fatalf("expected ErrSummaryNotReady, got %v", err)
	}

	if err := svc.ProcessJob(ctx, job); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}

	summary, err := svc.GetSummary(ctx, "meeting-1")
	if err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}
	if summary.ModelUsed != BackendRuleBased {
		t.Fatalf("expected rule-based summary, got %q", summary.ModelUsed)
	}
	if summary.Summary == "" {
		t.Fatal("expected non-empty summary text")
	}
	if summary.Sentiment == "" {
		t.Fatal("expected sentiment to be set")
	}
	if len(summary.KeyTopics) == 0 {
		t.Fatal("expected key topics")
	}
	if job.Provider != BackendRuleBased {
		t.Fatalf("expected job provider rule-based, got %q", job.Provider)
	}
	if job.Status != entities.JobStatusCompleted {
		t.Fatalf("expected completed job, got %s", job.Status)
	}
}

func TestSubmitTranscriptRejectsEmpty(t *testing.T) {
	svc, _ := newTestService(t)
	if _, _, err := svc.SubmitTranscript(context.Background(), "meeting-1", "", "   \n  "); !errors.Is(err, entities.ErrTranscriptEmpty) {
		t.Fatalf("expected ErrTranscriptEmpty, got %v", err)
	}
}

func TestResubmitReplacesSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, job, err := svc.SubmitTranscript(ctx, "meeting-1", "", testTranscript)
	if err != nil {
		t.Fatalf("SubmitTranscript failed: %v", err)
	}
	if err := svc.ProcessJob(ctx, job); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}
	if _, err := svc.GetSummary(ctx, "meeting-1"); err != nil {
		t.Fatalf("GetSummary failed: %v", err)
	}

	// Resubmission invalidates the stored summary until the new job runs
	if _, _, err := svc.SubmitTranscript(ctx, "meeting-1", "", "Bob: Quick update, nothing to report."); err != nil {
		t.Fatalf("resubmit failed: %v", err)
	}
	if _, err := svc.GetSummary(ctx, "meeting-1"); !errors.Is(err, entities.ErrSummaryNotReady) {
		t.Fatalf("expected ErrSummaryNotReady after resubmit, got %v", err)
	}
}

func TestGetSummaryUnknownMeeting(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.GetSummary(context.Background(), "nope"); !errors.Is(err, entities.ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound, got %v", err)
	}
}

func TestDeleteSummary(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, job, err := svc.SubmitTranscript(ctx, "meeting-1", "", testTranscript)
	if err != nil {
		t.Fatalf("SubmitTranscript failed: %v", err)
	}
	if err := svc.ProcessJob(ctx, job); err != nil {
		t.Fatalf("ProcessJob failed: %v", err)
	}

	if err := svc.DeleteSummary(ctx, "meeting-1"); err != nil {
		t.Fatalf("DeleteSummary failed: %v", err)
	}
	if err := svc.DeleteSummary(ctx, "meeting-1"); !errors.Is(err, entities.ErrSummaryNotFound) {
		t.Fatalf("expected ErrSummaryNotFound on second delete, got %v", err)
	}
}

func TestProvidersIncludesConfiguredBackend(t *testing.T) {
	svc, _ := newTestService(t)

	providers := svc.Providers(context.Background())
	var ruleBased *ProviderStatus
	for i := range providers {
		if providers[i].Name == BackendRuleBased {
			ruleBased = &providers[i]
		}
	}
	if ruleBased == nil {
		t.Fatal("expected rule-based provider in list")
	}
	if !ruleBased.Available || !ruleBased.Configured {
		t.Fatalf("expected rule-based to be available and configured: %+v", *ruleBased)
	}
}

func TestJobStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.JobStatus(ctx, "meeting-1"); !errors.Is(err, entities.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	_, job, err := svc.SubmitTranscript(ctx, "meeting-1", "", testTranscript)
	if err != nil {
		t.Fatalf("SubmitTranscript failed: %v", err)
	}
	got, err := svc.JobStatus(ctx, "meeting-1")
	if err != nil {
		t.Fatalf("JobStatus failed: %v", err)
	}
	if got.ID != job.ID {
		t.Fatalf("expected job %s, got %s", job.ID, got.ID)
	}
}

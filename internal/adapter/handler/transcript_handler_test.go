package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/adapter/repository"
	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
	"github.com/johnquangdev/meeting-summarizer/internal/infrastructure/cache"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/analysis"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/summarizer"
	"github.com/johnquangdev/meeting-summarizer/internal/usecase/transcription"
	"github.com/johnquangdev/meeting-summarizer/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-summarizer/pkg/validator"
)

type testEnv struct {
	echo *echo.Echo
	svc  *summarizer.Service
	jobs *repository.MemoryJobRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	engine := analysis.NewEngine(logger)
	factory := summarizer.NewFactory(config.SummarizationConfig{
		Provider:      summarizer.BackendRuleBased,
		OllamaBaseURL: "http://127.0.0.1:0",
		OllamaModel:   "llama3.1:8b",
		HealthTimeout: 100 * time.Millisecond,
	}, engine, logger)

	transcripts := repository.NewMemoryTranscriptRepository()
	summaries := repository.NewMemorySummaryRepository()
	jobs := repository.NewMemoryJobRepository()

	svc := summarizer.NewService(transcripts, summaries, jobs, factory, cache.NewMemoryStore(), time.Hour, logger)

	// Transcription stays disabled: no object store and no provider key
	transcriptionSvc := transcription.NewService(transcripts, jobs, nil, nil, svc, logger)

	e := echo.New()
	e.Validator = pkgvalidator.New()

	cfg := &config.Config{}
	cfg.Server.Environment = "test"

	router := NewRouter(cfg, NewTranscriptHandler(svc, transcriptionSvc, logger), NewSummaryHandler(svc, logger))
	router.Setup(e)

	return &testEnv{echo: e, svc: svc, jobs: jobs}
}

func (env *testEnv) request(t *testing.T, method, path, body, contentType string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return body.Data
}

func TestSubmitTranscript(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"meeting_id":"standup-2024-06-07","title":"Daily standup","text":"Alice: We decided to ship on Friday. Bob: I will update the docs."}`
	rec := env.request(t, http.MethodPost, "/v1/transcripts", payload, echo.MIMEApplicationJSON)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 got %d: %s", rec.Code, rec.Body.String())
	}

	data := decodeData(t, rec)
	job, ok := data["job"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing job in response: %v", data)
	}
	if job["status"] != string(entities.JobStatusPending) {
		t.Fatalf("expected pending job got %v", job["status"])
	}
}

func TestSubmitTranscriptValidation(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		name    string
		payload string
	}{
		{"missing meeting id", `{"text":"hello"}`},
		{"missing text", `{"meeting_id":"m-1"}`},
		{"bad meeting id", `{"meeting_id":"bad id with spaces","text":"hello"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/v1/transcripts", tc.payload, echo.MIMEApplicationJSON)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestSubmitAudioDisabled(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodPost, "/v1/transcripts/m-1/audio", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetTranscriptNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/v1/transcripts/unknown", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestJobStatusEndpoint(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"meeting_id":"retro-1","text":"Alice: The sprint went well overall."}`
	if rec := env.request(t, http.MethodPost, "/v1/transcripts", payload, echo.MIMEApplicationJSON); rec.Code != http.StatusAccepted {
		t.Fatalf("submit failed: %d", rec.Code)
	}

	rec := env.request(t, http.MethodGet, "/v1/jobs/retro-1", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["job_type"] != string(entities.JobTypeSummarization) {
		t.Fatalf("expected summarization job got %v", data["job_type"])
	}

	if rec := env.request(t, http.MethodGet, "/v1/jobs/none", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown meeting got %d", rec.Code)
	}
}

func TestSummaryLifecycle(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"meeting_id":"planning-9","text":"Alice: We decided to adopt the new rollout plan. Bob: I will prepare the migration by Friday."}`
	if rec := env.request(t, http.MethodPost, "/v1/transcripts", payload, echo.MIMEApplicationJSON); rec.Code != http.StatusAccepted {
		t.Fatalf("submit failed: %d", rec.Code)
	}

	// Job queued but not processed yet
	rec := env.request(t, http.MethodGet, "/v1/summaries/planning-9", "", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("expected 202 while processing got %d: %s", rec.Code, rec.Body.String())
	}

	// Drain the queue the way the worker pool would
	ctx := context.Background()
	pending, err := env.jobs.ListPending(ctx, 10)
	if err != nil || len(pending) != 1 {
		t.Fatalf("expected one pending job, got %d (err %v)", len(pending), err)
	}
	if err := env.svc.ProcessJob(ctx, &pending[0]); err != nil {
		t.Fatalf("process job failed: %v", err)
	}

	rec = env.request(t, http.MethodGet, "/v1/summaries/planning-9", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["model_used"] != summarizer.BackendRuleBased {
		t.Fatalf("expected rule-based summary got %v", data["model_used"])
	}

	if rec := env.request(t, http.MethodDelete, "/v1/summaries/planning-9", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", rec.Code)
	}
	if rec := env.request(t, http.MethodDelete, "/v1/summaries/planning-9", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete got %d", rec.Code)
	}
}

func TestProvidersEndpoint(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/v1/providers", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		Data []summarizer.ProviderStatus `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	foundRules := false
	for _, p := range body.Data {
		if p.Name == summarizer.BackendRuleBased && p.Available {
			foundRules = true
		}
	}
	if !foundRules {
		t.Fatalf("rule-based provider missing or unavailable: %v", body.Data)
	}
}

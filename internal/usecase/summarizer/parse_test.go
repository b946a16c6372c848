package summarizer

import (
	"testing"
)

func TestParseLLMResponseStrictJSON(t *testing.T) {
	raw := `{"summary":"The team planned the release.","sentiment":"positive","key_topics":["Release"]}`
	out, err := parseLLMResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if out.Summary != "The team planned the release." {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
	if out.Sentiment != "positive" {
		t.Fatalf("unexpected sentiment: %q", out.Sentiment)
	}
}

func TestParseLLMResponseFencedJSON(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"summary\":\"Short sync.\"}\n```\nLet me know if you need more."
	out, err := parseLLMResponse(raw)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if out.Summary != "Short sync." {
		t.Fatalf("unexpected summary: %q", out.Summary)
	}
}

func TestParseLLMResponseGarbage(t *testing.T) {
	if _, err := parseLLMResponse("I could not analyze this transcript."); err == nil {
		t.Fatal("expected error for non-JSON response")
	}
}

func TestBuildSummaryNormalizesEnums(t *testing.T) {
	a := &llmAnalysis{
		Summary: "Planning sync.",
		ActionItems: []llmActionItem{
			{Task: "Ship the beta", Assignee: "", Priority: "URGENT"},
			{Task: "", Assignee: "Bob"},
		},
		Decisions: []llmDecision{
			{Decision: "Adopt Postgres", Impact: "High", Status: "Approved"},
		},
		Risks: []llmRisk{
			{Risk: "Data loss during migration", Category: "Infrastructure"},
		},
		Sentiment: "Positive",
	}

	s := buildSummaryFromAnalysis("meeting-1", a)

	if len(s.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(s.ActionItems))
	}
	item := s.ActionItems[0]
	if item.Assignee != "Unassigned" {
		t.Fatalf("expected default assignee, got %q", item.Assignee)
	}
	if item.Priority != "medium" {
		t.Fatalf("expected unknown priority to default to medium, got %q", item.Priority)
	}
	if item.Status != "pending" {
		t.Fatalf("expected pending status, got %q", item.Status)
	}
	if item.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("expected assigned action item ID")
	}

	if len(s.Decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(s.Decisions))
	}
	if s.Decisions[0].Impact != "high" || s.Decisions[0].Status != "approved" {
		t.Fatalf("expected lowercased enums, got impact=%q status=%q", s.Decisions[0].Impact, s.Decisions[0].Status)
	}
	if s.Decisions[0].Rationale != "No rationale provided" {
		t.Fatalf("expected default rationale, got %q", s.Decisions[0].Rationale)
	}

	if len(s.Risks) != 1 {
		t.Fatalf("expected 1 risk, got %d", len(s.Risks))
	}
	if s.Risks[0].Category != "business" {
		t.Fatalf("expected unknown category to default to business, got %q", s.Risks[0].Category)
	}
	if s.Risks[0].Mitigation != "Not specified" {
		t.Fatalf("expected default mitigation, got %q", s.Risks[0].Mitigation)
	}

	if s.Sentiment != "positive" {
		t.Fatalf("expected normalized sentiment, got %q", s.Sentiment)
	}
	if len(s.KeyTopics) != 1 || s.KeyTopics[0] != "General Discussion" {
		t.Fatalf("expected topics fallback, got %v", s.KeyTopics)
	}
}

func TestOllamaConfidenceScoring(t *testing.T) {
	a := &llmAnalysis{
		Summary:      "Planning sync.",
		Participants: []string{"Alice", "Bob"},
		KeyTopics:    []string{"Release"},
		ActionItems:  []llmActionItem{{Task: "Ship the beta"}},
		NextSteps:    []string{"Ship the beta"},
	}
	s := buildSummaryFromAnalysis("meeting-1", a)

	// summary 20 + 1 item 4 + 2 participants 4 + 1 topic 2 + 1 next step 2
	got := ollamaConfidence(s)
	if got != 0.32 {
		t.Fatalf("expected 0.32, got %v", got)
	}
}

func TestOllamaConfidenceCaps(t *testing.T) {
	a := &llmAnalysis{Summary: "Busy meeting."}
	for i := 0; i < 20; i++ {
		a.ActionItems = append(a.ActionItems, llmActionItem{Task: "task"})
		a.Decisions = append(a.Decisions, llmDecision{Decision: "decision"})
		a.Participants = append(a.Participants, "P")
		a.NextSteps = append(a.NextSteps, "step")
		a.KeyTopics = append(a.KeyTopics, "topic")
		a.Risks = append(a.Risks, llmRisk{Risk: "a long enough risk"})
	}
	s := buildSummaryFromAnalysis("meeting-1", a)

	if got := ollamaConfidence(s); got > 1.0 {
		t.Fatalf("confidence exceeded 1.0: %v", got)
	}
}

func TestCloudConfidenceScoring(t *testing.T) {
	a := &llmAnalysis{
		Summary:      "Planning sync.",
		Participants: []string{"Alice"},
		ActionItems:  []llmActionItem{{Task: "one"}, {Task: "two"}},
		Decisions:    []llmDecision{{Decision: "ship"}},
	}
	s := buildSummaryFromAnalysis("meeting-1", a)

	// base 85 + 2 items 4 + 1 decision 1
	if got := cloudConfidence(s); got != 0.9 {
		t.Fatalf("expected 0.9, got %v", got)
	}

	empty := buildSummaryFromAnalysis("meeting-2", &llmAnalysis{})
	// base 85 - 10 missing summary - 5 missing participants
	if got := cloudConfidence(empty); got != 0.7 {
		t.Fatalf("expected 0.7, got %v", got)
	}
}

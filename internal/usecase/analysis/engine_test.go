package analysis

import (
	"context"
	"reflect"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

func newTestEngine() *Engine {
	return NewEngine(zap.NewNop())
}

func TestAnalyzeMinimalInput(t *testing.T) {
	res := newTestEngine().Analyze(context.Background(), "Hi")

	if len(res.KeyTopics) != 1 || res.KeyTopics[0] != DefaultTopic {
		t.Errorf("expected key_topics [%q], got %v", DefaultTopic, res.KeyTopics)
	}
	if len(res.ActionItems) != 0 {
		t.Errorf("expected no action items, got %d", len(res.ActionItems))
	}
	if len(res.Decisions) != 0 {
		t.Errorf("expected no decisions, got %d", len(res.Decisions))
	}
	if res.Sentiment != entities.SentimentNeutral {
		t.Errorf("expected neutral sentiment, got %q", res.Sentiment)
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res := newTestEngine().Analyze(context.Background(), "")

	if len(res.KeyTopics) == 0 {
		t.Error("key_topics must never be empty")
	}
	switch res.Sentiment {
	case entities.SentimentPositive, entities.SentimentNeutral, entities.SentimentNegative:
	default:
		t.Errorf("invalid sentiment %q", res.Sentiment)
	}
	if res.ConfidenceScore < 0 || res.ConfidenceScore > 1 {
		t.Errorf("confidence out of bounds: %f", res.ConfidenceScore)
	}
	if res.SummaryText == "" {
		t.Error("summary text must not be empty")
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	text := `Sarah Chen: We decided: adopt React for the frontend.
Mike: Alice will complete the budget report by Friday.
There's a risk that the SAML integration may cause a security vulnerability in token validation.`

	engine := newTestEngine()
	first := engine.Analyze(context.Background(), text)
	second := engine.Analyze(context.Background(), text)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("analysis is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestExplicitDecision(t *testing.T) {
	decisions := ExtractDecisions("We decided: adopt React for the frontend.")

	if len(decisions) != 1 {
		t.Fatalf("expected 1 decision, got %d", len(decisions))
	}
	d := decisions[0]
	if !strings.Contains(d.Decision, "adopt React for the frontend") {
		t.Errorf("unexpected decision text: %q", d.Decision)
	}
	if d.Status != entities.DecisionStatusApproved {
		t.Errorf("expected approved status, got %q", d.Status)
	}
	if d.MadeBy != "Team" {
		t.Errorf("pronoun subject should default to Team, got %q", d.MadeBy)
	}
}

func TestDecisionDeduplication(t *testing.T) {
	text := "We decided: ship the beta next week.\nSome unrelated chatter happened.\nWe decided: ship the beta next week."
	decisions := ExtractDecisions(text)

	count := 0
	for _, d := range decisions {
		if strings.Contains(d.Decision, "ship the beta next week") {
			count++
		}
	}
	if count != 1 {
		t.Errorf("identical decision phrased twice should dedup to one, got %d", count)
	}
}

func TestAssignedActionItemWithDeadline(t *testing.T) {
	items := ExtractActionItems("Alice will complete the budget report by Friday.")

	if len(items) != 1 {
		t.Fatalf("expected exactly 1 action item, got %d: %+v", len(items), items)
	}
	item := items[0]
	if item.Assignee != "Alice" {
		t.Errorf("expected assignee Alice, got %q", item.Assignee)
	}
	if !strings.Contains(item.DueDate, "Friday") {
		t.Errorf("expected due date containing Friday, got %q", item.DueDate)
	}
	if item.Status != entities.ActionItemStatusPending {
		t.Errorf("extracted items start pending, got %q", item.Status)
	}
}

func TestActionItemNoiseFilter(t *testing.T) {
	items := ExtractActionItems("Yeah we need to um yeah.")
	for _, item := range items {
		if isNoise(item.Task) || len(item.Task) <= 10 {
			t.Errorf("noise task survived extraction: %q", item.Task)
		}
	}
}

func TestCleanTaskTextTruncatesOnRuneBoundary(t *testing.T) {
	task := strings.Repeat("prépare the café menu ", 30)
	if len(task) <= maxTaskLength {
		t.Fatalf("test input must exceed the task ceiling, got %d bytes", len(task))
	}

	cleaned := cleanTaskText(task)
	if !utf8.ValidString(cleaned) {
		t.Errorf("truncation split a rune: %q", cleaned)
	}
	if !strings.HasSuffix(cleaned, "...") {
		t.Errorf("truncated task should end with ellipsis, got %q", cleaned)
	}
	if len(cleaned) > maxTaskLength {
		t.Errorf("cleaned task exceeds ceiling: %d bytes", len(cleaned))
	}
}

func TestCleanAssigneeTextMultiByteName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"émile dubois", "Émile Dubois"},
		{"øyvind", "Øyvind"},
		{"alice", "Alice"},
	}
	for _, tt := range tests {
		if got := cleanAssigneeText(tt.in); got != tt.want {
			t.Errorf("cleanAssigneeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParticipantSubsetCollapse(t *testing.T) {
	text := "Sarah: I reviewed the draft.\nSarah Chen: The numbers look good.\nMike: Agreed."
	participants := ExtractParticipants(text)

	for _, p := range participants {
		if p == "Sarah" {
			t.Errorf("short variant should collapse into the longer form, got %v", participants)
		}
	}
	if !containsString(participants, "Sarah Chen") {
		t.Errorf("expected Sarah Chen in %v", participants)
	}
	if !containsString(participants, "Mike") {
		t.Errorf("expected Mike in %v", participants)
	}
}

func TestParticipantStoplist(t *testing.T) {
	text := "The: something\nWhat: else\nAttendees: Bob"
	participants := ExtractParticipants(text)

	for _, bad := range []string{"The", "What", "Attendees"} {
		if containsString(participants, bad) {
			t.Errorf("stoplist word %q survived: %v", bad, participants)
		}
	}
	if !containsString(participants, "Bob") {
		t.Errorf("expected Bob from attendees block, got %v", participants)
	}
}

func TestParticipantsSorted(t *testing.T) {
	text := "Zoe: hi\nAdam: hello\nMia: hey"
	participants := ExtractParticipants(text)

	want := []string{"Adam", "Mia", "Zoe"}
	if !reflect.DeepEqual(participants, want) {
		t.Errorf("expected sorted %v, got %v", want, participants)
	}
}

func TestSentimentThresholds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"no sentiment words", "The sky is blue today.", entities.SentimentNeutral},
		{"mostly positive", "great excellent good success achieved, though one problem remains", entities.SentimentPositive},
		{"mostly negative", "problem issue concern difficult failed worried", entities.SentimentNegative},
		{"balanced", "good success problem discussed reviewed noted presented updated", entities.SentimentNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AnalyzeSentiment(tt.text); got != tt.want {
				t.Errorf("AnalyzeSentiment(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRiskCategorization(t *testing.T) {
	text := "There's a risk that the SAML integration may cause a security vulnerability in token validation."
	risks := ExtractRisks(text)

	if len(risks) == 0 {
		t.Fatal("expected at least one risk")
	}
	found := false
	for _, r := range risks {
		if r.Category == entities.RiskCategorySecurity {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a security-category risk, got %+v", risks)
	}
}

func TestRiskDefaults(t *testing.T) {
	risks := ExtractRisks("The risk is that the vendor contract expires before renewal is signed.")

	if len(risks) == 0 {
		t.Fatal("expected at least one risk")
	}
	r := risks[0]
	if r.Likelihood != entities.LikelihoodMedium {
		t.Errorf("explicit risk statements get medium likelihood, got %q", r.Likelihood)
	}
	if r.Mitigation != "Not specified" {
		t.Errorf("expected default mitigation, got %q", r.Mitigation)
	}
	if r.Category != entities.RiskCategoryBusiness {
		t.Errorf("contract risk should categorize as business, got %q", r.Category)
	}
}

func TestRiskTextStartsOnWordCharacter(t *testing.T) {
	text := "There's a risk that \"the vendor\" walks away.\n" +
		"The risk is that the vendor contract expires before renewal is signed."
	risks := ExtractRisks(text)

	if len(risks) == 0 {
		t.Fatal("expected at least one risk")
	}
	for _, r := range risks {
		first, _ := utf8.DecodeRuneInString(r.Risk)
		if !unicode.IsLetter(first) && !unicode.IsDigit(first) && first != '_' {
			t.Errorf("risk text starts with %q: %q", first, r.Risk)
		}
	}
}

func TestRiskCap(t *testing.T) {
	text := ""
	for _, s := range []string{
		"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta",
		"iota", "kappa", "lambda", "mu", "nu", "xi", "omicron", "pi", "rho", "sigma",
	} {
		text += "The risk is that the " + s + " subsystem falls behind its planned schedule entirely.\n"
	}
	risks := ExtractRisks(text)
	if len(risks) > 15 {
		t.Errorf("risk list must cap at 15, got %d", len(risks))
	}
}

func TestUserStoryDirectFormat(t *testing.T) {
	text := "As a manager, I want weekly reports, so that I can track progress."
	stories := ExtractUserStories(text)

	if len(stories) == 0 {
		t.Fatal("expected a user story")
	}
	s := stories[0]
	if !strings.Contains(s.Story, "As a manager") || !strings.Contains(s.Story, "so that") {
		t.Errorf("unexpected story format: %q", s.Story)
	}
	if len(s.AcceptanceCriteria) == 0 || len(s.AcceptanceCriteria) > 3 {
		t.Errorf("expected 1-3 acceptance criteria, got %d", len(s.AcceptanceCriteria))
	}
}

func TestUserStoryTemplates(t *testing.T) {
	text := "The app must keep working if the identity provider is down, we need graceful degradation."
	stories := ExtractUserStories(text)

	found := false
	for _, s := range stories {
		if s.Epic == "Reliability" {
			found = true
			if s.Priority != entities.PriorityHigh {
				t.Errorf("reliability template is high priority, got %q", s.Priority)
			}
		}
	}
	if !found {
		t.Errorf("expected graceful degradation template to fire, got %+v", stories)
	}
}

func TestTopicPhraseFrequency(t *testing.T) {
	text := "the payment system is slow. we fixed the payment system. payment system rules."
	topics := IdentifyKeyTopics(text)

	if len(topics) == 0 {
		t.Fatal("topics must never be empty")
	}
	if topics[0] != "Payment System" {
		t.Errorf("expected most frequent phrase first, got %v", topics)
	}
}

func TestTopicsFallback(t *testing.T) {
	topics := IdentifyKeyTopics("ok")
	if len(topics) != 1 || topics[0] != DefaultTopic {
		t.Errorf("expected fallback topic, got %v", topics)
	}
}

func TestConfidenceBounds(t *testing.T) {
	inputs := []string{
		"",
		"Hi",
		"Sarah: We agreed to launch the new budget initiative next quarter because the numbers support it.",
	}
	for _, text := range inputs {
		res := newTestEngine().Analyze(context.Background(), text)
		if res.ConfidenceScore < 0 || res.ConfidenceScore > 1 {
			t.Errorf("confidence for %q out of bounds: %f", text, res.ConfidenceScore)
		}
	}
}

func TestConfidencePenaltyApplied(t *testing.T) {
	// All factors are at most 0.9, so after the flat penalty the score can
	// never reach the top of the scale.
	score := ConfidenceScore("word", nil, nil, nil, nil)
	if score > 0.9-ruleBasedPenalty {
		t.Errorf("short input scored too high: %f", score)
	}
}

func TestGenerateNextStepsPadding(t *testing.T) {
	steps := GenerateNextSteps(nil, nil)
	if len(steps) != 2 {
		t.Fatalf("expected 2 generic steps, got %d", len(steps))
	}
}

func TestGenerateNextStepsCap(t *testing.T) {
	items := []entities.ActionItem{
		{Task: "one", Assignee: "A", Priority: entities.PriorityHigh},
		{Task: "two", Assignee: "B", Priority: entities.PriorityHigh},
		{Task: "three", Assignee: "C", Priority: entities.PriorityHigh},
		{Task: "four", Assignee: "D", Priority: entities.PriorityHigh},
	}
	decisions := []entities.Decision{
		{Decision: "d1", Status: entities.DecisionStatusApproved, Impact: entities.ImpactHigh},
		{Decision: "d2", Status: entities.DecisionStatusApproved, Impact: entities.ImpactMedium},
		{Decision: "d3", Status: entities.DecisionStatusApproved, Impact: entities.ImpactHigh},
	}

	steps := GenerateNextSteps(items, decisions)
	if len(steps) != 5 {
		t.Fatalf("expected 5 steps, got %d: %v", len(steps), steps)
	}
	if steps[0] != "A: one" {
		t.Errorf("expected high priority item first, got %q", steps[0])
	}
	if steps[3] != "Follow up on: d1" {
		t.Errorf("expected decision follow-up after items, got %q", steps[3])
	}
}

func TestInferMeetingType(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Daily standup for the platform team", "standup"},
		{"Sprint planning and roadmap review", "planning"},
		{"What went well this sprint?", "retrospective"},
		{"Nothing special here", "general"},
	}
	for _, tt := range tests {
		if got := InferMeetingType(tt.text); got != tt.want {
			t.Errorf("InferMeetingType(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

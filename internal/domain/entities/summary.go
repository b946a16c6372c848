package entities

import (
	"time"

	"github.com/google/uuid"
)

// Priority levels shared by action items and user stories
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ActionItemStatus constants
const (
	ActionItemStatusPending    = "pending"
	ActionItemStatusInProgress = "in_progress"
	ActionItemStatusCompleted  = "completed"
	ActionItemStatusCancelled  = "cancelled"
)

// DecisionStatus constants
const (
	DecisionStatusApproved = "approved"
	DecisionStatusRejected = "rejected"
	DecisionStatusDeferred = "deferred"
)

// Impact levels for decisions and risks
const (
	ImpactLow    = "low"
	ImpactMedium = "medium"
	ImpactHigh   = "high"
)

// RiskCategory constants
const (
	RiskCategoryTechnical = "technical"
	RiskCategorySecurity  = "security"
	RiskCategoryBusiness  = "business"
)

// Likelihood levels for risks
const (
	LikelihoodLow    = "low"
	LikelihoodMedium = "medium"
	LikelihoodHigh   = "high"
)

// Sentiment values for the overall meeting tone
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// ActionItem is a task extracted from a meeting transcript
type ActionItem struct {
	ID       uuid.UUID `json:"id"`
	Task     string    `json:"task"`
	Assignee string    `json:"assignee"`
	Priority string    `json:"priority"`
	Status   string    `json:"status"`
	Context  string    `json:"context,omitempty"`
	DueDate  string    `json:"due_date,omitempty"` // raw phrase as spoken, e.g. "Friday" or "12/25"
}

// Decision is a decision captured from a meeting transcript
type Decision struct {
	ID        uuid.UUID `json:"id"`
	Decision  string    `json:"decision"`
	MadeBy    string    `json:"made_by"`
	Rationale string    `json:"rationale"`
	Impact    string    `json:"impact"`
	Status    string    `json:"status"`
	Context   string    `json:"context,omitempty"`
}

// Risk is an identified risk with impact and mitigation assessment
type Risk struct {
	ID         uuid.UUID `json:"id"`
	Risk       string    `json:"risk"`
	Category   string    `json:"category"`
	Impact     string    `json:"impact"`
	Likelihood string    `json:"likelihood"`
	Mitigation string    `json:"mitigation"`
	Owner      string    `json:"owner,omitempty"`
}

// UserStory is a requirement captured in "As a X, I want Y, so that Z" form
type UserStory struct {
	ID                 uuid.UUID `json:"id"`
	Story              string    `json:"story"`
	AcceptanceCriteria []string  `json:"acceptance_criteria"`
	Priority           string    `json:"priority"`
	Epic               string    `json:"epic,omitempty"`
}

// MeetingSummary is the complete structured analysis of one transcript
type MeetingSummary struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       string       `json:"meeting_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Summary         string       `json:"summary" gorm:"type:text;not null"`
	KeyTopics       []string     `json:"key_topics" gorm:"type:jsonb;serializer:json"`
	ActionItems     []ActionItem `json:"action_items" gorm:"type:jsonb;serializer:json"`
	Decisions       []Decision   `json:"decisions" gorm:"type:jsonb;serializer:json"`
	Risks           []Risk       `json:"risks" gorm:"type:jsonb;serializer:json"`
	UserStories     []UserStory  `json:"user_stories" gorm:"type:jsonb;serializer:json"`
	Participants    []string     `json:"participants" gorm:"type:jsonb;serializer:json"`
	Sentiment       string       `json:"sentiment" gorm:"type:varchar(20)"`
	NextSteps       []string     `json:"next_steps" gorm:"type:jsonb;serializer:json"`
	ConfidenceScore float64      `json:"confidence_score"`
	ModelUsed       string       `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	ProcessingTime  float64      `json:"processing_time_seconds,omitempty"`
	CreatedAt       time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (MeetingSummary) TableName() string {
	return "meeting_summaries"
}

// NewMeetingSummary creates a summary shell for a meeting
func NewMeetingSummary(meetingID string) *MeetingSummary {
	return &MeetingSummary{
		ID:        uuid.New(),
		MeetingID: meetingID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

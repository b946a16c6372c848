package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TranscriptSource indicates how the transcript text was obtained
type TranscriptSource string

const (
	TranscriptSourceText  TranscriptSource = "text"  // Submitted directly as text
	TranscriptSourceAudio TranscriptSource = "audio" // Produced by speech-to-text from an uploaded recording
)

// Transcript is the stored transcript model
type Transcript struct {
	ID              uuid.UUID                                  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID       string                                     `json:"meeting_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	Title           string                                     `json:"title,omitempty" gorm:"type:varchar(500)"`
	Text            string                                     `json:"text" gorm:"type:text"`
	Source          TranscriptSource                           `json:"source" gorm:"type:varchar(20);default:'text'"`
	AudioObjectKey  string                                     `json:"audio_object_key,omitempty" gorm:"type:varchar(500)"` // object storage key for the uploaded recording
	Language        string                                     `json:"language,omitempty" gorm:"type:varchar(20)"`
	WordCount       int                                        `json:"word_count,omitempty"`
	DurationSeconds int                                        `json:"duration_seconds,omitempty"`
	ConfidenceScore float64                                    `json:"confidence_score,omitempty"`
	ModelUsed       string                                     `json:"model_used,omitempty" gorm:"type:varchar(100)"`
	RawData         datatypes.JSONType[map[string]interface{}] `json:"raw_data,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt       time.Time                                  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time                                  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Transcript) TableName() string {
	return "transcripts"
}

// NewTranscript creates a new transcript from submitted text
func NewTranscript(meetingID, text string) *Transcript {
	return &Transcript{
		ID:        uuid.New(),
		MeetingID: meetingID,
		Text:      text,
		Source:    TranscriptSourceText,
		WordCount: len(strings.Fields(text)),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

package dto

// SubmitTranscriptRequest is the payload for submitting transcript text
type SubmitTranscriptRequest struct {
	MeetingID string `json:"meeting_id" validate:"required,meeting_id"`
	Title     string `json:"title,omitempty" validate:"max=500"`
	Text      string `json:"text" validate:"required"`
}

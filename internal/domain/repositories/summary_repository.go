package repositories

import (
	"context"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// SummaryRepository defines persistence operations for meeting summaries
type SummaryRepository interface {
	// Save inserts the summary, replacing any previous summary for the
	// same meeting.
	Save(ctx context.Context, s *entities.MeetingSummary) error
	GetByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingSummary, error)
	DeleteByMeetingID(ctx context.Context, meetingID string) error
}

package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// TranscriptRepository defines persistence operations for transcripts
type TranscriptRepository interface {
	Create(ctx context.Context, t *entities.Transcript) error
	Update(ctx context.Context, t *entities.Transcript) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Transcript, error)
	GetByMeetingID(ctx context.Context, meetingID string) (*entities.Transcript, error)
	DeleteByMeetingID(ctx context.Context, meetingID string) error
}

package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// SummaryRepository handles meeting summary data operations
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Save inserts the summary, replacing any previous summary for the same meeting
func (r *SummaryRepository) Save(ctx context.Context, summary *entities.MeetingSummary) error {
	if summary == nil {
		return errors.New("summary cannot be nil")
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "meeting_id"}},
			UpdateAll: true,
		}).
		Create(summary).Error
}

// GetByMeetingID retrieves the summary for a meeting
func (r *SummaryRepository) GetByMeetingID(ctx context.Context, meetingID string) (*entities.MeetingSummary, error) {
	var summary entities.MeetingSummary
	if err := r.db.WithContext(ctx).Where("meeting_id = ?", meetingID).First(&summary).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &summary, nil
}

// DeleteByMeetingID deletes the summary for a meeting
func (r *SummaryRepository) DeleteByMeetingID(ctx context.Context, meetingID string) error {
	return r.db.WithContext(ctx).
		Where("meeting_id = ?", meetingID).
		Delete(&entities.MeetingSummary{}).Error
}

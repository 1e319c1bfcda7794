package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// SummaryRepository implements summary persistence with GORM
type SummaryRepository struct {
	db *gorm.DB
}

// NewSummaryRepository creates a new summary repository
func NewSummaryRepository(db *gorm.DB) *SummaryRepository {
	return &SummaryRepository{db: db}
}

// Save inserts a new summary record
func (r *SummaryRepository) Save(s *entities.Summary) error {
	if s == nil {
		return errors.New("summary cannot be nil")
	}
	return r.db.Create(s).Error
}

// GetByID retrieves a summary by ID
func (r *SummaryRepository) GetByID(id uuid.UUID) (*entities.Summary, error) {
	var s entities.Summary
	if err := r.db.Where("id = ?", id).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListByMeeting retrieves every summarization run for a meeting, newest first
func (r *SummaryRepository) ListByMeeting(meetingID uuid.UUID) ([]*entities.Summary, error) {
	var summaries []*entities.Summary
	if err := r.db.
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// ListByMeetingAndType retrieves the runs for one meeting type, newest first
func (r *SummaryRepository) ListByMeetingAndType(meetingID uuid.UUID, typeTag string) ([]*entities.Summary, error) {
	var summaries []*entities.Summary
	if err := r.db.
		Where("meeting_id = ? AND meeting_type = ?", meetingID, typeTag).
		Order("created_at DESC").
		Find(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

// GetLatestByMeeting retrieves the most recent summary for a meeting
func (r *SummaryRepository) GetLatestByMeeting(meetingID uuid.UUID) (*entities.Summary, error) {
	var s entities.Summary
	if err := r.db.
		Where("meeting_id = ?", meetingID).
		Order("created_at DESC").
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// DeleteByMeeting removes all summaries for a meeting
func (r *SummaryRepository) DeleteByMeeting(meetingID uuid.UUID) error {
	return r.db.Delete(&entities.Summary{}, "meeting_id = ?", meetingID).Error
}

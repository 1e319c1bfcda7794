package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// MeetingRepository implements meeting persistence with GORM
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

// Save inserts a new meeting
func (r *MeetingRepository) Save(m *entities.Meeting) error {
	if m == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.Create(m).Error
}

// Update persists changes to an existing meeting
func (r *MeetingRepository) Update(m *entities.Meeting) error {
	if m == nil {
		return errors.New("meeting cannot be nil")
	}
	return r.db.Model(&entities.Meeting{}).
		Where("id = ?", m.ID).
		Save(m).Error
}

// GetByID retrieves a meeting by ID
func (r *MeetingRepository) GetByID(id uuid.UUID) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.db.Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// GetByFirefliesID retrieves a meeting by its provider transcript ID
func (r *MeetingRepository) GetByFirefliesID(firefliesID string) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.db.Where("fireflies_id = ?", firefliesID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// List retrieves meetings newest first
func (r *MeetingRepository) List(limit, offset int) ([]*entities.Meeting, error) {
	if limit <= 0 {
		limit = 50
	}
	var meetings []*entities.Meeting
	if err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListByStatus retrieves meetings in a given pipeline state, oldest first
func (r *MeetingRepository) ListByStatus(status entities.MeetingStatus) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.
		Where("status = ?", status).
		Order("created_at ASC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// ListByClient retrieves all meetings for a client, newest first
func (r *MeetingRepository) ListByClient(clientID uuid.UUID) ([]*entities.Meeting, error) {
	var meetings []*entities.Meeting
	if err := r.db.
		Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&meetings).Error; err != nil {
		return nil, err
	}
	return meetings, nil
}

// Delete removes a meeting
func (r *MeetingRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entities.Meeting{}, "id = ?", id).Error
}

// ClaimForSummarizing atomically transitions a meeting into summarizing.
// The status guard in the WHERE clause makes concurrent claims lose cleanly.
func (r *MeetingRepository) ClaimForSummarizing(id uuid.UUID, fromStatus entities.MeetingStatus, typeTag string) (bool, error) {
	res := r.db.Model(&entities.Meeting{}).
		Where("id = ? AND status = ?", id, fromStatus).
		Updates(map[string]interface{}{
			"status":       entities.MeetingStatusSummarizing,
			"meeting_type": typeTag,
			"updated_at":   time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

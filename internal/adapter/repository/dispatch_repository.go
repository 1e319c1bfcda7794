package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// DispatchRepository implements dispatch record persistence with GORM
type DispatchRepository struct {
	db *gorm.DB
}

// NewDispatchRepository creates a new dispatch repository
func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// SaveNew inserts a dispatch record unless the (meeting, item hash) pair
// already exists. Returns false when the insert was skipped.
func (r *DispatchRepository) SaveNew(d *entities.DispatchRecord) (bool, error) {
	if d == nil {
		return false, errors.New("dispatch record cannot be nil")
	}
	res := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "meeting_id"}, {Name: "item_hash"}},
		DoNothing: true,
	}).Create(d)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Update persists changes to an existing dispatch record
func (r *DispatchRepository) Update(d *entities.DispatchRecord) error {
	if d == nil {
		return errors.New("dispatch record cannot be nil")
	}
	return r.db.Model(&entities.DispatchRecord{}).
		Where("id = ?", d.ID).
		Updates(map[string]interface{}{
			"task_ref": d.TaskRef,
			"error":    d.Error,
		}).Error
}

// GetByMeetingAndHash retrieves the record for one action item of a meeting
func (r *DispatchRepository) GetByMeetingAndHash(meetingID uuid.UUID, itemHash string) (*entities.DispatchRecord, error) {
	var d entities.DispatchRecord
	if err := r.db.
		Where("meeting_id = ? AND item_hash = ?", meetingID, itemHash).
		First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListByMeeting retrieves dispatch records for a meeting in creation order
func (r *DispatchRepository) ListByMeeting(meetingID uuid.UUID) ([]*entities.DispatchRecord, error) {
	var records []*entities.DispatchRecord
	if err := r.db.
		Where("meeting_id = ?", meetingID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListFailed retrieves records whose tracker task was never created
func (r *DispatchRepository) ListFailed() ([]*entities.DispatchRecord, error) {
	var records []*entities.DispatchRecord
	if err := r.db.
		Where("task_ref IS NULL AND error IS NOT NULL").
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

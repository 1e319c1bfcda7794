package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// DispatchRepository defines persistence operations for dispatch records
type DispatchRepository interface {
	// SaveNew inserts the record unless one already exists for the same
	// meeting and item hash. Returns false when the item was seen before.
	SaveNew(d *entities.DispatchRecord) (bool, error)
	Update(d *entities.DispatchRecord) error
	GetByMeetingAndHash(meetingID uuid.UUID, itemHash string) (*entities.DispatchRecord, error)
	ListByMeeting(meetingID uuid.UUID) ([]*entities.DispatchRecord, error)
	ListFailed() ([]*entities.DispatchRecord, error)
}

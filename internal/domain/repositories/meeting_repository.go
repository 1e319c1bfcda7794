package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// MeetingRepository defines persistence operations for meetings
type MeetingRepository interface {
	Save(m *entities.Meeting) error
	Update(m *entities.Meeting) error
	GetByID(id uuid.UUID) (*entities.Meeting, error)
	GetByFirefliesID(firefliesID string) (*entities.Meeting, error)
	List(limit, offset int) ([]*entities.Meeting, error)
	ListByStatus(status entities.MeetingStatus) ([]*entities.Meeting, error)
	ListByClient(clientID uuid.UUID) ([]*entities.Meeting, error)
	Delete(id uuid.UUID) error

	// ClaimForSummarizing atomically moves the meeting into the summarizing
	// state with the given type tag. Returns false when another worker holds
	// the meeting or the state no longer allows a claim.
	ClaimForSummarizing(id uuid.UUID, fromStatus entities.MeetingStatus, typeTag string) (bool, error)
}

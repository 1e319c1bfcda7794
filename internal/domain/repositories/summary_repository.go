package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// SummaryRepository defines persistence operations for summaries
type SummaryRepository interface {
	Save(s *entities.Summary) error
	GetByID(id uuid.UUID) (*entities.Summary, error)
	ListByMeeting(meetingID uuid.UUID) ([]*entities.Summary, error)
	ListByMeetingAndType(meetingID uuid.UUID, typeTag string) ([]*entities.Summary, error)
	GetLatestByMeeting(meetingID uuid.UUID) (*entities.Summary, error)
	DeleteByMeeting(meetingID uuid.UUID) error
}

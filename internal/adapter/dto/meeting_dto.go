package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// SelectTypeRequest assigns a meeting type and starts summarization
type SelectTypeRequest struct {
	MeetingType string     `json:"meeting_type" validate:"required,meeting_type"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
}

// MeetingResponse represents a meeting in API responses
type MeetingResponse struct {
	ID          uuid.UUID  `json:"id"`
	FirefliesID string     `json:"fireflies_id"`
	Title       string     `json:"title"`
	Date        *time.Time `json:"date,omitempty"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	MeetingType *string    `json:"meeting_type,omitempty"`
	Status      string     `json:"status"`
	LastError   *string    `json:"last_error,omitempty"`
	HasText     bool       `json:"has_transcript"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewMeetingResponse maps a meeting entity to its API shape
func NewMeetingResponse(m *entities.Meeting) MeetingResponse {
	return MeetingResponse{
		ID:          m.ID,
		FirefliesID: m.FirefliesID,
		Title:       m.Title,
		Date:        m.Date,
		ClientID:    m.ClientID,
		MeetingType: m.MeetingType,
		Status:      string(m.Status),
		LastError:   m.LastError,
		HasText:     m.HasTranscript(),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// SummaryResponse represents one summarization run
type SummaryResponse struct {
	ID          uuid.UUID              `json:"id"`
	MeetingID   uuid.UUID              `json:"meeting_id"`
	MeetingType string                 `json:"meeting_type"`
	Text        string                 `json:"text"`
	Structured  map[string]interface{} `json:"structured,omitempty"`
	Truncated   bool                   `json:"truncated"`
	ModelUsed   string                 `json:"model_used"`
	CreatedAt   time.Time              `json:"created_at"`
}

// DispatchRecordResponse represents a dispatched action item
type DispatchRecordResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemText  string    `json:"item_text"`
	TaskRef   *string   `json:"task_ref,omitempty"`
	Error     *string   `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// MeetingStatus represents the pipeline state of a meeting
type MeetingStatus string

const (
	MeetingStatusReceived        MeetingStatus = "received"         // Webhook accepted, transcript fetch pending
	MeetingStatusTranscribed     MeetingStatus = "transcribed"      // Transcript persisted
	MeetingStatusTypePending     MeetingStatus = "type_pending"     // Waiting for a human to pick the meeting type
	MeetingStatusSummarizing     MeetingStatus = "summarizing"      // LLM summarization in progress
	MeetingStatusSummarized      MeetingStatus = "summarized"       // Summary persisted
	MeetingStatusTasksDispatched MeetingStatus = "tasks_dispatched" // Action items handed to the task tracker
	MeetingStatusFailed          MeetingStatus = "failed"           // Terminal failure, resubmittable
)

// Meeting represents a recorded conversation ingested from the transcript provider.
// The transcript is immutable after creation; FirefliesID maps to at most one Meeting.
type Meeting struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	FirefliesID string        `json:"fireflies_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	Title       string        `json:"title" gorm:"type:varchar(500)"`
	Date        *time.Time    `json:"date,omitempty" gorm:"type:timestamptz"`
	Transcript  string        `json:"transcript,omitempty" gorm:"type:text"`
	ClientID    *uuid.UUID    `json:"client_id,omitempty" gorm:"type:uuid;index"`
	MeetingType *string       `json:"meeting_type,omitempty" gorm:"type:varchar(50)"` // last selected type tag
	Status      MeetingStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'received'"`

	RetryCount int     `json:"retry_count" gorm:"type:integer;default:0"`
	MaxRetries int     `json:"max_retries" gorm:"type:integer;default:3"`
	LastError  *string `json:"last_error,omitempty" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewMeeting creates a meeting in the received state for a webhook delivery
func NewMeeting(firefliesID string) *Meeting {
	return &Meeting{
		ID:          uuid.New(),
		FirefliesID: firefliesID,
		Status:      MeetingStatusReceived,
		RetryCount:  0,
		MaxRetries:  3,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}

// MarkTranscribed records the fetched transcript and metadata
func (m *Meeting) MarkTranscribed(title string, date *time.Time, transcript string) {
	m.Title = title
	m.Date = date
	m.Transcript = transcript
	m.Status = MeetingStatusTranscribed
	m.UpdatedAt = time.Now()
}

// MarkTypePending moves the meeting to the suspension point where it waits
// for a human to supply the type tag
func (m *Meeting) MarkTypePending() {
	m.Status = MeetingStatusTypePending
	m.UpdatedAt = time.Now()
}

// MarkSummarizing records the selected type and starts summarization
func (m *Meeting) MarkSummarizing(typeTag string) {
	m.MeetingType = &typeTag
	m.Status = MeetingStatusSummarizing
	m.UpdatedAt = time.Now()
}

// MarkSummarized marks a successful summarization
func (m *Meeting) MarkSummarized() {
	m.Status = MeetingStatusSummarized
	m.UpdatedAt = time.Now()
}

// MarkTasksDispatched marks the end of the pipeline for this type selection
func (m *Meeting) MarkTasksDispatched() {
	m.Status = MeetingStatusTasksDispatched
	m.UpdatedAt = time.Now()
}

// MarkFailed records a terminal failure with the triggering error preserved
func (m *Meeting) MarkFailed(errMsg string) {
	m.Status = MeetingStatusFailed
	m.LastError = &errMsg
	m.UpdatedAt = time.Now()
}

// IncrementRetry bumps the fetch retry counter
func (m *Meeting) IncrementRetry(errMsg string) {
	m.RetryCount++
	m.LastError = &errMsg
	m.UpdatedAt = time.Now()
}

// IsRetryable reports whether the transcript fetch can be retried
func (m *Meeting) IsRetryable() bool {
	return m.RetryCount < m.MaxRetries
}

// HasTranscript reports whether a transcript has been persisted
func (m *Meeting) HasTranscript() bool {
	return m.Transcript != ""
}

// CanSelectType reports whether a type selection is accepted in the current
// state. Re-selection after a completed run produces an additional summary;
// selection on a failed meeting restarts summarization.
func (m *Meeting) CanSelectType() bool {
	switch m.Status {
	case MeetingStatusTypePending, MeetingStatusSummarized, MeetingStatusTasksDispatched, MeetingStatusFailed:
		return m.HasTranscript()
	default:
		return false
	}
}

// TableName specifies the table name for GORM
func (Meeting) TableName() string {
	return "meetings"
}

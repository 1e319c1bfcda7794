package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Summary is one summarization run for a meeting. A meeting accumulates one
// dated record per run; re-running the same type appends rather than replaces.
type Summary struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID   uuid.UUID      `json:"meeting_id" gorm:"type:uuid;not null;index"`
	MeetingType string         `json:"meeting_type" gorm:"type:varchar(50);not null;index"`
	ContentText string         `json:"content_text" gorm:"type:text;not null"`
	ContentJSON datatypes.JSON `json:"content_json,omitempty" gorm:"type:jsonb"` // null when structure extraction failed
	Truncated   bool           `json:"truncated" gorm:"default:false"`           // input or output was clipped to fit a budget
	ModelUsed   string         `json:"model_used" gorm:"type:varchar(100)"`
	CreatedAt   time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// NewSummary creates a summary record for a meeting and type tag
func NewSummary(meetingID uuid.UUID, typeTag string) *Summary {
	return &Summary{
		ID:          uuid.New(),
		MeetingID:   meetingID,
		MeetingType: typeTag,
		CreatedAt:   time.Now(),
	}
}

// HasStructured reports whether structured content was extracted
func (s *Summary) HasStructured() bool {
	return len(s.ContentJSON) > 0
}

// TableName specifies the table name for GORM
func (Summary) TableName() string {
	return "summaries"
}

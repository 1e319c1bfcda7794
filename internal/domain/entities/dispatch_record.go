package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DispatchRecord tracks one action item handed to the task tracker.
// The (meeting_id, item_hash) pair is unique so re-dispatching a meeting
// never creates duplicate tasks.
type DispatchRecord struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID uuid.UUID  `json:"meeting_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_dispatch_meeting_hash"`
	ClientID  *uuid.UUID `json:"client_id,omitempty" gorm:"type:uuid"`
	ItemHash  string     `json:"item_hash" gorm:"type:varchar(64);not null;uniqueIndex:idx_dispatch_meeting_hash"`
	ItemText  string     `json:"item_text" gorm:"type:text;not null"`
	TaskRef   *string    `json:"task_ref,omitempty" gorm:"type:varchar(100)"` // tracker task id once created
	Error     *string    `json:"error,omitempty" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

// NewDispatchRecord creates a pending dispatch record for an action item
func NewDispatchRecord(meetingID uuid.UUID, clientID *uuid.UUID, itemText string) *DispatchRecord {
	return &DispatchRecord{
		ID:        uuid.New(),
		MeetingID: meetingID,
		ClientID:  clientID,
		ItemHash:  HashActionItem(itemText),
		ItemText:  itemText,
		CreatedAt: time.Now(),
	}
}

// MarkDispatched records the tracker task reference
func (d *DispatchRecord) MarkDispatched(taskRef string) {
	d.TaskRef = &taskRef
	d.Error = nil
}

// MarkFailed records the dispatch error for later inspection
func (d *DispatchRecord) MarkFailed(errMsg string) {
	d.Error = &errMsg
}

// IsDispatched reports whether a tracker task exists for this item
func (d *DispatchRecord) IsDispatched() bool {
	return d.TaskRef != nil && *d.TaskRef != ""
}

// HashActionItem produces a stable hash for an action item text.
// Whitespace and case differences do not produce distinct items.
func HashActionItem(text string) string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// TableName specifies the table name for GORM
func (DispatchRecord) TableName() string {
	return "dispatch_records"
}

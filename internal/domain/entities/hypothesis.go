package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HypothesisStatus represents where a hypothesis sits in its test cycle
type HypothesisStatus string

const (
	HypothesisStatusActive    HypothesisStatus = "active"
	HypothesisStatusTesting   HypothesisStatus = "testing"
	HypothesisStatusValidated HypothesisStatus = "validated"
	HypothesisStatusFailed    HypothesisStatus = "failed"
	HypothesisStatusPaused    HypothesisStatus = "paused"
)

// HypothesisStatuses lists every recognized status
var HypothesisStatuses = []HypothesisStatus{
	HypothesisStatusActive,
	HypothesisStatusTesting,
	HypothesisStatusValidated,
	HypothesisStatusFailed,
	HypothesisStatusPaused,
}

// Hypothesis is a growth experiment tracked for a client, optionally tied to
// the meeting where it was proposed
type Hypothesis struct {
	ID              uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID        uuid.UUID        `json:"client_id" gorm:"type:uuid;not null;index"`
	Title           string           `json:"title" gorm:"type:varchar(500);not null"`
	Description     *string          `json:"description,omitempty" gorm:"type:text"`
	SuccessCriteria datatypes.JSON   `json:"success_criteria,omitempty" gorm:"type:jsonb"`
	Status          HypothesisStatus `json:"status" gorm:"type:varchar(50);not null;index;default:'active'"`
	Result          *string          `json:"result,omitempty" gorm:"type:text"`
	ResultData      datatypes.JSON   `json:"result_data,omitempty" gorm:"type:jsonb"`
	Quarter         *string          `json:"quarter,omitempty" gorm:"type:varchar(10);index"`
	TestedAt        *time.Time       `json:"tested_at,omitempty" gorm:"type:timestamptz"`
	MeetingID       *uuid.UUID       `json:"meeting_id,omitempty" gorm:"type:uuid"`
	CreatedAt       time.Time        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time        `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewHypothesis creates a hypothesis in the active state
func NewHypothesis(clientID uuid.UUID, title string) *Hypothesis {
	return &Hypothesis{
		ID:        uuid.New(),
		ClientID:  clientID,
		Title:     title,
		Status:    HypothesisStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// SetOutcome records a status change. Moving to a terminal outcome stamps
// the test date.
func (h *Hypothesis) SetOutcome(status HypothesisStatus, result *string, resultData datatypes.JSON) {
	h.Status = status
	if result != nil {
		h.Result = result
	}
	if len(resultData) > 0 {
		h.ResultData = resultData
	}
	if status == HypothesisStatusValidated || status == HypothesisStatusFailed {
		now := time.Now()
		h.TestedAt = &now
	}
	h.UpdatedAt = time.Now()
}

// IsValidHypothesisStatus reports whether raw is a recognized status
func IsValidHypothesisStatus(raw string) bool {
	for _, s := range HypothesisStatuses {
		if string(s) == raw {
			return true
		}
	}
	return false
}

// TableName specifies the table name for GORM
func (Hypothesis) TableName() string {
	return "hypotheses"
}

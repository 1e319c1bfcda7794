package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// CreateHypothesisRequest registers a growth experiment for a client
type CreateHypothesisRequest struct {
	ClientID        uuid.UUID      `json:"client_id" validate:"required"`
	Title           string         `json:"title" validate:"required,min=1,max=500"`
	Description     *string        `json:"description,omitempty"`
	SuccessCriteria datatypes.JSON `json:"success_criteria,omitempty"`
	Quarter         *string        `json:"quarter,omitempty" validate:"omitempty,max=10"`
	MeetingID       *uuid.UUID     `json:"meeting_id,omitempty"`
}

// UpdateHypothesisRequest moves a hypothesis through its test cycle
type UpdateHypothesisRequest struct {
	Status     string         `json:"status" validate:"required,oneof=active testing validated failed paused"`
	Result     *string        `json:"result,omitempty"`
	ResultData datatypes.JSON `json:"result_data,omitempty"`
}

// HypothesisResponse represents a hypothesis in API responses
type HypothesisResponse struct {
	ID              uuid.UUID      `json:"id"`
	ClientID        uuid.UUID      `json:"client_id"`
	Title           string         `json:"title"`
	Description     *string        `json:"description,omitempty"`
	SuccessCriteria datatypes.JSON `json:"success_criteria,omitempty"`
	Status          string         `json:"status"`
	Result          *string        `json:"result,omitempty"`
	ResultData      datatypes.JSON `json:"result_data,omitempty"`
	Quarter         *string        `json:"quarter,omitempty"`
	TestedAt        *time.Time     `json:"tested_at,omitempty"`
	MeetingID       *uuid.UUID     `json:"meeting_id,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
}

// NewHypothesisResponse maps a hypothesis entity to its API shape
func NewHypothesisResponse(h *entities.Hypothesis) HypothesisResponse {
	return HypothesisResponse{
		ID:              h.ID,
		ClientID:        h.ClientID,
		Title:           h.Title,
		Description:     h.Description,
		SuccessCriteria: h.SuccessCriteria,
		Status:          string(h.Status),
		Result:          h.Result,
		ResultData:      h.ResultData,
		Quarter:         h.Quarter,
		TestedAt:        h.TestedAt,
		MeetingID:       h.MeetingID,
		CreatedAt:       h.CreatedAt,
	}
}

package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// CreateLeadRequest captures an inbound prospect
type CreateLeadRequest struct {
	Name       string  `json:"name" validate:"required,min=1,max=255"`
	TelegramID *string `json:"telegram_id,omitempty"`
	Message    string  `json:"message,omitempty"`
	Channel    string  `json:"channel,omitempty" validate:"omitempty,max=50"`
}

// UpdateLeadRequest moves a lead through the funnel
type UpdateLeadRequest struct {
	Status *string `json:"status,omitempty" validate:"omitempty,oneof=new contacted converted archived"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TelegramID *string   `json:"telegram_id,omitempty"`
	Message    string    `json:"message,omitempty"`
	Channel    string    `json:"channel,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// NewLeadResponse maps a lead entity to its API shape
func NewLeadResponse(l *entities.Lead) LeadResponse {
	return LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		TelegramID: l.TelegramID,
		Message:    l.Message,
		Channel:    l.Channel,
		Status:     string(l.Status),
		CreatedAt:  l.CreatedAt,
	}
}

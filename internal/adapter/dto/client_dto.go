package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// CreateClientRequest registers a new client
type CreateClientRequest struct {
	Name           string `json:"name" validate:"required,min=1,max=255"`
	TelegramChatID *int64 `json:"telegram_chat_id,omitempty"`
}

// UpdateClientRequest updates client fields
type UpdateClientRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	TelegramChatID *int64  `json:"telegram_chat_id,omitempty"`
}

// SetMappingRequest binds a client to a task tracker project
type SetMappingRequest struct {
	ProjectID string `json:"project_id" validate:"required"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty"`
	ProjectID      *string   `json:"project_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewClientResponse maps a client entity to its API shape
func NewClientResponse(c *entities.Client, mapping *entities.ProjectMapping) ClientResponse {
	resp := ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		TelegramChatID: c.TelegramChatID,
		CreatedAt:      c.CreatedAt,
	}
	if mapping != nil {
		resp.ProjectID = &mapping.ProjectID
	}
	return resp
}

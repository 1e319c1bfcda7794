package entities

import (
	"time"

	"github.com/google/uuid"
)

// Client is a customer whose meetings flow through the pipeline
type Client struct {
	ID             uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name           string    `json:"name" gorm:"type:varchar(255);not null"`
	TelegramChatID *int64    `json:"telegram_chat_id,omitempty" gorm:"type:bigint"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewClient creates a client record
func NewClient(name string) *Client {
	return &Client{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// TableName specifies the table name for GORM
func (Client) TableName() string {
	return "clients"
}

// ProjectMapping links a client to its task tracker project.
// At most one mapping exists per client.
type ProjectMapping struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ClientID  uuid.UUID `json:"client_id" gorm:"type:uuid;uniqueIndex;not null"`
	ProjectID string    `json:"project_id" gorm:"type:varchar(100);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewProjectMapping creates a client to project mapping
func NewProjectMapping(clientID uuid.UUID, projectID string) *ProjectMapping {
	return &ProjectMapping{
		ID:        uuid.New(),
		ClientID:  clientID,
		ProjectID: projectID,
		CreatedAt: time.Now(),
	}
}

// TableName specifies the table name for GORM
func (ProjectMapping) TableName() string {
	return "project_mappings"
}

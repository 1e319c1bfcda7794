package entities

import (
	"time"

	"github.com/google/uuid"
)

// LeadStatus represents where a lead sits in the intake funnel
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "new"
	LeadStatusContacted LeadStatus = "contacted"
	LeadStatusConverted LeadStatus = "converted"
	LeadStatusArchived  LeadStatus = "archived"
)

// Lead is an inbound prospect captured before any meeting happens
type Lead struct {
	ID         uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name       string     `json:"name" gorm:"type:varchar(255);not null"`
	TelegramID *string    `json:"telegram_id,omitempty" gorm:"type:varchar(100)"`
	Message    string     `json:"message" gorm:"type:text"`
	Channel    string     `json:"channel" gorm:"type:varchar(50)"` // where the lead came from
	Status     LeadStatus `json:"status" gorm:"type:varchar(50);not null;default:'new'"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// NewLead creates a lead in the new state
func NewLead(name, message, channel string) *Lead {
	return &Lead{
		ID:        uuid.New(),
		Name:      name,
		Message:   message,
		Channel:   channel,
		Status:    LeadStatusNew,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// MarkContacted records that the lead has been reached out to
func (l *Lead) MarkContacted() {
	l.Status = LeadStatusContacted
	l.UpdatedAt = time.Now()
}

// MarkConverted records that the lead became a client
func (l *Lead) MarkConverted() {
	l.Status = LeadStatusConverted
	l.UpdatedAt = time.Now()
}

// TableName specifies the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

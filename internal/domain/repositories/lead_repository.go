package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// LeadRepository defines persistence operations for leads
type LeadRepository interface {
	Save(l *entities.Lead) error
	Update(l *entities.Lead) error
	GetByID(id uuid.UUID) (*entities.Lead, error)
	List(status *entities.LeadStatus) ([]*entities.Lead, error)
	Delete(id uuid.UUID) error
}

package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// ClientRepository defines persistence operations for clients and their
// task tracker project mappings
type ClientRepository interface {
	Save(c *entities.Client) error
	Update(c *entities.Client) error
	GetByID(id uuid.UUID) (*entities.Client, error)
	GetByName(name string) (*entities.Client, error)
	List() ([]*entities.Client, error)
	Delete(id uuid.UUID) error

	SaveMapping(m *entities.ProjectMapping) error
	GetMappingByClient(clientID uuid.UUID) (*entities.ProjectMapping, error)
	DeleteMapping(clientID uuid.UUID) error
}

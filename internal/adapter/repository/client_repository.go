package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// ClientRepository implements client and project mapping persistence with GORM
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// Save inserts a new client
func (r *ClientRepository) Save(c *entities.Client) error {
	if c == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.Create(c).Error
}

// Update persists changes to an existing client
func (r *ClientRepository) Update(c *entities.Client) error {
	if c == nil {
		return errors.New("client cannot be nil")
	}
	return r.db.Model(&entities.Client{}).
		Where("id = ?", c.ID).
		Save(c).Error
}

// GetByID retrieves a client by ID
func (r *ClientRepository) GetByID(id uuid.UUID) (*entities.Client, error) {
	var c entities.Client
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetByName retrieves a client by exact name
func (r *ClientRepository) GetByName(name string) (*entities.Client, error) {
	var c entities.Client
	if err := r.db.Where("name = ?", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// List retrieves all clients ordered by name
func (r *ClientRepository) List() ([]*entities.Client, error) {
	var clients []*entities.Client
	if err := r.db.Order("name ASC").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Delete removes a client and its project mapping
func (r *ClientRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entities.ProjectMapping{}, "client_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Client{}, "id = ?", id).Error
	})
}

// SaveMapping upserts the project mapping for a client
func (r *ClientRepository) SaveMapping(m *entities.ProjectMapping) error {
	if m == nil {
		return errors.New("mapping cannot be nil")
	}
	existing, err := r.GetMappingByClient(m.ClientID)
	if err != nil {
		return err
	}
	if existing != nil {
		return r.db.Model(&entities.ProjectMapping{}).
			Where("client_id = ?", m.ClientID).
			Update("project_id", m.ProjectID).Error
	}
	return r.db.Create(m).Error
}

// GetMappingByClient retrieves the project mapping for a client
func (r *ClientRepository) GetMappingByClient(clientID uuid.UUID) (*entities.ProjectMapping, error) {
	var m entities.ProjectMapping
	if err := r.db.Where("client_id = ?", clientID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// DeleteMapping removes the project mapping for a client
func (r *ClientRepository) DeleteMapping(clientID uuid.UUID) error {
	return r.db.Delete(&entities.ProjectMapping{}, "client_id = ?", clientID).Error
}

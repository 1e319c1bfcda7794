package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// LeadRepository implements lead persistence with GORM
type LeadRepository struct {
	db *gorm.DB
}

// NewLeadRepository creates a new lead repository
func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// Save inserts a new lead
func (r *LeadRepository) Save(l *entities.Lead) error {
	if l == nil {
		return errors.New("lead cannot be nil")
	}
	return r.db.Create(l).Error
}

// Update persists changes to an existing lead
func (r *LeadRepository) Update(l *entities.Lead) error {
	if l == nil {
		return errors.New("lead cannot be nil")
	}
	return r.db.Model(&entities.Lead{}).
		Where("id = ?", l.ID).
		Save(l).Error
}

// GetByID retrieves a lead by ID
func (r *LeadRepository) GetByID(id uuid.UUID) (*entities.Lead, error) {
	var l entities.Lead
	if err := r.db.Where("id = ?", id).First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

// List retrieves leads, optionally filtered by status, newest first
func (r *LeadRepository) List(status *entities.LeadStatus) ([]*entities.Lead, error) {
	var leads []*entities.Lead
	query := r.db.Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Delete removes a lead
func (r *LeadRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entities.Lead{}, "id = ?", id).Error
}

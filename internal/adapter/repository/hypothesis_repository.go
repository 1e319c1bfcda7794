package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

// HypothesisRepository implements hypothesis persistence with GORM
type HypothesisRepository struct {
	db *gorm.DB
}

// NewHypothesisRepository creates a new hypothesis repository
func NewHypothesisRepository(db *gorm.DB) *HypothesisRepository {
	return &HypothesisRepository{db: db}
}

// Save inserts a new hypothesis
func (r *HypothesisRepository) Save(h *entities.Hypothesis) error {
	if h == nil {
		return errors.New("hypothesis cannot be nil")
	}
	return r.db.Create(h).Error
}

// Update persists changes to an existing hypothesis
func (r *HypothesisRepository) Update(h *entities.Hypothesis) error {
	if h == nil {
		return errors.New("hypothesis cannot be nil")
	}
	return r.db.Model(&entities.Hypothesis{}).
		Where("id = ?", h.ID).
		Save(h).Error
}

// GetByID retrieves a hypothesis by ID
func (r *HypothesisRepository) GetByID(id uuid.UUID) (*entities.Hypothesis, error) {
	var h entities.Hypothesis
	if err := r.db.Where("id = ?", id).First(&h).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &h, nil
}

// List retrieves hypotheses matching the filter, newest first
func (r *HypothesisRepository) List(filter repositories.HypothesisFilter) ([]*entities.Hypothesis, error) {
	var hypotheses []*entities.Hypothesis
	query := r.db.Order("created_at DESC")
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Quarter != "" {
		query = query.Where("quarter = ?", filter.Quarter)
	}
	if err := query.Find(&hypotheses).Error; err != nil {
		return nil, err
	}
	return hypotheses, nil
}

// Delete removes a hypothesis
func (r *HypothesisRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&entities.Hypothesis{}, "id = ?", id).Error
}

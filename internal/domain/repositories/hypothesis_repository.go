package repositories

import (
	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// HypothesisFilter narrows a hypothesis listing. Zero-value fields are
// ignored.
type HypothesisFilter struct {
	ClientID *uuid.UUID
	Status   *entities.HypothesisStatus
	Quarter  string
}

// HypothesisRepository defines persistence operations for hypotheses
type HypothesisRepository interface {
	Save(h *entities.Hypothesis) error
	Update(h *entities.Hypothesis) error
	GetByID(id uuid.UUID) (*entities.Hypothesis, error)
	List(filter HypothesisFilter) ([]*entities.Hypothesis, error)
	Delete(id uuid.UUID) error
}

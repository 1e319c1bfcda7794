package handler

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

// HypothesisHandler manages growth experiments tracked per client
type HypothesisHandler struct {
	hypotheses repositories.HypothesisRepository
	logger     *zap.Logger
}

// NewHypothesisHandler creates a new hypothesis handler
func NewHypothesisHandler(hypotheses repositories.HypothesisRepository, logger *zap.Logger) *HypothesisHandler {
	return &HypothesisHandler{hypotheses: hypotheses, logger: logger}
}

// Create registers a hypothesis for a client
func (hh *HypothesisHandler) Create(c echo.Context) error {
	var req dto.CreateHypothesisRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(hh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(hh.logger, c, errors.ErrValidation(err.Error()))
	}

	hypothesis := entities.NewHypothesis(req.ClientID, req.Title)
	hypothesis.Description = req.Description
	hypothesis.SuccessCriteria = req.SuccessCriteria
	hypothesis.Quarter = req.Quarter
	hypothesis.MeetingID = req.MeetingID
	if err := hh.hypotheses.Save(hypothesis); err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("save hypothesis", err))
	}

	hh.logger.Info("✅ Hypothesis registered",
		zap.String("hypothesis_id", hypothesis.ID.String()),
		zap.String("client_id", hypothesis.ClientID.String()))
	return HandleSuccess(hh.logger, c, dto.NewHypothesisResponse(hypothesis))
}

// List returns hypotheses filtered by client, status or quarter
func (hh *HypothesisHandler) List(c echo.Context) error {
	var filter repositories.HypothesisFilter
	if raw := c.QueryParam("client_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			return HandleError(hh.logger, c, errors.ErrInvalidArgument("invalid client id"))
		}
		filter.ClientID = &clientID
	}
	if raw := c.QueryParam("status"); raw != "" {
		if !entities.IsValidHypothesisStatus(raw) {
			return HandleError(hh.logger, c, errors.ErrInvalidArgument("unknown hypothesis status"))
		}
		status := entities.HypothesisStatus(raw)
		filter.Status = &status
	}
	filter.Quarter = c.QueryParam("quarter")

	hypotheses, err := hh.hypotheses.List(filter)
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("list hypotheses", err))
	}

	out := make([]dto.HypothesisResponse, 0, len(hypotheses))
	for _, h := range hypotheses {
		out = append(out, dto.NewHypothesisResponse(h))
	}
	return HandleSuccess(hh.logger, c, out)
}

// Get returns one hypothesis
func (hh *HypothesisHandler) Get(c echo.Context) error {
	hypothesisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrInvalidArgument("invalid hypothesis id"))
	}

	hypothesis, err := hh.hypotheses.GetByID(hypothesisID)
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("get hypothesis", err))
	}
	if hypothesis == nil {
		return HandleError(hh.logger, c, errors.ErrNotFound("hypothesis"))
	}
	return HandleSuccess(hh.logger, c, dto.NewHypothesisResponse(hypothesis))
}

// Update records a status change and optional test outcome
func (hh *HypothesisHandler) Update(c echo.Context) error {
	hypothesisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrInvalidArgument("invalid hypothesis id"))
	}

	var req dto.UpdateHypothesisRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(hh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(hh.logger, c, errors.ErrValidation(err.Error()))
	}

	hypothesis, err := hh.hypotheses.GetByID(hypothesisID)
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("get hypothesis", err))
	}
	if hypothesis == nil {
		return HandleError(hh.logger, c, errors.ErrNotFound("hypothesis"))
	}

	hypothesis.SetOutcome(entities.HypothesisStatus(req.Status), req.Result, req.ResultData)
	if err := hh.hypotheses.Update(hypothesis); err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("update hypothesis", err))
	}
	return HandleSuccess(hh.logger, c, dto.NewHypothesisResponse(hypothesis))
}

// Delete removes a hypothesis
func (hh *HypothesisHandler) Delete(c echo.Context) error {
	hypothesisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(hh.logger, c, errors.ErrInvalidArgument("invalid hypothesis id"))
	}

	if err := hh.hypotheses.Delete(hypothesisID); err != nil {
		return HandleError(hh.logger, c, errors.ErrDBQueryFailed("delete hypothesis", err))
	}
	return HandleSuccess(hh.logger, c, map[string]string{"status": "deleted"})
}

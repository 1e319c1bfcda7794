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

// LeadHandler manages inbound prospects
type LeadHandler struct {
	leads  repositories.LeadRepository
	logger *zap.Logger
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leads repositories.LeadRepository, logger *zap.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, logger: logger}
}

// Create captures a new lead
func (lh *LeadHandler) Create(c echo.Context) error {
	var req dto.CreateLeadRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(lh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(lh.logger, c, errors.ErrValidation(err.Error()))
	}

	lead := entities.NewLead(req.Name, req.Message, req.Channel)
	lead.TelegramID = req.TelegramID
	if err := lh.leads.Save(lead); err != nil {
		return HandleError(lh.logger, c, errors.ErrDBQueryFailed("save lead", err))
	}

	lh.logger.Info("✅ Lead captured",
		zap.String("lead_id", lead.ID.String()),
		zap.String("channel", lead.Channel))
	return HandleSuccess(lh.logger, c, dto.NewLeadResponse(lead))
}

// List returns leads, optionally filtered by status
func (lh *LeadHandler) List(c echo.Context) error {
	var status *entities.LeadStatus
	if raw := c.QueryParam("status"); raw != "" {
		s := entities.LeadStatus(raw)
		status = &s
	}

	leads, err := lh.leads.List(status)
	if err != nil {
		return HandleError(lh.logger, c, errors.ErrDBQueryFailed("list leads", err))
	}

	out := make([]dto.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, dto.NewLeadResponse(l))
	}
	return HandleSuccess(lh.logger, c, out)
}

// Update moves a lead through the funnel
func (lh *LeadHandler) Update(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(lh.logger, c, errors.ErrInvalidArgument("invalid lead id"))
	}

	var req dto.UpdateLeadRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(lh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(lh.logger, c, errors.ErrValidation(err.Error()))
	}

	lead, err := lh.leads.GetByID(leadID)
	if err != nil {
		return HandleError(lh.logger, c, errors.ErrDBQueryFailed("get lead", err))
	}
	if lead == nil {
		return HandleError(lh.logger, c, errors.ErrNotFound("lead"))
	}

	if req.Status != nil {
		lead.Status = entities.LeadStatus(*req.Status)
	}
	if err := lh.leads.Update(lead); err != nil {
		return HandleError(lh.logger, c, errors.ErrDBQueryFailed("update lead", err))
	}
	return HandleSuccess(lh.logger, c, dto.NewLeadResponse(lead))
}

// Delete removes a lead
func (lh *LeadHandler) Delete(c echo.Context) error {
	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(lh.logger, c, errors.ErrInvalidArgument("invalid lead id"))
	}

	if err := lh.leads.Delete(leadID); err != nil {
		return HandleError(lh.logger, c, errors.ErrDBQueryFailed("delete lead", err))
	}
	return HandleSuccess(lh.logger, c, map[string]string{"status": "deleted"})
}

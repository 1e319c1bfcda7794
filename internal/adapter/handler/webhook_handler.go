package handler

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/ingest"
)

// WebhookHandler receives transcript provider callbacks
type WebhookHandler struct {
	svc    ingest.Service
	logger *zap.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(svc ingest.Service, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{svc: svc, logger: logger}
}

// HandleFireflies accepts a webhook delivery and starts the transcript
// fetch in the background. Duplicate deliveries and foreign events are
// acknowledged without side effects so the provider stops retrying.
func (wh *WebhookHandler) HandleFireflies(c echo.Context) error {
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return HandleError(wh.logger, c, errors.ErrInvalidPayload())
	}

	var req dto.FirefliesWebhookRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return HandleError(wh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(wh.logger, c, errors.ErrValidation(err.Error()))
	}

	meeting, duplicate, err := wh.svc.HandleWebhook(c.Request().Context(), req.MeetingID, req.EventType, raw)
	if err != nil {
		return HandleError(wh.logger, c, err)
	}
	if meeting == nil {
		return HandleSuccess(wh.logger, c, dto.WebhookResponse{Status: "ignored"})
	}
	if duplicate {
		return HandleSuccess(wh.logger, c, dto.WebhookResponse{
			MeetingID: meeting.ID.String(),
			Status:    "duplicate",
		})
	}

	// Fetch outside the request so the provider gets a fast ack
	meetingID := meeting.ID
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if err := wh.svc.FetchTranscript(ctx, meetingID); err != nil {
			wh.logger.Error("❌ background transcript fetch failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err))
		}
	}()

	return HandleSuccess(wh.logger, c, dto.WebhookResponse{
		MeetingID: meeting.ID.String(),
		Status:    "accepted",
	})
}

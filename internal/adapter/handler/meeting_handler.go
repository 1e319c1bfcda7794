package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/rag"
	"github.com/meetingintel-team/meeting-intel/internal/usecase/summarize"
)

// Redispatcher retries the failed action items of a meeting
type Redispatcher interface {
	Redispatch(ctx context.Context, meeting *entities.Meeting) error
}

// MeetingHandler exposes the meeting pipeline over HTTP
type MeetingHandler struct {
	meetings   repositories.MeetingRepository
	summaries  repositories.SummaryRepository
	dispatches repositories.DispatchRepository
	summarizer summarize.Service
	dispatcher Redispatcher
	indexer    *rag.Indexer
	logger     *zap.Logger
}

// NewMeetingHandler creates a new meeting handler
func NewMeetingHandler(
	meetings repositories.MeetingRepository,
	summaries repositories.SummaryRepository,
	dispatches repositories.DispatchRepository,
	summarizer summarize.Service,
	dispatcher Redispatcher,
	indexer *rag.Indexer,
	logger *zap.Logger,
) *MeetingHandler {
	return &MeetingHandler{
		meetings:   meetings,
		summaries:  summaries,
		dispatches: dispatches,
		summarizer: summarizer,
		dispatcher: dispatcher,
		indexer:    indexer,
		logger:     logger,
	}
}

// SelectType assigns a meeting type and starts summarization in the
// background. Re-selecting a type on a finished meeting starts another run.
func (mh *MeetingHandler) SelectType(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	var req dto.SelectTypeRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(mh.logger, c, errors.ErrUnknownMeetingType(req.MeetingType))
	}

	meeting, err := mh.meetings.GetByID(meetingID)
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("get meeting", err))
	}
	if meeting == nil {
		return HandleError(mh.logger, c, errors.ErrNotFound("meeting"))
	}
	if !meeting.HasTranscript() {
		return HandleError(mh.logger, c, errors.ErrValidation("meeting has no transcript yet"))
	}
	if !meeting.CanSelectType() {
		return HandleError(mh.logger, c,
			errors.ErrSummarizationInFlight(meetingID.String(), req.MeetingType))
	}

	if req.ClientID != nil {
		meeting.ClientID = req.ClientID
		if err := mh.meetings.Update(meeting); err != nil {
			return HandleError(mh.logger, c, errors.ErrDBQueryFailed("update meeting", err))
		}
	}

	typeTag := req.MeetingType
	go func() {
		if err := mh.summarizer.Summarize(context.Background(), meetingID, typeTag); err != nil {
			mh.logger.Error("❌ background summarization failed",
				zap.String("meeting_id", meetingID.String()),
				zap.String("meeting_type", typeTag),
				zap.Error(err))
		}
	}()

	return HandleSuccess(mh.logger, c, map[string]interface{}{
		"status":       "summarization_started",
		"meeting_id":   meetingID.String(),
		"meeting_type": typeTag,
	})
}

// List returns meetings newest first with limit/offset paging, optionally
// filtered by pipeline status
func (mh *MeetingHandler) List(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))

	var meetings []*entities.Meeting
	var err error
	if status := resolveStatus(c.QueryParam("status")); status != nil {
		meetings, err = mh.meetings.ListByStatus(*status)
	} else {
		meetings, err = mh.meetings.List(limit, offset)
	}
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("list meetings", err))
	}

	out := make([]dto.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		out = append(out, dto.NewMeetingResponse(m))
	}
	return HandleSuccess(mh.logger, c, out)
}

// Get returns one meeting
func (mh *MeetingHandler) Get(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	meeting, err := mh.meetings.GetByID(meetingID)
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("get meeting", err))
	}
	if meeting == nil {
		return HandleError(mh.logger, c, errors.ErrNotFound("meeting"))
	}
	return HandleSuccess(mh.logger, c, dto.NewMeetingResponse(meeting))
}

// Delete removes a meeting together with its summaries, chunks and vectors
func (mh *MeetingHandler) Delete(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	meeting, err := mh.meetings.GetByID(meetingID)
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("get meeting", err))
	}
	if meeting == nil {
		return HandleError(mh.logger, c, errors.ErrNotFound("meeting"))
	}

	if err := mh.indexer.RemoveMeeting(meetingID); err != nil {
		return HandleError(mh.logger, c, err)
	}
	if err := mh.summaries.DeleteByMeeting(meetingID); err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("delete summaries", err))
	}
	if err := mh.meetings.Delete(meetingID); err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("delete meeting", err))
	}

	mh.logger.Info("✅ Meeting deleted", zap.String("meeting_id", meetingID.String()))
	return HandleSuccess(mh.logger, c, map[string]string{"status": "deleted"})
}

// GetSummaries returns the summarization runs for a meeting, newest first.
// ?type= narrows to one meeting type and ?latest=true keeps only the most
// recent run of whatever was selected.
func (mh *MeetingHandler) GetSummaries(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}
	latest := c.QueryParam("latest") == "true"

	var summaries []*entities.Summary
	switch typeTag := c.QueryParam("type"); {
	case typeTag != "":
		if !entities.IsValidMeetingType(typeTag) {
			return HandleError(mh.logger, c, errors.ErrUnknownMeetingType(typeTag))
		}
		summaries, err = mh.summaries.ListByMeetingAndType(meetingID, typeTag)
	case latest:
		var s *entities.Summary
		s, err = mh.summaries.GetLatestByMeeting(meetingID)
		if s != nil {
			summaries = []*entities.Summary{s}
		}
	default:
		summaries, err = mh.summaries.ListByMeeting(meetingID)
	}
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("list summaries", err))
	}
	if latest && len(summaries) > 1 {
		summaries = summaries[:1]
	}

	out := make([]dto.SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		resp := dto.SummaryResponse{
			ID:          s.ID,
			MeetingID:   s.MeetingID,
			MeetingType: s.MeetingType,
			Text:        s.ContentText,
			Truncated:   s.Truncated,
			ModelUsed:   s.ModelUsed,
			CreatedAt:   s.CreatedAt,
		}
		if s.HasStructured() {
			var structured map[string]interface{}
			if err := json.Unmarshal(s.ContentJSON, &structured); err == nil {
				resp.Structured = structured
			}
		}
		out = append(out, resp)
	}
	return HandleSuccess(mh.logger, c, out)
}

// GetDispatches returns the action item dispatch records for a meeting
func (mh *MeetingHandler) GetDispatches(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	records, err := mh.dispatches.ListByMeeting(meetingID)
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("list dispatch records", err))
	}

	out := make([]dto.DispatchRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.DispatchRecordResponse{
			ID:        r.ID,
			ItemText:  r.ItemText,
			TaskRef:   r.TaskRef,
			Error:     r.Error,
			CreatedAt: r.CreatedAt,
		})
	}
	return HandleSuccess(mh.logger, c, out)
}

// Redispatch retries the action items whose tracker task was never created
func (mh *MeetingHandler) Redispatch(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	meeting, err := mh.meetings.GetByID(meetingID)
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrDBQueryFailed("get meeting", err))
	}
	if meeting == nil {
		return HandleError(mh.logger, c, errors.ErrNotFound("meeting"))
	}

	if err := mh.dispatcher.Redispatch(c.Request().Context(), meeting); err != nil {
		return HandleError(mh.logger, c, err)
	}
	return HandleSuccess(mh.logger, c, map[string]string{"status": "redispatched"})
}

// Reindex rebuilds the chunks and vectors for one meeting
func (mh *MeetingHandler) Reindex(c echo.Context) error {
	meetingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidArgument("invalid meeting id"))
	}

	var req dto.ReindexRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(mh.logger, c, errors.ErrInvalidPayload())
	}

	chunks, skipped, err := mh.indexer.IndexMeeting(c.Request().Context(), meetingID, req.Force)
	if err != nil {
		return HandleError(mh.logger, c, err)
	}
	return HandleSuccess(mh.logger, c, dto.IndexMeetingResponse{
		MeetingID: meetingID.String(),
		Chunks:    chunks,
		Skipped:   skipped,
	})
}

// resolveStatus is used by list filters; unknown values fall through to all
func resolveStatus(raw string) *entities.MeetingStatus {
	if raw == "" {
		return nil
	}
	status := entities.MeetingStatus(raw)
	return &status
}

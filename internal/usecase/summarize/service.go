package summarize

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/cache"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/anthropic"
)

// Completer produces a completion for a system and user prompt pair
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, bool, error)
	Model() string
}

// Dispatcher hands a summarized meeting's action items to the task tracker
type Dispatcher interface {
	Dispatch(ctx context.Context, meeting *entities.Meeting, content entities.SummaryContent) error
}

// Notifier pushes pipeline notifications to the team chat
type Notifier interface {
	Enabled() bool
	Send(ctx context.Context, chatID int64, text string) error
}

// Indexer makes a summarized meeting's transcript retrievable
type Indexer interface {
	IndexMeeting(ctx context.Context, meetingID uuid.UUID, force bool) (int, bool, error)
}

// Service runs summarization for a meeting and type selection
type Service interface {
	Summarize(ctx context.Context, meetingID uuid.UUID, typeTag string) error
}

type service struct {
	meetings   repositories.MeetingRepository
	summaries  repositories.SummaryRepository
	clients    repositories.ClientRepository
	llm        Completer
	parser     *Parser
	locker     cache.Store
	dispatcher Dispatcher
	indexer    Indexer
	notifier   Notifier
	lockTTL    time.Duration
	logger     *zap.Logger
}

// NewService creates the summarization service
func NewService(
	meetings repositories.MeetingRepository,
	summaries repositories.SummaryRepository,
	clients repositories.ClientRepository,
	llm Completer,
	locker cache.Store,
	dispatcher Dispatcher,
	indexer Indexer,
	notifier Notifier,
	lockTTL time.Duration,
	logger *zap.Logger,
) Service {
	if lockTTL <= 0 {
		lockTTL = 5 * time.Minute
	}
	return &service{
		meetings:   meetings,
		summaries:  summaries,
		clients:    clients,
		llm:        llm,
		parser:     NewParser(),
		locker:     locker,
		dispatcher: dispatcher,
		indexer:    indexer,
		notifier:   notifier,
		lockTTL:    lockTTL,
		logger:     logger,
	}
}

// Summarize runs the full summarization stage for one meeting and type tag:
// claim, LLM call with retries, persistence, then task dispatch. Concurrent
// calls for the same meeting and type collapse into one run.
func (s *service) Summarize(ctx context.Context, meetingID uuid.UUID, typeTag string) error {
	if !entities.IsValidMeetingType(typeTag) {
		return apperrors.ErrUnknownMeetingType(typeTag)
	}

	meeting, err := s.meetings.GetByID(meetingID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return apperrors.ErrNotFound("meeting")
	}
	if !meeting.HasTranscript() {
		return apperrors.ErrValidation("meeting has no transcript yet")
	}
	if !meeting.CanSelectType() {
		return apperrors.ErrSummarizationInFlight(meetingID.String(), typeTag)
	}

	// One run per (meeting, type) at a time. The DB claim below is the
	// backstop when the lock store is unavailable.
	lockKey := fmt.Sprintf("summarize:%s:%s", meetingID, typeTag)
	acquired, err := s.locker.SetNX(ctx, lockKey, "1", s.lockTTL)
	if err != nil {
		s.logger.Warn("⚠️ lock store unavailable, relying on db claim",
			zap.String("meeting_id", meetingID.String()),
			zap.Error(err))
	} else if !acquired {
		return apperrors.ErrSummarizationInFlight(meetingID.String(), typeTag)
	}
	defer func() {
		if err := s.locker.Delete(context.Background(), lockKey); err != nil {
			s.logger.Warn("⚠️ failed to release summarization lock", zap.Error(err))
		}
	}()

	claimed, err := s.meetings.ClaimForSummarizing(meetingID, meeting.Status, typeTag)
	if err != nil {
		return apperrors.ErrDBQueryFailed("claim meeting", err)
	}
	if !claimed {
		return apperrors.ErrSummarizationInFlight(meetingID.String(), typeTag)
	}
	// The claim updated the row; bring the loaded struct along so later
	// full-row writes keep the selected type.
	meeting.MarkSummarizing(typeTag)

	s.logger.Info("🔄 Summarizing meeting",
		zap.String("meeting_id", meetingID.String()),
		zap.String("meeting_type", typeTag))

	template, _ := TemplateFor(typeTag)
	userPrompt, clipped := template.Render(meeting.Transcript)
	if clipped {
		s.logger.Warn("⚠️ transcript clipped to prompt budget",
			zap.String("meeting_id", meetingID.String()),
			zap.Int("char_limit", template.CharLimit))
	}

	raw, modelTruncated, err := s.complete(ctx, template.System, userPrompt)
	if err != nil {
		errMsg := err.Error()
		meeting.MarkFailed(errMsg)
		if updateErr := s.meetings.Update(meeting); updateErr != nil {
			s.logger.Error("❌ failed to record summarization failure", zap.Error(updateErr))
		}
		s.notifyFailure(meeting, typeTag, errMsg)
		return apperrors.ErrSummarizationFailed(err)
	}

	content := s.parser.Parse(raw, clipped || modelTruncated)
	if content.Kind == entities.SummaryContentTextOnly {
		s.logger.Warn("⚠️ model output was not structured, keeping text summary",
			zap.String("meeting_id", meetingID.String()))
	}

	summary := entities.NewSummary(meetingID, typeTag)
	summary.ContentText = content.Text
	summary.ContentJSON = content.StructuredJSON()
	summary.Truncated = content.Truncated
	summary.ModelUsed = s.llm.Model()
	if err := s.summaries.Save(summary); err != nil {
		meeting.MarkFailed(err.Error())
		if updateErr := s.meetings.Update(meeting); updateErr != nil {
			s.logger.Error("❌ failed to record summarization failure", zap.Error(updateErr))
		}
		return apperrors.ErrDBQueryFailed("save summary", err)
	}

	meeting.MarkSummarized()
	if err := s.meetings.Update(meeting); err != nil {
		return apperrors.ErrDBQueryFailed("update meeting", err)
	}

	s.logger.Info("✅ Summary saved",
		zap.String("meeting_id", meetingID.String()),
		zap.String("summary_id", summary.ID.String()),
		zap.String("kind", string(content.Kind)))

	// Indexing is idempotent and best effort; a failure here never undoes
	// the summary, and /reindex can catch the meeting up later.
	if s.indexer != nil {
		if _, _, err := s.indexer.IndexMeeting(ctx, meetingID, false); err != nil {
			s.logger.Warn("⚠️ failed to index meeting for retrieval",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err))
		}
	}

	// Dispatch is best effort here. A failed dispatch leaves the meeting
	// summarized so it can be re-dispatched without another LLM call.
	if s.dispatcher != nil && len(content.ActionItems()) > 0 {
		if err := s.dispatcher.Dispatch(ctx, meeting, content); err != nil {
			s.logger.Error("❌ task dispatch failed",
				zap.String("meeting_id", meetingID.String()),
				zap.Error(err))
			s.notifyFailure(meeting, typeTag, "task dispatch failed: "+err.Error())
			return nil
		}
		meeting.MarkTasksDispatched()
		if err := s.meetings.Update(meeting); err != nil {
			return apperrors.ErrDBQueryFailed("update meeting", err)
		}
	}

	s.notifySuccess(meeting, typeTag, content)
	return nil
}

// complete calls the model with exponential backoff on transient failures
func (s *service) complete(ctx context.Context, systemPrompt, userPrompt string) (string, bool, error) {
	var (
		raw       string
		truncated bool
	)

	operation := func() error {
		var err error
		raw, truncated, err = s.llm.Complete(ctx, systemPrompt, userPrompt)
		if err != nil {
			if anthropic.IsRetryable(err) {
				s.logger.Warn("🔄 retrying model call", zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 2 * time.Minute

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return "", false, err
	}
	return raw, truncated, nil
}

func (s *service) notifySuccess(meeting *entities.Meeting, typeTag string, content entities.SummaryContent) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	text := fmt.Sprintf("Summary ready: %s (%s)\n\n%s", meeting.Title, typeTag, clip(content.Text, 3000))
	s.notify(meeting, text)
}

func (s *service) notifyFailure(meeting *entities.Meeting, typeTag, errMsg string) {
	if s.notifier == nil || !s.notifier.Enabled() {
		return
	}
	text := fmt.Sprintf("Summarization problem: %s (%s)\n%s", meeting.Title, typeTag, clip(errMsg, 500))
	s.notify(meeting, text)
}

func (s *service) notify(meeting *entities.Meeting, text string) {
	var chatID int64
	if meeting.ClientID != nil {
		client, err := s.clients.GetByID(*meeting.ClientID)
		if err == nil && client != nil && client.TelegramChatID != nil {
			chatID = *client.TelegramChatID
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.notifier.Send(ctx, chatID, text); err != nil {
		s.logger.Warn("⚠️ failed to send notification", zap.Error(err))
	}
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

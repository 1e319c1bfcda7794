package ingest

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
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/fireflies"
)

// EventTranscriptionCompleted is the only webhook event that starts the
// pipeline; other events are acknowledged and dropped
const EventTranscriptionCompleted = "Transcription completed"

// TranscriptProvider fetches transcripts from the meeting recorder
type TranscriptProvider interface {
	GetTranscript(ctx context.Context, transcriptID string) (*fireflies.Transcript, error)
}

// Archiver stores raw payloads and transcripts in object storage
type Archiver interface {
	ArchiveWebhookPayload(ctx context.Context, firefliesID string, payload []byte) error
	ArchiveTranscript(ctx context.Context, firefliesID string, transcript string) error
}

// Service accepts webhook deliveries and drives meetings to the
// type_pending suspension point
type Service interface {
	HandleWebhook(ctx context.Context, firefliesID, eventType string, rawPayload []byte) (*entities.Meeting, bool, error)
	FetchTranscript(ctx context.Context, meetingID uuid.UUID) error
}

type service struct {
	meetings  repositories.MeetingRepository
	provider  TranscriptProvider
	archiver  Archiver
	deduper   cache.Store
	dedupeTTL time.Duration
	logger    *zap.Logger
}

// NewService creates the ingestion service
func NewService(
	meetings repositories.MeetingRepository,
	provider TranscriptProvider,
	archiver Archiver,
	deduper cache.Store,
	dedupeTTL time.Duration,
	logger *zap.Logger,
) Service {
	if dedupeTTL <= 0 {
		dedupeTTL = time.Hour
	}
	return &service{
		meetings:  meetings,
		provider:  provider,
		archiver:  archiver,
		deduper:   deduper,
		dedupeTTL: dedupeTTL,
		logger:    logger,
	}
}

// HandleWebhook records a webhook delivery. Returns the meeting and whether
// the delivery was a duplicate. Events other than transcription completion
// return a nil meeting and are acknowledged upstream.
func (s *service) HandleWebhook(ctx context.Context, firefliesID, eventType string, rawPayload []byte) (*entities.Meeting, bool, error) {
	if firefliesID == "" {
		return nil, false, apperrors.ErrValidation("meeting id is required")
	}
	if eventType != EventTranscriptionCompleted {
		s.logger.Info("📥 ignoring webhook event",
			zap.String("event_type", eventType),
			zap.String("fireflies_id", firefliesID))
		return nil, false, nil
	}

	// Fast dedupe path. The unique constraint on fireflies_id is the
	// backstop when the cache is cold or unavailable.
	dedupeKey := fmt.Sprintf("webhook:%s", firefliesID)
	fresh, err := s.deduper.SetNX(ctx, dedupeKey, "1", s.dedupeTTL)
	if err != nil {
		s.logger.Warn("⚠️ dedupe store unavailable, relying on db constraint", zap.Error(err))
	} else if !fresh {
		existing, err := s.meetings.GetByFirefliesID(firefliesID)
		if err != nil {
			return nil, false, apperrors.ErrDBQueryFailed("get meeting", err)
		}
		if existing != nil {
			return existing, true, nil
		}
	}

	existing, err := s.meetings.GetByFirefliesID(firefliesID)
	if err != nil {
		return nil, false, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if existing != nil {
		s.logger.Info("📋 duplicate webhook delivery",
			zap.String("fireflies_id", firefliesID),
			zap.String("meeting_id", existing.ID.String()))
		return existing, true, nil
	}

	meeting := entities.NewMeeting(firefliesID)
	if err := s.meetings.Save(meeting); err != nil {
		// Lost the race to a concurrent delivery
		if dup, lookupErr := s.meetings.GetByFirefliesID(firefliesID); lookupErr == nil && dup != nil {
			return dup, true, nil
		}
		return nil, false, apperrors.ErrDBQueryFailed("save meeting", err)
	}

	if s.archiver != nil && len(rawPayload) > 0 {
		if err := s.archiver.ArchiveWebhookPayload(ctx, firefliesID, rawPayload); err != nil {
			s.logger.Warn("⚠️ failed to archive webhook payload", zap.Error(err))
		}
	}

	s.logger.Info("📥 Webhook accepted",
		zap.String("fireflies_id", firefliesID),
		zap.String("meeting_id", meeting.ID.String()))
	return meeting, false, nil
}

// FetchTranscript pulls the transcript from the provider and moves the
// meeting to type_pending. Transient provider failures are retried with
// backoff; exhaustion leaves the meeting in received for the recovery
// worker to pick up.
func (s *service) FetchTranscript(ctx context.Context, meetingID uuid.UUID) error {
	meeting, err := s.meetings.GetByID(meetingID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return apperrors.ErrNotFound("meeting")
	}
	if meeting.HasTranscript() {
		return nil
	}

	transcript, err := s.fetch(ctx, meeting.FirefliesID)
	if err != nil {
		meeting.IncrementRetry(err.Error())
		if !meeting.IsRetryable() {
			meeting.MarkFailed(err.Error())
			s.logger.Error("❌ transcript fetch exhausted retries",
				zap.String("meeting_id", meetingID.String()),
				zap.Int("retry_count", meeting.RetryCount))
		}
		if updateErr := s.meetings.Update(meeting); updateErr != nil {
			s.logger.Error("❌ failed to record fetch failure", zap.Error(updateErr))
		}
		return apperrors.ErrTranscriptFetchFailed(meeting.FirefliesID, err)
	}

	if transcript.Text == "" {
		meeting.MarkFailed("provider returned empty transcript")
		if updateErr := s.meetings.Update(meeting); updateErr != nil {
			s.logger.Error("❌ failed to record fetch failure", zap.Error(updateErr))
		}
		return apperrors.ErrValidation("provider returned empty transcript")
	}

	if s.archiver != nil {
		if err := s.archiver.ArchiveTranscript(ctx, meeting.FirefliesID, transcript.Text); err != nil {
			s.logger.Warn("⚠️ failed to archive transcript", zap.Error(err))
		}
	}

	meeting.MarkTranscribed(transcript.Title, transcript.Date, transcript.Text)
	meeting.MarkTypePending()
	if err := s.meetings.Update(meeting); err != nil {
		return apperrors.ErrDBQueryFailed("update meeting", err)
	}

	s.logger.Info("✅ Transcript stored, waiting for type selection",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("transcript_chars", len(transcript.Text)))
	return nil
}

// fetch calls the provider with exponential backoff on transient failures
func (s *service) fetch(ctx context.Context, firefliesID string) (*fireflies.Transcript, error) {
	var transcript *fireflies.Transcript

	operation := func() error {
		var err error
		transcript, err = s.provider.GetTranscript(ctx, firefliesID)
		if err != nil {
			if fireflies.IsRetryable(err) {
				s.logger.Warn("🔄 retrying transcript fetch",
					zap.String("fireflies_id", firefliesID),
					zap.Error(err))
				return err
			}
			return backoff.Permanent(err)
		}
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 2 * time.Second
	bo.MaxElapsedTime = 30 * time.Second

	if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
		return nil, err
	}
	return transcript, nil
}

package dispatch

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	apperrors "github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/todoist"
)

// TaskClient creates tasks and projects in the task tracker
type TaskClient interface {
	CreateTask(ctx context.Context, content, projectID string) (string, error)
	CreateProject(ctx context.Context, name string) (string, error)
}

// Service pushes extracted action items to the task tracker. Every item is
// recorded before the outbound call so retries never create duplicate tasks.
type Service struct {
	dispatches repositories.DispatchRepository
	clients    repositories.ClientRepository
	tasks      TaskClient
	logger     *zap.Logger
}

// NewService creates the dispatch service
func NewService(
	dispatches repositories.DispatchRepository,
	clients repositories.ClientRepository,
	tasks TaskClient,
	logger *zap.Logger,
) *Service {
	return &Service{
		dispatches: dispatches,
		clients:    clients,
		tasks:      tasks,
		logger:     logger,
	}
}

// Dispatch creates one tracker task per action item. Items already dispatched
// for this meeting are skipped; individual failures are recorded and the rest
// of the batch continues.
func (s *Service) Dispatch(ctx context.Context, meeting *entities.Meeting, content entities.SummaryContent) error {
	items := content.ActionItems()
	if len(items) == 0 {
		return nil
	}

	projectID, err := s.resolveProject(ctx, meeting)
	if err != nil {
		return err
	}

	failed := 0
	for _, item := range items {
		record := entities.NewDispatchRecord(meeting.ID, meeting.ClientID, item)

		inserted, err := s.dispatches.SaveNew(record)
		if err != nil {
			s.logger.Error("❌ failed to record dispatch item", zap.Error(err))
			failed++
			continue
		}
		if !inserted {
			// Seen before. A record without a task ref is a prior failure
			// and gets another attempt; a dispatched one is skipped.
			existing, err := s.dispatches.GetByMeetingAndHash(meeting.ID, record.ItemHash)
			if err != nil {
				s.logger.Error("❌ failed to load dispatch record", zap.Error(err))
				failed++
				continue
			}
			if existing == nil || existing.IsDispatched() {
				s.logger.Info("📋 action item already dispatched, skipping",
					zap.String("meeting_id", meeting.ID.String()),
					zap.String("item_hash", record.ItemHash))
				continue
			}
			record = existing
		}

		if err := s.sendAndRecord(ctx, record, projectID); err != nil {
			failed++
		}
	}

	s.logger.Info("✅ Action items dispatched",
		zap.String("meeting_id", meeting.ID.String()),
		zap.Int("total", len(items)),
		zap.Int("failed", failed))

	if failed > 0 {
		return apperrors.ErrPartialFailure("task dispatch", failed, len(items))
	}
	return nil
}

// Redispatch retries every previously failed item for a meeting
func (s *Service) Redispatch(ctx context.Context, meeting *entities.Meeting) error {
	records, err := s.dispatches.ListByMeeting(meeting.ID)
	if err != nil {
		return apperrors.ErrDBQueryFailed("list dispatch records", err)
	}

	projectID, err := s.resolveProject(ctx, meeting)
	if err != nil {
		return err
	}

	failed, retried := 0, 0
	for _, record := range records {
		if record.IsDispatched() {
			continue
		}
		retried++
		if err := s.sendAndRecord(ctx, record, projectID); err != nil {
			failed++
		}
	}

	if failed > 0 {
		return apperrors.ErrPartialFailure("task redispatch", failed, retried)
	}
	return nil
}

// sendAndRecord creates the tracker task for a record and persists the outcome
func (s *Service) sendAndRecord(ctx context.Context, record *entities.DispatchRecord, projectID string) error {
	taskRef, err := s.createTask(ctx, record.ItemText, projectID)
	if err != nil {
		record.MarkFailed(err.Error())
		if updateErr := s.dispatches.Update(record); updateErr != nil {
			s.logger.Error("❌ failed to record dispatch failure", zap.Error(updateErr))
		}
		return err
	}
	record.MarkDispatched(taskRef)
	if err := s.dispatches.Update(record); err != nil {
		s.logger.Error("❌ failed to record dispatched task", zap.Error(err))
	}
	return nil
}

// resolveProject finds the tracker project for the meeting's client,
// creating the project and mapping lazily on first dispatch
func (s *Service) resolveProject(ctx context.Context, meeting *entities.Meeting) (string, error) {
	if meeting.ClientID == nil {
		return "", nil
	}

	mapping, err := s.clients.GetMappingByClient(*meeting.ClientID)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed("get project mapping", err)
	}
	if mapping != nil {
		return mapping.ProjectID, nil
	}

	client, err := s.clients.GetByID(*meeting.ClientID)
	if err != nil {
		return "", apperrors.ErrDBQueryFailed("get client", err)
	}
	if client == nil {
		return "", apperrors.ErrNotFound("client")
	}

	projectID, err := s.tasks.CreateProject(ctx, client.Name)
	if err != nil {
		return "", apperrors.ErrProviderRejected("todoist", err)
	}
	if err := s.clients.SaveMapping(entities.NewProjectMapping(client.ID, projectID)); err != nil {
		return "", apperrors.ErrDBQueryFailed("save project mapping", err)
	}

	s.logger.Info("✅ Created tracker project for client",
		zap.String("client_id", client.ID.String()),
		zap.String("project_id", projectID))
	return projectID, nil
}

// createTask calls the tracker with exponential backoff on transient failures
func (s *Service) createTask(ctx context.Context, content, projectID string) (string, error) {
	var taskRef string

	operation := func() error {
		var err error
		taskRef, err = s.tasks.CreateTask(ctx, content, projectID)
		if err != nil {
			if todoist.IsRetryable(err) {
				s.logger.Warn("🔄 retrying task creation", zap.Error(err))
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
		return "", err
	}
	return taskRef, nil
}

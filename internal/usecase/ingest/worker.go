package ingest

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

// Worker periodically re-drives meetings that stalled mid-pipeline:
// received meetings whose transcript fetch failed transiently, and
// summarizing meetings orphaned by a crashed run.
type Worker struct {
	svc        Service
	meetings   repositories.MeetingRepository
	interval   time.Duration
	staleAfter time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
	logger     *zap.Logger
}

// NewWorker creates the recovery worker
func NewWorker(
	svc Service,
	meetings repositories.MeetingRepository,
	interval time.Duration,
	staleAfter time.Duration,
	logger *zap.Logger,
) *Worker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	if staleAfter <= 0 {
		staleAfter = 10 * time.Minute
	}
	return &Worker{
		svc:        svc,
		meetings:   meetings,
		interval:   interval,
		staleAfter: staleAfter,
		stopChan:   make(chan struct{}),
		logger:     logger,
	}
}

// Start launches the recovery loop
func (w *Worker) Start() {
	w.wg.Add(1)
	go w.run()
	w.logger.Info("🔄 Recovery worker started", zap.Duration("interval", w.interval))
}

// Stop signals the loop to exit and waits for it
func (w *Worker) Stop() {
	close(w.stopChan)
	w.wg.Wait()
	w.logger.Info("✅ Recovery worker stopped")
}

func (w *Worker) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.recoverReceived()
			w.recoverStaleSummarizing()
		}
	}
}

// recoverReceived retries transcript fetches for meetings still waiting on
// their transcript
func (w *Worker) recoverReceived() {
	meetings, err := w.meetings.ListByStatus(entities.MeetingStatusReceived)
	if err != nil {
		w.logger.Error("❌ failed to list received meetings", zap.Error(err))
		return
	}

	for _, meeting := range meetings {
		if !meeting.IsRetryable() {
			continue
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		if err := w.svc.FetchTranscript(ctx, meeting.ID); err != nil {
			w.logger.Warn("⚠️ recovery fetch failed",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err))
		}
		cancel()
	}
}

// recoverStaleSummarizing returns meetings stuck in summarizing to the
// type_pending suspension point so the type can be selected again
func (w *Worker) recoverStaleSummarizing() {
	meetings, err := w.meetings.ListByStatus(entities.MeetingStatusSummarizing)
	if err != nil {
		w.logger.Error("❌ failed to list summarizing meetings", zap.Error(err))
		return
	}

	for _, meeting := range meetings {
		if time.Since(meeting.UpdatedAt) < w.staleAfter {
			continue
		}
		meeting.MarkTypePending()
		if err := w.meetings.Update(meeting); err != nil {
			w.logger.Error("❌ failed to reset stale meeting", zap.Error(err))
			continue
		}
		w.logger.Warn("🔄 reset stale summarization",
			zap.String("meeting_id", meeting.ID.String()))
	}
}

package rag

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/openai"
)

// Embedder turns texts into vectors
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// embedBatchSize caps how many chunks go to the embedding API per call
const embedBatchSize = 100

// Indexer chunks transcripts, embeds them and maintains the vector index
type Indexer struct {
	meetings repositories.MeetingRepository
	rag      repositories.RAGRepository
	embedder Embedder
	index    VectorIndex
	chunker  *Chunker
	logger   *zap.Logger
}

// NewIndexer creates the indexing service
func NewIndexer(
	meetings repositories.MeetingRepository,
	rag repositories.RAGRepository,
	embedder Embedder,
	index VectorIndex,
	chunker *Chunker,
	logger *zap.Logger,
) *Indexer {
	return &Indexer{
		meetings: meetings,
		rag:      rag,
		embedder: embedder,
		index:    index,
		chunker:  chunker,
		logger:   logger,
	}
}

// WarmUp rebuilds the in-memory index from the embedding store. Called once
// at startup before the index serves queries.
func (ix *Indexer) WarmUp() error {
	rows, err := ix.rag.LoadIndexEntries()
	if err != nil {
		return apperrors.ErrDBQueryFailed("load index entries", err)
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ChunkID:          row.ChunkID,
			MeetingID:        row.MeetingID,
			ChunkIndex:       row.ChunkIndex,
			MeetingCreatedAt: row.MeetingCreatedAt,
			Vector:           row.Vector,
		})
	}
	ix.index.Add(entries)
	ix.logger.Info("✅ Vector index warmed up", zap.Int("vectors", ix.index.Size()))
	return nil
}

// IndexMeeting chunks and embeds one meeting's transcript. An already
// indexed meeting is skipped unless force is set, in which case the old
// chunks and vectors are replaced.
func (ix *Indexer) IndexMeeting(ctx context.Context, meetingID uuid.UUID, force bool) (int, bool, error) {
	meeting, err := ix.meetings.GetByID(meetingID)
	if err != nil {
		return 0, false, apperrors.ErrDBQueryFailed("get meeting", err)
	}
	if meeting == nil {
		return 0, false, apperrors.ErrNotFound("meeting")
	}
	if !meeting.HasTranscript() {
		return 0, false, apperrors.ErrValidation("meeting has no transcript yet")
	}

	count, err := ix.rag.CountChunksByMeeting(meetingID)
	if err != nil {
		return 0, false, apperrors.ErrDBQueryFailed("count chunks", err)
	}
	if count > 0 {
		if !force {
			ix.logger.Info("📋 meeting already indexed, skipping",
				zap.String("meeting_id", meetingID.String()))
			return 0, true, nil
		}
		if err := ix.rag.DeleteByMeeting(meetingID); err != nil {
			return 0, false, apperrors.ErrDBQueryFailed("delete chunks", err)
		}
		ix.index.RemoveMeeting(meetingID)
	}

	texts := ix.chunker.Split(meeting.Transcript)
	if len(texts) == 0 {
		return 0, false, apperrors.ErrValidation("transcript produced no chunks")
	}

	vectors, err := ix.embedAll(ctx, texts)
	if err != nil {
		return 0, false, apperrors.ErrIndexingFailed(err)
	}

	chunks := make([]*entities.Chunk, len(texts))
	embeddings := make([]*entities.Embedding, len(texts))
	entries := make([]Entry, len(texts))
	for i, text := range texts {
		if len(vectors[i]) != entities.EmbeddingDimension {
			return 0, false, apperrors.ErrDimensionMismatch(entities.EmbeddingDimension, len(vectors[i]))
		}
		chunk := entities.NewChunk(meetingID, i, text)
		chunks[i] = chunk
		embeddings[i] = entities.NewEmbedding(chunk.ID, meetingID, vectors[i])
		entries[i] = Entry{
			ChunkID:          chunk.ID,
			MeetingID:        meetingID,
			ChunkIndex:       i,
			MeetingCreatedAt: meeting.CreatedAt,
			Vector:           vectors[i],
		}
	}

	if err := ix.rag.SaveChunksWithEmbeddings(chunks, embeddings); err != nil {
		return 0, false, apperrors.ErrDBQueryFailed("save chunks", err)
	}
	ix.index.Add(entries)

	ix.logger.Info("✅ Meeting indexed",
		zap.String("meeting_id", meetingID.String()),
		zap.Int("chunks", len(chunks)))
	return len(chunks), false, nil
}

// IndexAllResult reports the outcome of a bulk indexing pass
type IndexAllResult struct {
	Indexed int `json:"indexed"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Chunks  int `json:"chunks"`
}

// IndexAll indexes every meeting that has a transcript, skipping meetings
// already in the store. Failures on individual meetings do not stop the pass.
func (ix *Indexer) IndexAll(ctx context.Context) (*IndexAllResult, error) {
	meetings, err := ix.meetings.List(10000, 0)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list meetings", err)
	}

	result := &IndexAllResult{}
	for _, meeting := range meetings {
		if !meeting.HasTranscript() {
			continue
		}
		chunks, skipped, err := ix.IndexMeeting(ctx, meeting.ID, false)
		if err != nil {
			ix.logger.Error("❌ failed to index meeting",
				zap.String("meeting_id", meeting.ID.String()),
				zap.Error(err))
			result.Failed++
			continue
		}
		if skipped {
			result.Skipped++
			continue
		}
		result.Indexed++
		result.Chunks += chunks
	}

	if result.Failed > 0 {
		return result, apperrors.ErrPartialFailure("bulk indexing", result.Failed,
			result.Indexed+result.Skipped+result.Failed)
	}
	return result, nil
}

// RemoveMeeting drops a meeting from the store and the live index
func (ix *Indexer) RemoveMeeting(meetingID uuid.UUID) error {
	if err := ix.rag.DeleteByMeeting(meetingID); err != nil {
		return apperrors.ErrDBQueryFailed("delete chunks", err)
	}
	ix.index.RemoveMeeting(meetingID)
	return nil
}

// embedAll embeds chunk texts in batches with backoff on transient failures
func (ix *Indexer) embedAll(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		var batchVectors [][]float32
		operation := func() error {
			var err error
			batchVectors, err = ix.embedder.EmbedBatch(ctx, batch)
			if err != nil {
				if openai.IsRetryable(err) {
					ix.logger.Warn("🔄 retrying embedding batch", zap.Error(err))
					return err
				}
				return backoff.Permanent(err)
			}
			return nil
		}

		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = 2 * time.Second
		bo.MaxElapsedTime = 60 * time.Second

		if err := backoff.Retry(operation, backoff.WithContext(bo, ctx)); err != nil {
			return nil, err
		}
		vectors = append(vectors, batchVectors...)
	}
	return vectors, nil
}

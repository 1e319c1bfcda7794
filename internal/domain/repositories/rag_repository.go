package repositories

import (
	"time"

	"github.com/google/uuid"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// IndexEntryRow is a denormalized embedding row used to warm the vector
// index at startup
type IndexEntryRow struct {
	ChunkID          uuid.UUID
	MeetingID        uuid.UUID
	ChunkIndex       int
	MeetingCreatedAt time.Time
	Vector           []float32
}

// RAGRepository defines persistence operations for chunks and embeddings.
// Chunks and their embeddings for one meeting are written and removed
// together so the store never holds a chunk without its vector.
type RAGRepository interface {
	SaveChunksWithEmbeddings(chunks []*entities.Chunk, embeddings []*entities.Embedding) error
	GetChunkByID(id uuid.UUID) (*entities.Chunk, error)
	ListChunksByMeeting(meetingID uuid.UUID) ([]*entities.Chunk, error)
	ListAllEmbeddings() ([]*entities.Embedding, error)
	LoadIndexEntries() ([]*IndexEntryRow, error)
	CountChunksByMeeting(meetingID uuid.UUID) (int64, error)
	DeleteByMeeting(meetingID uuid.UUID) error
}

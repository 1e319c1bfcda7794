package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

// RAGRepository implements chunk and embedding persistence with GORM
type RAGRepository struct {
	db *gorm.DB
}

// NewRAGRepository creates a new RAG repository
func NewRAGRepository(db *gorm.DB) *RAGRepository {
	return &RAGRepository{db: db}
}

// SaveChunksWithEmbeddings writes a meeting's chunks and vectors in one
// transaction so a crash never leaves chunks without embeddings
func (r *RAGRepository) SaveChunksWithEmbeddings(chunks []*entities.Chunk, embeddings []*entities.Embedding) error {
	if len(chunks) == 0 {
		return errors.New("no chunks to save")
	}
	if len(chunks) != len(embeddings) {
		return errors.New("chunk and embedding counts differ")
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chunks).Error; err != nil {
			return err
		}
		return tx.Create(embeddings).Error
	})
}

// GetChunkByID retrieves a chunk by ID
func (r *RAGRepository) GetChunkByID(id uuid.UUID) (*entities.Chunk, error) {
	var c entities.Chunk
	if err := r.db.Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListChunksByMeeting retrieves a meeting's chunks in transcript order
func (r *RAGRepository) ListChunksByMeeting(meetingID uuid.UUID) ([]*entities.Chunk, error) {
	var chunks []*entities.Chunk
	if err := r.db.
		Where("meeting_id = ?", meetingID).
		Order("chunk_index ASC").
		Find(&chunks).Error; err != nil {
		return nil, err
	}
	return chunks, nil
}

// ListAllEmbeddings retrieves every stored embedding for index warm-up
func (r *RAGRepository) ListAllEmbeddings() ([]*entities.Embedding, error) {
	var embeddings []*entities.Embedding
	if err := r.db.Order("created_at ASC").Find(&embeddings).Error; err != nil {
		return nil, err
	}
	return embeddings, nil
}

// LoadIndexEntries assembles the denormalized rows needed to rebuild the
// vector index at startup
func (r *RAGRepository) LoadIndexEntries() ([]*repositories.IndexEntryRow, error) {
	embeddings, err := r.ListAllEmbeddings()
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, nil
	}

	var chunks []*entities.Chunk
	if err := r.db.Select("id", "meeting_id", "chunk_index").Find(&chunks).Error; err != nil {
		return nil, err
	}
	chunkIndex := make(map[uuid.UUID]int, len(chunks))
	for _, c := range chunks {
		chunkIndex[c.ID] = c.ChunkIndex
	}

	var meetings []*entities.Meeting
	if err := r.db.Select("id", "created_at").Find(&meetings).Error; err != nil {
		return nil, err
	}
	meetingCreated := make(map[uuid.UUID]time.Time, len(meetings))
	for _, m := range meetings {
		meetingCreated[m.ID] = m.CreatedAt
	}

	rows := make([]*repositories.IndexEntryRow, 0, len(embeddings))
	for _, e := range embeddings {
		rows = append(rows, &repositories.IndexEntryRow{
			ChunkID:          e.ChunkID,
			MeetingID:        e.MeetingID,
			ChunkIndex:       chunkIndex[e.ChunkID],
			MeetingCreatedAt: meetingCreated[e.MeetingID],
			Vector:           e.Vector,
		})
	}
	return rows, nil
}

// CountChunksByMeeting reports how many chunks a meeting has in the store
func (r *RAGRepository) CountChunksByMeeting(meetingID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&entities.Chunk{}).
		Where("meeting_id = ?", meetingID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteByMeeting removes a meeting's chunks and embeddings together
func (r *RAGRepository) DeleteByMeeting(meetingID uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entities.Embedding{}, "meeting_id = ?", meetingID).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Chunk{}, "meeting_id = ?", meetingID).Error
	})
}

package entities

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingDimension is the vector size produced by the embedding provider
const EmbeddingDimension = 1536

// Embedding is the vector representation of one chunk. Exactly one embedding
// exists per chunk; all vectors in the store share the same dimension.
type Embedding struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ChunkID   uuid.UUID `json:"chunk_id" gorm:"type:uuid;uniqueIndex;not null"`
	MeetingID uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index"`
	Vector    []float32 `json:"vector" gorm:"type:jsonb;serializer:json;not null"`
	Dimension int       `json:"dimension" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewEmbedding creates an embedding record for a chunk
func NewEmbedding(chunkID, meetingID uuid.UUID, vector []float32) *Embedding {
	return &Embedding{
		ID:        uuid.New(),
		ChunkID:   chunkID,
		MeetingID: meetingID,
		Vector:    vector,
		Dimension: len(vector),
		CreatedAt: time.Now(),
	}
}

// TableName specifies the table name for GORM
func (Embedding) TableName() string {
	return "embeddings"
}

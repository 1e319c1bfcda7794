package entities

import (
	"time"

	"github.com/google/uuid"
)

// Chunk is a contiguous slice of a meeting transcript produced by the
// splitter. ChunkIndex preserves transcript order within a meeting.
type Chunk struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	MeetingID  uuid.UUID `json:"meeting_id" gorm:"type:uuid;not null;index;uniqueIndex:idx_chunks_meeting_index"`
	ChunkIndex int       `json:"chunk_index" gorm:"not null;uniqueIndex:idx_chunks_meeting_index"`
	ChunkText  string    `json:"chunk_text" gorm:"type:text;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// NewChunk creates a chunk for a meeting at the given position
func NewChunk(meetingID uuid.UUID, index int, text string) *Chunk {
	return &Chunk{
		ID:         uuid.New(),
		MeetingID:  meetingID,
		ChunkIndex: index,
		ChunkText:  text,
		CreatedAt:  time.Now(),
	}
}

// TableName specifies the table name for GORM
func (Chunk) TableName() string {
	return "chunks"
}

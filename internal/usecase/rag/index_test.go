package rag

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(meetingID uuid.UUID, chunkIndex int, createdAt time.Time, vector []float32) Entry {
	return Entry{
		ChunkID:          uuid.New(),
		MeetingID:        meetingID,
		ChunkIndex:       chunkIndex,
		MeetingCreatedAt: createdAt,
		Vector:           vector,
	}
}

func TestMemoryIndex_SearchOrdersByScore(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()
	meetingID := uuid.New()

	close := entry(meetingID, 0, now, []float32{1, 0, 0})
	far := entry(meetingID, 1, now, []float32{0, 1, 0})
	middle := entry(meetingID, 2, now, []float32{1, 1, 0})
	idx.Add([]Entry{far, middle, close})

	hits := idx.Search([]float32{1, 0, 0}, 3, nil)

	require.Len(t, hits, 3)
	assert.Equal(t, close.ChunkID, hits[0].ChunkID)
	assert.Equal(t, middle.ChunkID, hits[1].ChunkID)
	assert.Equal(t, far.ChunkID, hits[2].ChunkID)
	assert.InDelta(t, 1.0, hits[0].Score, 1e-6)
}

func TestMemoryIndex_TieBreaksEarlierChunkThenOlderMeeting(t *testing.T) {
	idx := NewMemoryIndex()
	older := time.Now().Add(-time.Hour)
	newer := time.Now()
	oldMeeting := uuid.New()
	newMeeting := uuid.New()

	// Identical vectors so every score ties
	v := []float32{1, 1, 1}
	newFirst := entry(newMeeting, 0, newer, v)
	oldSecond := entry(oldMeeting, 1, older, v)
	oldFirst := entry(oldMeeting, 0, older, v)
	idx.Add([]Entry{newFirst, oldSecond, oldFirst})

	hits := idx.Search(v, 3, nil)

	require.Len(t, hits, 3)
	assert.Equal(t, oldFirst.ChunkID, hits[0].ChunkID)
	assert.Equal(t, newFirst.ChunkID, hits[1].ChunkID)
	assert.Equal(t, oldSecond.ChunkID, hits[2].ChunkID)
}

func TestMemoryIndex_TopKBounds(t *testing.T) {
	idx := NewMemoryIndex()
	meetingID := uuid.New()
	idx.Add([]Entry{
		entry(meetingID, 0, time.Now(), []float32{1, 0}),
		entry(meetingID, 1, time.Now(), []float32{0, 1}),
	})

	assert.Len(t, idx.Search([]float32{1, 0}, 1, nil), 1)
	assert.Len(t, idx.Search([]float32{1, 0}, 10, nil), 2)
	assert.Nil(t, idx.Search([]float32{1, 0}, 0, nil))
}

func TestMemoryIndex_SkipsMismatchedAndZeroVectors(t *testing.T) {
	idx := NewMemoryIndex()
	meetingID := uuid.New()
	idx.Add([]Entry{
		entry(meetingID, 0, time.Now(), []float32{1, 0, 0}),
		entry(meetingID, 1, time.Now(), []float32{1, 0}),   // wrong dimension
		entry(meetingID, 2, time.Now(), []float32{0, 0, 0}), // zero norm, dropped on insert
	})

	assert.Equal(t, 2, idx.Size())
	hits := idx.Search([]float32{1, 0, 0}, 10, nil)
	assert.Len(t, hits, 1)

	// Zero query matches nothing
	assert.Nil(t, idx.Search([]float32{0, 0, 0}, 10, nil))
}

func TestMemoryIndex_ScopedSearch(t *testing.T) {
	idx := NewMemoryIndex()
	a := uuid.New()
	b := uuid.New()
	idx.Add([]Entry{
		entry(a, 0, time.Now(), []float32{1, 0}),
		entry(b, 0, time.Now(), []float32{1, 0}),
	})

	hits := idx.Search([]float32{1, 0}, 10, Scope{a: {}})

	require.Len(t, hits, 1)
	assert.Equal(t, a, hits[0].MeetingID)

	// Empty scope matches nothing
	assert.Empty(t, idx.Search([]float32{1, 0}, 10, Scope{}))
}

func TestMemoryIndex_RemoveMeeting(t *testing.T) {
	idx := NewMemoryIndex()
	keep := uuid.New()
	drop := uuid.New()
	idx.Add([]Entry{
		entry(keep, 0, time.Now(), []float32{1, 0}),
		entry(drop, 0, time.Now(), []float32{0, 1}),
		entry(drop, 1, time.Now(), []float32{1, 1}),
	})
	require.Equal(t, 3, idx.Size())

	idx.RemoveMeeting(drop)

	assert.Equal(t, 1, idx.Size())
	hits := idx.Search([]float32{1, 0}, 10, nil)
	require.Len(t, hits, 1)
	assert.Equal(t, keep, hits[0].MeetingID)
}

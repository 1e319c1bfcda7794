package rag

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is one vector in the index with the metadata needed for ordering
type Entry struct {
	ChunkID          uuid.UUID
	MeetingID        uuid.UUID
	ChunkIndex       int
	MeetingCreatedAt time.Time
	Vector           []float32
}

// Hit is one search result
type Hit struct {
	ChunkID   uuid.UUID
	MeetingID uuid.UUID
	Score     float64
}

// Scope restricts a search to a set of meetings. A nil scope searches the
// whole corpus.
type Scope map[uuid.UUID]struct{}

// VectorIndex answers nearest neighbor queries over chunk embeddings
type VectorIndex interface {
	Add(entries []Entry)
	RemoveMeeting(meetingID uuid.UUID)
	Search(query []float32, topK int, scope Scope) []Hit
	Size() int
}

// memoryIndex is a brute force cosine similarity index held in memory.
// Vector norms are precomputed on insert so each search is one pass of
// dot products.
type memoryIndex struct {
	mu      sync.RWMutex
	entries []indexedEntry
}

type indexedEntry struct {
	Entry
	norm float64
}

// NewMemoryIndex creates an empty in-memory vector index
func NewMemoryIndex() VectorIndex {
	return &memoryIndex{}
}

// Add inserts entries. Zero-length vectors are ignored.
func (idx *memoryIndex) Add(entries []Entry) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, e := range entries {
		n := norm(e.Vector)
		if n == 0 {
			continue
		}
		idx.entries = append(idx.entries, indexedEntry{Entry: e, norm: n})
	}
}

// RemoveMeeting drops every vector belonging to a meeting
func (idx *memoryIndex) RemoveMeeting(meetingID uuid.UUID) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	kept := idx.entries[:0]
	for _, e := range idx.entries {
		if e.MeetingID != meetingID {
			kept = append(kept, e)
		}
	}
	idx.entries = kept
}

// Search returns the topK most similar entries by cosine similarity,
// optionally restricted to a meeting scope. Ties break toward earlier
// chunks, then older meetings, so results are deterministic for identical
// scores.
func (idx *memoryIndex) Search(query []float32, topK int, scope Scope) []Hit {
	if topK <= 0 {
		return nil
	}
	qn := norm(query)
	if qn == 0 {
		return nil
	}

	idx.mu.RLock()
	scored := make([]struct {
		hit  Hit
		e    indexedEntry
	}, 0, len(idx.entries))
	for _, e := range idx.entries {
		if len(e.Vector) != len(query) {
			continue
		}
		if scope != nil {
			if _, ok := scope[e.MeetingID]; !ok {
				continue
			}
		}
		score := dot(query, e.Vector) / (qn * e.norm)
		scored = append(scored, struct {
			hit  Hit
			e    indexedEntry
		}{
			hit: Hit{ChunkID: e.ChunkID, MeetingID: e.MeetingID, Score: score},
			e:   e,
		})
	}
	idx.mu.RUnlock()

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].hit.Score != scored[j].hit.Score {
			return scored[i].hit.Score > scored[j].hit.Score
		}
		if scored[i].e.ChunkIndex != scored[j].e.ChunkIndex {
			return scored[i].e.ChunkIndex < scored[j].e.ChunkIndex
		}
		return scored[i].e.MeetingCreatedAt.Before(scored[j].e.MeetingCreatedAt)
	})

	if topK > len(scored) {
		topK = len(scored)
	}
	hits := make([]Hit, topK)
	for i := 0; i < topK; i++ {
		hits[i] = scored[i].hit
	}
	return hits
}

// Size reports how many vectors the index holds
func (idx *memoryIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.entries)
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

func norm(v []float32) float64 {
	return math.Sqrt(dot(v, v))
}

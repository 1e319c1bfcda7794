package rag

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
)

type fakeMeetingRepo struct {
	meetings map[uuid.UUID]*entities.Meeting
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	f := &fakeMeetingRepo{meetings: make(map[uuid.UUID]*entities.Meeting)}
	for _, m := range meetings {
		f.meetings[m.ID] = m
	}
	return f
}

func (f *fakeMeetingRepo) Save(m *entities.Meeting) error   { f.meetings[m.ID] = m; return nil }
func (f *fakeMeetingRepo) Update(m *entities.Meeting) error { f.meetings[m.ID] = m; return nil }
func (f *fakeMeetingRepo) GetByID(id uuid.UUID) (*entities.Meeting, error) {
	return f.meetings[id], nil
}
func (f *fakeMeetingRepo) GetByFirefliesID(firefliesID string) (*entities.Meeting, error) {
	for _, m := range f.meetings {
		if m.FirefliesID == firefliesID {
			return m, nil
		}
	}
	return nil, nil
}
func (f *fakeMeetingRepo) List(limit, offset int) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0, len(f.meetings))
	for _, m := range f.meetings {
		out = append(out, m)
	}
	return out, nil
}
func (f *fakeMeetingRepo) ListByStatus(status entities.MeetingStatus) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if m.Status == status {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeMeetingRepo) ListByClient(clientID uuid.UUID) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range f.meetings {
		if m.ClientID != nil && *m.ClientID == clientID {
			out = append(out, m)
		}
	}
	return out, nil
}
func (f *fakeMeetingRepo) Delete(id uuid.UUID) error { delete(f.meetings, id); return nil }
func (f *fakeMeetingRepo) ClaimForSummarizing(id uuid.UUID, fromStatus entities.MeetingStatus, typeTag string) (bool, error) {
	return true, nil
}

type fakeRAGRepo struct {
	chunks     map[uuid.UUID]*entities.Chunk
	embeddings map[uuid.UUID]*entities.Embedding
	rows       []*repositories.IndexEntryRow
}

func newFakeRAGRepo() *fakeRAGRepo {
	return &fakeRAGRepo{
		chunks:     make(map[uuid.UUID]*entities.Chunk),
		embeddings: make(map[uuid.UUID]*entities.Embedding),
	}
}

func (f *fakeRAGRepo) SaveChunksWithEmbeddings(chunks []*entities.Chunk, embeddings []*entities.Embedding) error {
	for _, c := range chunks {
		f.chunks[c.ID] = c
	}
	for _, e := range embeddings {
		f.embeddings[e.ChunkID] = e
	}
	return nil
}
func (f *fakeRAGRepo) GetChunkByID(id uuid.UUID) (*entities.Chunk, error) {
	return f.chunks[id], nil
}
func (f *fakeRAGRepo) ListChunksByMeeting(meetingID uuid.UUID) ([]*entities.Chunk, error) {
	var out []*entities.Chunk
	for _, c := range f.chunks {
		if c.MeetingID == meetingID {
			out = append(out, c)
		}
	}
	return out, nil
}
func (f *fakeRAGRepo) ListAllEmbeddings() ([]*entities.Embedding, error) {
	var out []*entities.Embedding
	for _, e := range f.embeddings {
		out = append(out, e)
	}
	return out, nil
}
func (f *fakeRAGRepo) LoadIndexEntries() ([]*repositories.IndexEntryRow, error) {
	return f.rows, nil
}
func (f *fakeRAGRepo) CountChunksByMeeting(meetingID uuid.UUID) (int64, error) {
	var n int64
	for _, c := range f.chunks {
		if c.MeetingID == meetingID {
			n++
		}
	}
	return n, nil
}
func (f *fakeRAGRepo) DeleteByMeeting(meetingID uuid.UUID) error {
	for id, c := range f.chunks {
		if c.MeetingID == meetingID {
			delete(f.chunks, id)
			delete(f.embeddings, id)
		}
	}
	return nil
}

type fakeEmbedder struct {
	dimension  int
	batchCalls int
	err        error
}

func (f *fakeEmbedder) vector(seed int) []float32 {
	dim := f.dimension
	if dim == 0 {
		dim = entities.EmbeddingDimension
	}
	v := make([]float32, dim)
	v[0] = float32(seed + 1)
	v[dim-1] = 1
	return v
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vector(len(text)), nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	f.batchCalls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vector(i)
	}
	return out, nil
}

func indexedMeeting(transcript string) *entities.Meeting {
	m := entities.NewMeeting("ff-" + uuid.NewString())
	date := time.Now()
	m.MarkTranscribed("Planning", &date, transcript)
	m.MarkTypePending()
	return m
}

func newTestIndexer(meetings *fakeMeetingRepo, ragRepo *fakeRAGRepo, embedder *fakeEmbedder) (*Indexer, VectorIndex) {
	index := NewMemoryIndex()
	indexer := NewIndexer(meetings, ragRepo, embedder, index, NewChunker(1000, 200), zap.NewNop())
	return indexer, index
}

func TestIndexMeeting_ChunksAndStores(t *testing.T) {
	meeting := indexedMeeting("Alice: we agreed to ship on Friday. Bob: I will prepare the release notes.")
	meetings := newFakeMeetingRepo(meeting)
	ragRepo := newFakeRAGRepo()
	indexer, index := newTestIndexer(meetings, ragRepo, &fakeEmbedder{})

	chunks, skipped, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)

	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, 1, chunks)
	assert.Len(t, ragRepo.chunks, 1)
	assert.Len(t, ragRepo.embeddings, 1)
	assert.Equal(t, 1, index.Size())
}

func TestIndexMeeting_SkipsAlreadyIndexed(t *testing.T) {
	meeting := indexedMeeting("Alice: short transcript.")
	meetings := newFakeMeetingRepo(meeting)
	ragRepo := newFakeRAGRepo()
	embedder := &fakeEmbedder{}
	indexer, _ := newTestIndexer(meetings, ragRepo, embedder)

	_, _, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)
	require.NoError(t, err)
	firstCalls := embedder.batchCalls

	_, skipped, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)

	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, firstCalls, embedder.batchCalls)
}

func TestIndexMeeting_ForceReplacesChunks(t *testing.T) {
	meeting := indexedMeeting("Alice: short transcript.")
	meetings := newFakeMeetingRepo(meeting)
	ragRepo := newFakeRAGRepo()
	indexer, index := newTestIndexer(meetings, ragRepo, &fakeEmbedder{})

	_, _, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)
	require.NoError(t, err)

	_, skipped, err := indexer.IndexMeeting(context.Background(), meeting.ID, true)

	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Len(t, ragRepo.chunks, 1)
	assert.Equal(t, 1, index.Size())
}

func TestIndexMeeting_RejectsWrongDimension(t *testing.T) {
	meeting := indexedMeeting("Alice: short transcript.")
	meetings := newFakeMeetingRepo(meeting)
	ragRepo := newFakeRAGRepo()
	indexer, index := newTestIndexer(meetings, ragRepo, &fakeEmbedder{dimension: 8})

	_, _, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)

	assert.Error(t, err)
	assert.Empty(t, ragRepo.chunks)
	assert.Equal(t, 0, index.Size())
}

func TestIndexMeeting_NoTranscript(t *testing.T) {
	meeting := entities.NewMeeting("ff-empty")
	meetings := newFakeMeetingRepo(meeting)
	indexer, _ := newTestIndexer(meetings, newFakeRAGRepo(), &fakeEmbedder{})

	_, _, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)

	assert.Error(t, err)
}

func TestIndexAll_SkipsAndCounts(t *testing.T) {
	withTranscript := indexedMeeting("Alice: full transcript here.")
	withoutTranscript := entities.NewMeeting("ff-no-transcript")
	meetings := newFakeMeetingRepo(withTranscript, withoutTranscript)
	ragRepo := newFakeRAGRepo()
	indexer, _ := newTestIndexer(meetings, ragRepo, &fakeEmbedder{})

	result, err := indexer.IndexAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Indexed)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	// Second pass skips everything already stored
	result, err = indexer.IndexAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Indexed)
	assert.Equal(t, 1, result.Skipped)
}

func TestWarmUp_RebuildsIndex(t *testing.T) {
	ragRepo := newFakeRAGRepo()
	embedder := &fakeEmbedder{}
	ragRepo.rows = []*repositories.IndexEntryRow{
		{ChunkID: uuid.New(), MeetingID: uuid.New(), ChunkIndex: 0, MeetingCreatedAt: time.Now(), Vector: embedder.vector(0)},
		{ChunkID: uuid.New(), MeetingID: uuid.New(), ChunkIndex: 0, MeetingCreatedAt: time.Now(), Vector: embedder.vector(1)},
	}
	indexer, index := newTestIndexer(newFakeMeetingRepo(), ragRepo, embedder)

	require.NoError(t, indexer.WarmUp())

	assert.Equal(t, 2, index.Size())
}

func TestRemoveMeeting_DropsStoreAndIndex(t *testing.T) {
	meeting := indexedMeeting("Alice: short transcript.")
	meetings := newFakeMeetingRepo(meeting)
	ragRepo := newFakeRAGRepo()
	indexer, index := newTestIndexer(meetings, ragRepo, &fakeEmbedder{})

	_, _, err := indexer.IndexMeeting(context.Background(), meeting.ID, false)
	require.NoError(t, err)

	require.NoError(t, indexer.RemoveMeeting(meeting.ID))

	assert.Empty(t, ragRepo.chunks)
	assert.Equal(t, 0, index.Size())
}

package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/meetingintel-team/meeting-intel/errors"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/domain/repositories"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/anthropic"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/openai"
)

// Completer produces a completion for a system and user prompt pair
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, bool, error)
	Model() string
}

const answerSystemPrompt = `You answer questions about past meetings using only the transcript excerpts provided.
Quote owners and commitments precisely. If the excerpts do not contain the answer, say so plainly.
Reference excerpts by their bracketed number, e.g. [2].`

// Citation points an answer back to the chunk that supports it
type Citation struct {
	ChunkID      uuid.UUID `json:"chunk_id"`
	MeetingID    uuid.UUID `json:"meeting_id"`
	MeetingTitle string    `json:"meeting_title"`
	ChunkIndex   int       `json:"chunk_index"`
	Score        float64   `json:"score"`
	Excerpt      string    `json:"excerpt"`
}

// Answer is the result of a retrieval question
type Answer struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations"`
}

// Retriever answers questions over the indexed transcript corpus
type Retriever struct {
	meetings    repositories.MeetingRepository
	rag         repositories.RAGRepository
	embedder    Embedder
	index       VectorIndex
	llm         Completer
	defaultTopK int
	logger      *zap.Logger
}

// NewRetriever creates the retrieval service
func NewRetriever(
	meetings repositories.MeetingRepository,
	rag repositories.RAGRepository,
	embedder Embedder,
	index VectorIndex,
	llm Completer,
	defaultTopK int,
	logger *zap.Logger,
) *Retriever {
	if defaultTopK <= 0 {
		defaultTopK = 5
	}
	return &Retriever{
		meetings:    meetings,
		rag:         rag,
		embedder:    embedder,
		index:       index,
		llm:         llm,
		defaultTopK: defaultTopK,
		logger:      logger,
	}
}

// AskScope optionally narrows a question to one client's meetings or a
// single meeting
type AskScope struct {
	ClientID  *uuid.UUID
	MeetingID *uuid.UUID
}

// Ask embeds the question, retrieves the closest chunks and asks the model
// to answer from them. Returns the answer with per-chunk citations.
func (r *Retriever) Ask(ctx context.Context, question string, topK int, scope AskScope) (*Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, apperrors.ErrValidation("question is required")
	}
	if topK <= 0 {
		topK = r.defaultTopK
	}

	meetingScope, err := r.resolveScope(scope)
	if err != nil {
		return nil, err
	}

	query, err := r.embedQuestion(ctx, question)
	if err != nil {
		return nil, apperrors.ErrTransient("embed question", err)
	}
	// A wrong-size query would silently match nothing; that is a
	// configuration fault, not an empty corpus.
	if len(query) != entities.EmbeddingDimension {
		return nil, apperrors.ErrDimensionMismatch(entities.EmbeddingDimension, len(query))
	}

	hits := r.index.Search(query, topK, meetingScope)
	if len(hits) == 0 {
		return &Answer{Text: "No indexed meetings match this question yet."}, nil
	}

	citations, contextBlock, err := r.buildContext(hits)
	if err != nil {
		return nil, err
	}

	userPrompt := fmt.Sprintf("Excerpts:\n%s\nQuestion: %s", contextBlock, question)
	text, _, err := r.complete(ctx, userPrompt)
	if err != nil {
		return nil, apperrors.ErrSummarizationFailed(err)
	}

	r.logger.Info("✅ Question answered",
		zap.Int("top_k", topK),
		zap.Int("citations", len(citations)))

	return &Answer{Text: strings.TrimSpace(text), Citations: citations}, nil
}

// resolveScope maps an ask scope onto the set of meeting ids to search.
// A nil return searches the whole corpus.
func (r *Retriever) resolveScope(scope AskScope) (Scope, error) {
	if scope.MeetingID != nil {
		return Scope{*scope.MeetingID: {}}, nil
	}
	if scope.ClientID == nil {
		return nil, nil
	}
	meetings, err := r.meetings.ListByClient(*scope.ClientID)
	if err != nil {
		return nil, apperrors.ErrDBQueryFailed("list client meetings", err)
	}
	out := make(Scope, len(meetings))
	for _, m := range meetings {
		out[m.ID] = struct{}{}
	}
	return out, nil
}

// buildContext loads the hit chunks and renders the numbered excerpt block
func (r *Retriever) buildContext(hits []Hit) ([]Citation, string, error) {
	var sb strings.Builder
	citations := make([]Citation, 0, len(hits))

	titles := make(map[uuid.UUID]string)
	for i, hit := range hits {
		chunk, err := r.rag.GetChunkByID(hit.ChunkID)
		if err != nil {
			return nil, "", apperrors.ErrDBQueryFailed("get chunk", err)
		}
		if chunk == nil {
			// index can briefly lead the store after a delete
			continue
		}

		title, ok := titles[hit.MeetingID]
		if !ok {
			meeting, err := r.meetings.GetByID(hit.MeetingID)
			if err == nil && meeting != nil {
				title = meeting.Title
			}
			titles[hit.MeetingID] = title
		}

		fmt.Fprintf(&sb, "[%d] %s\n%s\n\n", i+1, title, chunk.ChunkText)
		citations = append(citations, Citation{
			ChunkID:      chunk.ID,
			MeetingID:    hit.MeetingID,
			MeetingTitle: title,
			ChunkIndex:   chunk.ChunkIndex,
			Score:        hit.Score,
			Excerpt:      excerpt(chunk.ChunkText, 200),
		})
	}
	return citations, sb.String(), nil
}

// embedQuestion embeds the question with backoff on transient failures
func (r *Retriever) embedQuestion(ctx context.Context, question string) ([]float32, error) {
	var vector []float32

	operation := func() error {
		var err error
		vector, err = r.embedder.Embed(ctx, question)
		if err != nil {
			if openai.IsRetryable(err) {
				r.logger.Warn("🔄 retrying question embedding", zap.Error(err))
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
		return nil, err
	}
	return vector, nil
}

// complete calls the model with backoff on transient failures
func (r *Retriever) complete(ctx context.Context, userPrompt string) (string, bool, error) {
	var (
		text      string
		truncated bool
	)

	operation := func() error {
		var err error
		text, truncated, err = r.llm.Complete(ctx, answerSystemPrompt, userPrompt)
		if err != nil {
			if anthropic.IsRetryable(err) {
				r.logger.Warn("🔄 retrying answer generation", zap.Error(err))
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
		return "", false, err
	}
	return text, truncated, nil
}

func excerpt(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

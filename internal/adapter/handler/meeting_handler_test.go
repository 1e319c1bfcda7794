package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/internal/adapter/dto"
	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

type fakeSummaryRepo struct {
	summaries []*entities.Summary
}

func (f *fakeSummaryRepo) Save(s *entities.Summary) error                   { return nil }
func (f *fakeSummaryRepo) GetByID(id uuid.UUID) (*entities.Summary, error)  { return nil, nil }
func (f *fakeSummaryRepo) DeleteByMeeting(meetingID uuid.UUID) error        { return nil }
func (f *fakeSummaryRepo) ListByMeeting(meetingID uuid.UUID) ([]*entities.Summary, error) {
	var out []*entities.Summary
	for _, s := range f.summaries {
		if s.MeetingID == meetingID {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSummaryRepo) ListByMeetingAndType(meetingID uuid.UUID, typeTag string) ([]*entities.Summary, error) {
	var out []*entities.Summary
	for _, s := range f.summaries {
		if s.MeetingID == meetingID && s.MeetingType == typeTag {
			out = append(out, s)
		}
	}
	return out, nil
}
func (f *fakeSummaryRepo) GetLatestByMeeting(meetingID uuid.UUID) (*entities.Summary, error) {
	all, _ := f.ListByMeeting(meetingID)
	if len(all) == 0 {
		return nil, nil
	}
	latest := all[0]
	for _, s := range all[1:] {
		if s.CreatedAt.After(latest.CreatedAt) {
			latest = s
		}
	}
	return latest, nil
}

func summariesContext(t *testing.T, meetingID uuid.UUID, query string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/meetings/"+meetingID.String()+"/summaries"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(meetingID.String())
	return c, rec
}

func decodeSummaries(t *testing.T, rec *httptest.ResponseRecorder) []dto.SummaryResponse {
	t.Helper()
	var body struct {
		Data []dto.SummaryResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data
}

func summaryAt(meetingID uuid.UUID, typeTag string, age time.Duration) *entities.Summary {
	s := entities.NewSummary(meetingID, typeTag)
	s.ContentText = typeTag + " summary"
	s.CreatedAt = time.Now().Add(-age)
	return s
}

func TestGetSummaries_FiltersByType(t *testing.T) {
	meetingID := uuid.New()
	summaries := &fakeSummaryRepo{summaries: []*entities.Summary{
		summaryAt(meetingID, entities.MeetingTypeWorking, time.Hour),
		summaryAt(meetingID, entities.MeetingTypeIntro, time.Minute),
	}}
	mh := NewMeetingHandler(nil, summaries, nil, nil, nil, nil, zap.NewNop())
	c, rec := summariesContext(t, meetingID, "?type="+entities.MeetingTypeWorking)

	require.NoError(t, mh.GetSummaries(c))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeSummaries(t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, entities.MeetingTypeWorking, got[0].MeetingType)
}

func TestGetSummaries_LatestOnly(t *testing.T) {
	meetingID := uuid.New()
	summaries := &fakeSummaryRepo{summaries: []*entities.Summary{
		summaryAt(meetingID, entities.MeetingTypeWorking, time.Hour),
		summaryAt(meetingID, entities.MeetingTypeWorking, time.Minute),
	}}
	mh := NewMeetingHandler(nil, summaries, nil, nil, nil, nil, zap.NewNop())
	c, rec := summariesContext(t, meetingID, "?latest=true")

	require.NoError(t, mh.GetSummaries(c))

	require.Equal(t, http.StatusOK, rec.Code)
	got := decodeSummaries(t, rec)
	require.Len(t, got, 1)
}

func TestGetSummaries_LatestOfType(t *testing.T) {
	meetingID := uuid.New()
	old := summaryAt(meetingID, entities.MeetingTypeWorking, time.Hour)
	recent := summaryAt(meetingID, entities.MeetingTypeWorking, time.Minute)
	// Repo returns newest first for a type filter
	summaries := &fakeSummaryRepo{summaries: []*entities.Summary{recent, old}}
	mh := NewMeetingHandler(nil, summaries, nil, nil, nil, nil, zap.NewNop())
	c, rec := summariesContext(t, meetingID, "?type="+entities.MeetingTypeWorking+"&latest=true")

	require.NoError(t, mh.GetSummaries(c))

	got := decodeSummaries(t, rec)
	require.Len(t, got, 1)
	assert.Equal(t, recent.ID, got[0].ID)
}

func TestGetSummaries_UnknownTypeRejected(t *testing.T) {
	meetingID := uuid.New()
	mh := NewMeetingHandler(nil, &fakeSummaryRepo{}, nil, nil, nil, nil, zap.NewNop())
	c, rec := summariesContext(t, meetingID, "?type=standup")

	require.NoError(t, mh.GetSummaries(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

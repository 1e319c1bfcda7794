package dispatch

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
	"github.com/meetingintel-team/meeting-intel/internal/infrastructure/external/todoist"
)

type fakeDispatchRepo struct {
	records map[string]*entities.DispatchRecord
}

func newFakeDispatchRepo() *fakeDispatchRepo {
	return &fakeDispatchRepo{records: make(map[string]*entities.DispatchRecord)}
}

func key(meetingID uuid.UUID, itemHash string) string {
	return meetingID.String() + ":" + itemHash
}

func (f *fakeDispatchRepo) SaveNew(d *entities.DispatchRecord) (bool, error) {
	k := key(d.MeetingID, d.ItemHash)
	if _, exists := f.records[k]; exists {
		return false, nil
	}
	f.records[k] = d
	return true, nil
}
func (f *fakeDispatchRepo) Update(d *entities.DispatchRecord) error {
	f.records[key(d.MeetingID, d.ItemHash)] = d
	return nil
}
func (f *fakeDispatchRepo) GetByMeetingAndHash(meetingID uuid.UUID, itemHash string) (*entities.DispatchRecord, error) {
	return f.records[key(meetingID, itemHash)], nil
}
func (f *fakeDispatchRepo) ListByMeeting(meetingID uuid.UUID) ([]*entities.DispatchRecord, error) {
	var out []*entities.DispatchRecord
	for _, r := range f.records {
		if r.MeetingID == meetingID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (f *fakeDispatchRepo) ListFailed() ([]*entities.DispatchRecord, error) {
	var out []*entities.DispatchRecord
	for _, r := range f.records {
		if !r.IsDispatched() {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeClientRepo struct {
	client  *entities.Client
	mapping *entities.ProjectMapping
}

func (f *fakeClientRepo) Save(c *entities.Client) error   { f.client = c; return nil }
func (f *fakeClientRepo) Update(c *entities.Client) error { f.client = c; return nil }
func (f *fakeClientRepo) GetByID(id uuid.UUID) (*entities.Client, error) {
	if f.client != nil && f.client.ID == id {
		return f.client, nil
	}
	return nil, nil
}
func (f *fakeClientRepo) GetByName(name string) (*entities.Client, error) { return nil, nil }
func (f *fakeClientRepo) List() ([]*entities.Client, error)               { return nil, nil }
func (f *fakeClientRepo) Delete(id uuid.UUID) error                       { return nil }
func (f *fakeClientRepo) SaveMapping(m *entities.ProjectMapping) error {
	f.mapping = m
	return nil
}
func (f *fakeClientRepo) GetMappingByClient(clientID uuid.UUID) (*entities.ProjectMapping, error) {
	if f.mapping != nil && f.mapping.ClientID == clientID {
		return f.mapping, nil
	}
	return nil, nil
}
func (f *fakeClientRepo) DeleteMapping(clientID uuid.UUID) error { f.mapping = nil; return nil }

type fakeTaskClient struct {
	taskErr      error
	tasks        []string
	projects     []string
	taskCalls    int
	projectCalls int
}

func (f *fakeTaskClient) CreateTask(ctx context.Context, content, projectID string) (string, error) {
	f.taskCalls++
	if f.taskErr != nil {
		return "", f.taskErr
	}
	f.tasks = append(f.tasks, content)
	return fmt.Sprintf("task-%d", f.taskCalls), nil
}
func (f *fakeTaskClient) CreateProject(ctx context.Context, name string) (string, error) {
	f.projectCalls++
	f.projects = append(f.projects, name)
	return fmt.Sprintf("project-%d", f.projectCalls), nil
}

func structuredContent(items ...interface{}) entities.SummaryContent {
	return entities.NewStructuredContent("done", map[string]interface{}{
		"action_items": items,
	}, false)
}

func TestDispatch_CreatesTasksAndRecords(t *testing.T) {
	dispatches := newFakeDispatchRepo()
	tasks := &fakeTaskClient{}
	svc := NewService(dispatches, &fakeClientRepo{}, tasks, zap.NewNop())
	meeting := entities.NewMeeting("ff-1")

	err := svc.Dispatch(context.Background(), meeting, structuredContent("write changelog", "email client"))

	require.NoError(t, err)
	assert.Equal(t, []string{"write changelog", "email client"}, tasks.tasks)
	assert.Len(t, dispatches.records, 2)
	for _, record := range dispatches.records {
		assert.True(t, record.IsDispatched())
	}
}

func TestDispatch_SkipsAlreadyDispatchedItems(t *testing.T) {
	dispatches := newFakeDispatchRepo()
	tasks := &fakeTaskClient{}
	svc := NewService(dispatches, &fakeClientRepo{}, tasks, zap.NewNop())
	meeting := entities.NewMeeting("ff-1")

	require.NoError(t, svc.Dispatch(context.Background(), meeting, structuredContent("write changelog")))
	firstCalls := tasks.taskCalls

	// Re-summarization produces the same item plus a new one
	err := svc.Dispatch(context.Background(), meeting, structuredContent("write changelog", "book review"))

	require.NoError(t, err)
	assert.Equal(t, firstCalls+1, tasks.taskCalls)
	assert.Len(t, dispatches.records, 2)
}

func TestDispatch_PartialFailure(t *testing.T) {
	dispatches := newFakeDispatchRepo()
	tasks := &fakeTaskClient{taskErr: &todoist.APIError{StatusCode: 400, Body: "bad request"}}
	svc := NewService(dispatches, &fakeClientRepo{}, tasks, zap.NewNop())
	meeting := entities.NewMeeting("ff-1")

	err := svc.Dispatch(context.Background(), meeting, structuredContent("write changelog"))

	assert.Error(t, err)
	require.Len(t, dispatches.records, 1)
	for _, record := range dispatches.records {
		assert.False(t, record.IsDispatched())
		assert.NotNil(t, record.Error)
	}
}

func TestDispatch_RetriesPreviouslyFailedItems(t *testing.T) {
	dispatches := newFakeDispatchRepo()
	tasks := &fakeTaskClient{taskErr: &todoist.APIError{StatusCode: 400, Body: "bad request"}}
	svc := NewService(dispatches, &fakeClientRepo{}, tasks, zap.NewNop())
	meeting := entities.NewMeeting("ff-1")

	require.Error(t, svc.Dispatch(context.Background(), meeting, structuredContent("write changelog")))

	// Tracker recovers and the same items come through again
	tasks.taskErr = nil

	err := svc.Dispatch(context.Background(), meeting, structuredContent("write changelog"))

	require.NoError(t, err)
	assert.Equal(t, []string{"write changelog"}, tasks.tasks)
	require.Len(t, dispatches.records, 1)
	for _, record := range dispatches.records {
		assert.True(t, record.IsDispatched())
	}

	// A third pass leaves the dispatched item alone
	callsBefore := tasks.taskCalls
	require.NoError(t, svc.Dispatch(context.Background(), meeting, structuredContent("write changelog")))
	assert.Equal(t, callsBefore, tasks.taskCalls)
}

func TestDispatch_LazyProjectCreation(t *testing.T) {
	clients := &fakeClientRepo{client: entities.NewClient("Acme Corp")}
	tasks := &fakeTaskClient{}
	svc := NewService(newFakeDispatchRepo(), clients, tasks, zap.NewNop())

	meeting := entities.NewMeeting("ff-1")
	meeting.ClientID = &clients.client.ID

	err := svc.Dispatch(context.Background(), meeting, structuredContent("write changelog"))

	require.NoError(t, err)
	assert.Equal(t, []string{"Acme Corp"}, tasks.projects)
	require.NotNil(t, clients.mapping)
	assert.Equal(t, "project-1", clients.mapping.ProjectID)

	// Second dispatch reuses the stored mapping
	err = svc.Dispatch(context.Background(), meeting, structuredContent("another item"))
	require.NoError(t, err)
	assert.Equal(t, 1, tasks.projectCalls)
}

func TestDispatch_NoActionItems(t *testing.T) {
	tasks := &fakeTaskClient{}
	svc := NewService(newFakeDispatchRepo(), &fakeClientRepo{}, tasks, zap.NewNop())

	err := svc.Dispatch(context.Background(), entities.NewMeeting("ff-1"), entities.NewTextOnlyContent("prose", false))

	require.NoError(t, err)
	assert.Equal(t, 0, tasks.taskCalls)
}

func TestRedispatch_RetriesOnlyFailedItems(t *testing.T) {
	dispatches := newFakeDispatchRepo()
	tasks := &fakeTaskClient{taskErr: &todoist.APIError{StatusCode: 400, Body: "bad request"}}
	svc := NewService(dispatches, &fakeClientRepo{}, tasks, zap.NewNop())
	meeting := entities.NewMeeting("ff-1")

	require.Error(t, svc.Dispatch(context.Background(), meeting, structuredContent("write changelog")))

	// Tracker recovers
	tasks.taskErr = nil
	callsBefore := tasks.taskCalls

	err := svc.Redispatch(context.Background(), meeting)

	require.NoError(t, err)
	assert.Equal(t, callsBefore+1, tasks.taskCalls)
	for _, record := range dispatches.records {
		assert.True(t, record.IsDispatched())
	}

	// Nothing left to retry
	require.NoError(t, svc.Redispatch(context.Background(), meeting))
	assert.Equal(t, callsBefore+1, tasks.taskCalls)
}

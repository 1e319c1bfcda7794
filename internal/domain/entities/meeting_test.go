package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMeeting_Defaults(t *testing.T) {
	m := NewMeeting("ff-123")

	assert.Equal(t, "ff-123", m.FirefliesID)
	assert.Equal(t, MeetingStatusReceived, m.Status)
	assert.Equal(t, 0, m.RetryCount)
	assert.Equal(t, 3, m.MaxRetries)
	assert.True(t, m.IsRetryable())
	assert.False(t, m.HasTranscript())
}

func TestMeeting_PipelineTransitions(t *testing.T) {
	m := NewMeeting("ff-123")
	date := time.Now()

	m.MarkTranscribed("Weekly sync", &date, "Alice: hello\nBob: hi\n")
	assert.Equal(t, MeetingStatusTranscribed, m.Status)
	assert.True(t, m.HasTranscript())
	assert.Equal(t, "Weekly sync", m.Title)

	m.MarkTypePending()
	assert.Equal(t, MeetingStatusTypePending, m.Status)

	m.MarkSummarizing(MeetingTypeWorking)
	assert.Equal(t, MeetingStatusSummarizing, m.Status)
	assert.NotNil(t, m.MeetingType)
	assert.Equal(t, MeetingTypeWorking, *m.MeetingType)

	m.MarkSummarized()
	assert.Equal(t, MeetingStatusSummarized, m.Status)

	m.MarkTasksDispatched()
	assert.Equal(t, MeetingStatusTasksDispatched, m.Status)
}

func TestMeeting_MarkFailedKeepsError(t *testing.T) {
	m := NewMeeting("ff-123")
	m.MarkFailed("provider timeout")

	assert.Equal(t, MeetingStatusFailed, m.Status)
	assert.NotNil(t, m.LastError)
	assert.Equal(t, "provider timeout", *m.LastError)
}

func TestMeeting_RetryBudget(t *testing.T) {
	m := NewMeeting("ff-123")

	for i := 0; i < 3; i++ {
		assert.True(t, m.IsRetryable())
		m.IncrementRetry("timeout")
	}
	assert.False(t, m.IsRetryable())
	assert.Equal(t, 3, m.RetryCount)
}

func TestMeeting_CanSelectType(t *testing.T) {
	m := NewMeeting("ff-123")

	// No transcript yet, selection refused in every state
	assert.False(t, m.CanSelectType())
	m.Status = MeetingStatusTypePending
	assert.False(t, m.CanSelectType())

	date := time.Now()
	m.MarkTranscribed("Sync", &date, "transcript")

	// Transcribed but not yet at the suspension point
	assert.False(t, m.CanSelectType())

	m.MarkTypePending()
	assert.True(t, m.CanSelectType())

	// Re-selection after a completed run is allowed
	m.MarkSummarized()
	assert.True(t, m.CanSelectType())
	m.MarkTasksDispatched()
	assert.True(t, m.CanSelectType())

	// Selection on a failed meeting restarts the run
	m.MarkFailed("llm error")
	assert.True(t, m.CanSelectType())

	m.Status = MeetingStatusSummarizing
	assert.False(t, m.CanSelectType())
}

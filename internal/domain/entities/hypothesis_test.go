package entities

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewHypothesis_StartsActive(t *testing.T) {
	clientID := uuid.New()
	h := NewHypothesis(clientID, "Weekly digest email lifts retention")

	assert.Equal(t, clientID, h.ClientID)
	assert.Equal(t, HypothesisStatusActive, h.Status)
	assert.Nil(t, h.TestedAt)
}

func TestSetOutcome_StampsTestDateOnTerminalStatuses(t *testing.T) {
	h := NewHypothesis(uuid.New(), "Weekly digest email lifts retention")

	h.SetOutcome(HypothesisStatusTesting, nil, nil)
	assert.Equal(t, HypothesisStatusTesting, h.Status)
	assert.Nil(t, h.TestedAt)

	result := "retention up 12%"
	h.SetOutcome(HypothesisStatusValidated, &result, nil)
	assert.Equal(t, HypothesisStatusValidated, h.Status)
	assert.Equal(t, "retention up 12%", *h.Result)
	assert.NotNil(t, h.TestedAt)

	failed := NewHypothesis(uuid.New(), "Cold outreach converts")
	failed.SetOutcome(HypothesisStatusFailed, nil, nil)
	assert.NotNil(t, failed.TestedAt)
}

func TestIsValidHypothesisStatus(t *testing.T) {
	for _, s := range HypothesisStatuses {
		assert.True(t, IsValidHypothesisStatus(string(s)))
	}
	assert.False(t, IsValidHypothesisStatus("archived"))
}

package summarize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

func TestTemplateFor_CoversEveryMeetingType(t *testing.T) {
	for _, typeTag := range entities.MeetingTypes {
		template, ok := TemplateFor(typeTag)
		assert.True(t, ok, "missing template for %s", typeTag)
		assert.NotEmpty(t, template.System)
		assert.Contains(t, template.User, "{transcript}")
		assert.Greater(t, template.CharLimit, 0)
	}

	_, ok := TemplateFor("standup")
	assert.False(t, ok)
}

func TestRender_FillsTranscript(t *testing.T) {
	template, _ := TemplateFor(entities.MeetingTypeWorking)

	rendered, clipped := template.Render("Alice: we shipped the feature.")

	assert.False(t, clipped)
	assert.Contains(t, rendered, "Alice: we shipped the feature.")
	assert.NotContains(t, rendered, "{transcript}")
}

func TestRender_ClipsToBudget(t *testing.T) {
	template := PromptTemplate{User: "Summarize:\n{transcript}", CharLimit: 100}
	transcript := strings.Repeat("x", 250)

	rendered, clipped := template.Render(transcript)

	assert.True(t, clipped)
	assert.Contains(t, rendered, strings.Repeat("x", 100))
	assert.NotContains(t, rendered, strings.Repeat("x", 101))
}

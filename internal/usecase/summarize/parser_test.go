package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

func TestParse_PlainJSON(t *testing.T) {
	p := NewParser()

	content := p.Parse(`{"summary": "We agreed on the launch date.", "action_items": ["confirm budget"]}`, false)

	assert.Equal(t, entities.SummaryContentStructured, content.Kind)
	assert.Equal(t, "We agreed on the launch date.", content.Text)
	assert.Equal(t, []string{"confirm budget"}, content.ActionItems())
	assert.False(t, content.Truncated)
}

func TestParse_MarkdownFencedJSON(t *testing.T) {
	p := NewParser()

	raw := "```json\n{\"summary\": \"Fenced output.\"}\n```"
	content := p.Parse(raw, false)

	assert.Equal(t, entities.SummaryContentStructured, content.Kind)
	assert.Equal(t, "Fenced output.", content.Text)
}

func TestParse_InvalidJSONDegradesToText(t *testing.T) {
	p := NewParser()

	raw := "The meeting covered three topics:\n1. Budget\n2. Timeline"
	content := p.Parse(raw, true)

	assert.Equal(t, entities.SummaryContentTextOnly, content.Kind)
	assert.Equal(t, raw, content.Text)
	assert.True(t, content.Truncated)
	assert.Nil(t, content.Structured)
}

func TestParse_SummaryKeyFallbacks(t *testing.T) {
	p := NewParser()

	content := p.Parse(`{"executive_summary": "From the fallback key."}`, false)
	assert.Equal(t, "From the fallback key.", content.Text)

	// No prose field at all keeps the raw output readable
	raw := `{"key_points": ["a", "b"]}`
	content = p.Parse(raw, false)
	assert.Equal(t, entities.SummaryContentStructured, content.Kind)
	assert.Equal(t, raw, content.Text)
}

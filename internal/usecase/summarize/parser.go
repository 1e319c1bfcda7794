package summarize

import (
	"encoding/json"
	"strings"

	"github.com/meetingintel-team/meeting-intel/internal/domain/entities"
)

// Parser turns raw model output into summary content
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// Parse extracts structured content from model output. Output that is not
// valid JSON degrades to a text-only summary instead of failing the run.
func (p *Parser) Parse(raw string, truncated bool) entities.SummaryContent {
	jsonString := extractJSON(raw)

	var structured map[string]interface{}
	if err := json.Unmarshal([]byte(jsonString), &structured); err != nil {
		return entities.NewTextOnlyContent(strings.TrimSpace(raw), truncated)
	}

	text := summaryText(structured)
	if text == "" {
		// Parsed but carries no prose, keep the raw output readable
		text = strings.TrimSpace(raw)
	}
	return entities.NewStructuredContent(text, structured, truncated)
}

// summaryText pulls the prose field out of the structured payload
func summaryText(structured map[string]interface{}) string {
	for _, key := range []string{"summary", "executive_summary", "text"} {
		if v, ok := structured[key].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// extractJSON extracts JSON content from markdown code blocks or plain text
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	// Check if wrapped in markdown code block
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if idx := strings.LastIndex(content, "```"); idx != -1 {
			content = content[:idx]
		}
	}

	return strings.TrimSpace(content)
}

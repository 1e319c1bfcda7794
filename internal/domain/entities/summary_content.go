package entities

import "encoding/json"

// SummaryContentKind tags how much structure could be extracted from the
// model output
type SummaryContentKind string

const (
	SummaryContentStructured SummaryContentKind = "structured" // JSON payload parsed successfully
	SummaryContentTextOnly   SummaryContentKind = "text_only"  // kept as plain prose
)

// SummaryContent is the parsed result of a summarization run. When the model
// output cannot be parsed as JSON the raw text is preserved so the run still
// produces a usable summary.
type SummaryContent struct {
	Kind       SummaryContentKind     `json:"kind"`
	Text       string                 `json:"text"`
	Structured map[string]interface{} `json:"structured,omitempty"`
	Truncated  bool                   `json:"truncated"`
}

// NewStructuredContent builds a structured summary result
func NewStructuredContent(text string, structured map[string]interface{}, truncated bool) SummaryContent {
	return SummaryContent{
		Kind:       SummaryContentStructured,
		Text:       text,
		Structured: structured,
		Truncated:  truncated,
	}
}

// NewTextOnlyContent builds a degraded summary result that keeps the raw text
func NewTextOnlyContent(text string, truncated bool) SummaryContent {
	return SummaryContent{
		Kind:      SummaryContentTextOnly,
		Text:      text,
		Truncated: truncated,
	}
}

// ActionItems extracts the action item texts from structured content.
// Returns nil for text-only content or when the field is absent.
func (c SummaryContent) ActionItems() []string {
	if c.Kind != SummaryContentStructured || c.Structured == nil {
		return nil
	}
	raw, ok := c.Structured["action_items"]
	if !ok {
		return nil
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			if v != "" {
				out = append(out, v)
			}
		case map[string]interface{}:
			if text, ok := v["text"].(string); ok && text != "" {
				out = append(out, text)
			} else if title, ok := v["title"].(string); ok && title != "" {
				out = append(out, title)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StructuredJSON marshals the structured payload for jsonb storage.
// Returns nil for text-only content.
func (c SummaryContent) StructuredJSON() []byte {
	if c.Kind != SummaryContentStructured || c.Structured == nil {
		return nil
	}
	data, err := json.Marshal(c.Structured)
	if err != nil {
		return nil
	}
	return data
}

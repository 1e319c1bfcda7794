package fireflies

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client is a minimal client for the Fireflies GraphQL API
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewClient creates a Fireflies client
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.fireflies.ai/graphql"
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// APIError carries the HTTP status of a failed provider call
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("fireflies returned status %d: %s", e.StatusCode, e.Body)
}

// NotFoundError reports a transcript ID the provider does not know.
// Never retried: the transcript will not appear by asking again.
type NotFoundError struct {
	TranscriptID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("transcript %s not found", e.TranscriptID)
}

// IsRetryable reports whether err is a transient provider failure
func IsRetryable(err error) bool {
	var nfErr *NotFoundError
	if errors.As(err, &nfErr) {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return err != nil
}

// Transcript is a fetched meeting transcript with its metadata.
// Text holds one "Speaker: sentence" line per utterance.
type Transcript struct {
	ID    string
	Title string
	Date  *time.Time
	Text  string
}

const transcriptQuery = `query Transcript($transcriptId: String!) {
  transcript(id: $transcriptId) {
    id
    title
    date
    sentences {
      speaker_name
      text
    }
  }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type graphqlResponse struct {
	Data struct {
		Transcript *struct {
			ID        string  `json:"id"`
			Title     string  `json:"title"`
			Date      float64 `json:"date"` // epoch milliseconds
			Sentences []struct {
				SpeakerName string `json:"speaker_name"`
				Text        string `json:"text"`
			} `json:"sentences"`
		} `json:"transcript"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GetTranscript fetches a transcript by its provider ID and formats the
// sentences as speaker-attributed lines
func (c *Client) GetTranscript(ctx context.Context, transcriptID string) (*Transcript, error) {
	reqBody := graphqlRequest{
		Query:     transcriptQuery,
		Variables: map[string]interface{}{"transcriptId": transcriptID},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return nil, &APIError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	var gr graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return nil, err
	}
	if len(gr.Errors) > 0 {
		return nil, fmt.Errorf("fireflies query failed: %s", gr.Errors[0].Message)
	}
	if gr.Data.Transcript == nil {
		return nil, &NotFoundError{TranscriptID: transcriptID}
	}

	t := gr.Data.Transcript
	var sb strings.Builder
	for _, s := range t.Sentences {
		speaker := s.SpeakerName
		if speaker == "" {
			speaker = "Unknown"
		}
		sb.WriteString(speaker)
		sb.WriteString(": ")
		sb.WriteString(s.Text)
		sb.WriteString("\n")
	}

	var date *time.Time
	if t.Date > 0 {
		d := time.UnixMilli(int64(t.Date)).UTC()
		date = &d
	}

	return &Transcript{
		ID:    t.ID,
		Title: t.Title,
		Date:  date,
		Text:  sb.String(),
	}, nil
}

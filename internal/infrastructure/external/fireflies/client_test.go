package fireflies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGetTranscript_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST got %s", r.Method)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("unexpected authorization header %q", auth)
		}
		var payload graphqlRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Variables["transcriptId"] != "ff-123" {
			t.Fatalf("unexpected transcript id %v", payload.Variables["transcriptId"])
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"transcript": map[string]interface{}{
					"id":    "ff-123",
					"title": "Weekly sync",
					"date":  1735689600000,
					"sentences": []map[string]string{
						{"speaker_name": "Alice", "text": "hello"},
						{"speaker_name": "", "text": "hi"},
					},
				},
			},
		})
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL)

	transcript, err := client.GetTranscript(context.Background(), "ff-123")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if transcript.ID != "ff-123" {
		t.Fatalf("unexpected id %s", transcript.ID)
	}
	if transcript.Title != "Weekly sync" {
		t.Fatalf("unexpected title %s", transcript.Title)
	}
	if transcript.Text != "Alice: hello\nUnknown: hi\n" {
		t.Fatalf("unexpected text %q", transcript.Text)
	}
	want := time.UnixMilli(1735689600000).UTC()
	if transcript.Date == nil || !transcript.Date.Equal(want) {
		t.Fatalf("unexpected date %v", transcript.Date)
	}
}

func TestGetTranscript_NotFoundIsPermanent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{"transcript": nil},
		})
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL)

	_, err := client.GetTranscript(context.Background(), "missing")
	if err == nil {
		t.Fatal("expected error for missing transcript")
	}
	var nfErr *NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if nfErr.TranscriptID != "missing" {
		t.Fatalf("unexpected transcript id %q", nfErr.TranscriptID)
	}
	if IsRetryable(err) {
		t.Fatal("missing transcript must not be retryable")
	}
}

func TestGetTranscript_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient("test-key", ts.URL)

	_, err := client.GetTranscript(context.Background(), "ff-123")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRetryable(err) {
		t.Fatalf("expected 502 to be retryable: %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(&APIError{StatusCode: http.StatusNotFound}) {
		t.Fatal("404 must not be retryable")
	}
	if !IsRetryable(&APIError{StatusCode: http.StatusTooManyRequests}) {
		t.Fatal("429 must be retryable")
	}
}

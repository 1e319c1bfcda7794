package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCreateTask_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-token" {
			t.Fatalf("unexpected authorization header %q", auth)
		}
		if r.Header.Get("X-Request-Id") == "" {
			t.Fatal("missing idempotency header")
		}
		var payload createTaskRequest
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload.Content != "write changelog" || payload.ProjectID != "p-1" {
			t.Fatalf("unexpected payload %+v", payload)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(taskResponse{ID: "t-1", Content: payload.Content})
	}))
	defer ts.Close()

	client := NewClient("test-token", ts.URL)

	id, err := client.CreateTask(context.Background(), "write changelog", "p-1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if id != "t-1" {
		t.Fatalf("unexpected task id %s", id)
	}
}

func TestCreateProject_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/projects" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var payload map[string]string
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("invalid payload: %v", err)
		}
		if payload["name"] != "Acme Corp" {
			t.Fatalf("unexpected project name %q", payload["name"])
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(projectResponse{ID: "p-1", Name: payload["name"]})
	}))
	defer ts.Close()

	client := NewClient("test-token", ts.URL)

	id, err := client.CreateProject(context.Background(), "Acme Corp")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if id != "p-1" {
		t.Fatalf("unexpected project id %s", id)
	}
}

func TestListTasks_FiltersByProject(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/tasks" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if got := r.URL.Query().Get("project_id"); got != "p-1" {
			t.Fatalf("unexpected project filter %q", got)
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode([]Task{
			{ID: "t-1", Content: "write changelog"},
			{ID: "t-2", Content: "email client"},
		})
	}))
	defer ts.Close()

	client := NewClient("test-token", ts.URL)

	tasks, err := client.ListTasks(context.Background(), "p-1")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if len(tasks) != 2 || tasks[0].ID != "t-1" {
		t.Fatalf("unexpected tasks %+v", tasks)
	}
}

func TestCompleteTask_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/tasks/t-1/close" {
			t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	client := NewClient("test-token", ts.URL)

	if err := client.CompleteTask(context.Background(), "t-1"); err != nil {
		t.Fatalf("request failed: %v", err)
	}
}

func TestCreateTask_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient("test-token", ts.URL)

	_, err := client.CreateTask(context.Background(), "write changelog", "")
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsRetryable(err) {
		t.Fatalf("expected 503 to be retryable: %v", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if IsRetryable(&APIError{StatusCode: http.StatusBadRequest}) {
		t.Fatal("400 must not be retryable")
	}
	if !IsRetryable(&APIError{StatusCode: http.StatusTooManyRequests}) {
		t.Fatal("429 must be retryable")
	}
}

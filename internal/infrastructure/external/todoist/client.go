package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// Client is a minimal client for the Todoist REST API
type Client struct {
	apiToken string
	baseURL  string
	client   *http.Client
}

// NewClient creates a Todoist client
func NewClient(apiToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.todoist.com/rest/v2"
	}
	return &Client{
		apiToken: apiToken,
		baseURL:  baseURL,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError carries the HTTP status of a failed provider call
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("todoist returned status %d: %s", e.StatusCode, e.Body)
}

// IsRetryable reports whether err is a transient provider failure
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == http.StatusTooManyRequests || apiErr.StatusCode >= 500
	}
	return err != nil
}

type createTaskRequest struct {
	Content   string `json:"content"`
	ProjectID string `json:"project_id,omitempty"`
}

type taskResponse struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// CreateTask creates a task, optionally inside a project, and returns the
// task ID. The request carries an idempotency key so provider-side retries
// never duplicate the task.
func (c *Client) CreateTask(ctx context.Context, content, projectID string) (string, error) {
	b, err := json.Marshal(createTaskRequest{Content: content, ProjectID: projectID})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/tasks"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	var tr taskResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", err
	}
	return tr.ID, nil
}

type projectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CreateProject creates a project and returns its ID
func (c *Client) CreateProject(ctx context.Context, name string) (string, error) {
	b, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return "", err
	}

	endpoint := c.baseURL + "/projects"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return "", &APIError{StatusCode: resp.StatusCode, Body: buf.String()}
	}

	var pr projectResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return "", err
	}
	return pr.ID, nil
}

// Task is an open task as reported by the provider
type Task struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// ListTasks returns the open tasks in a project. An empty projectID lists
// tasks across all projects.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]Task, error) {
	endpoint := c.baseURL + "/tasks"
	if projectID != "" {
		endpoint += "?project_id=" + projectID
	}
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)

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

	var tasks []Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CompleteTask closes a task by its provider ID
func (c *Client) CompleteTask(ctx context.Context, taskID string) error {
	endpoint := c.baseURL + "/tasks/" + taskID + "/close"
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &APIError{StatusCode: resp.StatusCode, Body: buf.String()}
	}
	return nil
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"loom/internal/config"
	"loom/internal/types"

	"github.com/google/uuid"
)

// Client talks to the Loom collaboration server. It owns transport only;
// session state reconciliation lives in internal/session.
type Client struct {
	baseURL     string
	tokenPath   string
	token       string
	http        *http.Client
	streamDebug bool
}

func New() (*Client, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	tokenPath, err := config.TokenPath()
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:     settings.ServerBaseURL(),
		tokenPath:   tokenPath,
		streamDebug: settings.StreamDebugEnabled(),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	_ = c.loadToken()
	return c, nil
}

func NewWithBaseURL(baseURL, token string) *Client {
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		token:       token,
		streamDebug: config.Settings{}.StreamDebugEnabled(),
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, false, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListInstances(ctx context.Context) ([]*types.Instance, error) {
	var resp InstancesResponse
	if err := c.doJSON(ctx, http.MethodGet, "/sessions", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Instances, nil
}

func (c *Client) GetInstance(ctx context.Context, id string) (*types.Instance, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("session id is required")
	}
	var instance types.Instance
	if err := c.doJSON(ctx, http.MethodGet, "/sessions/"+strings.TrimSpace(id), nil, true, &instance); err != nil {
		return nil, err
	}
	return &instance, nil
}

// Messages fetches the full durable transcript for a session. This is the
// authoritative post-reconciliation state; callers replace their cache
// wholesale with the result.
func (c *Client) Messages(ctx context.Context, id string) ([]types.SessionMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("session id is required")
	}
	var resp MessagesResponse
	path := fmt.Sprintf("/sessions/%s/messages", strings.TrimSpace(id))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// Enqueue submits a user message for processing. Any 2xx is success; the
// response body carries nothing the client depends on.
func (c *Client) Enqueue(ctx context.Context, id, query string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("session id is required")
	}
	path := fmt.Sprintf("/sessions/%s/enqueue", strings.TrimSpace(id))
	req := EnqueueRequest{Query: query, Stream: true}
	return c.doJSON(ctx, http.MethodPost, path, req, true, nil)
}

func (c *Client) Interrupt(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("session id is required")
	}
	path := fmt.Sprintf("/sessions/%s/interrupt", strings.TrimSpace(id))
	return c.doJSON(ctx, http.MethodPost, path, nil, true, nil)
}

func (c *Client) ListAgents(ctx context.Context) ([]*types.Agent, error) {
	var resp AgentsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/agents", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Agents, nil
}

func (c *Client) ListSkills(ctx context.Context) ([]*types.Skill, error) {
	var resp SkillsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/skills", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]*types.Project, error) {
	var resp ProjectsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/projects", nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) ListTasks(ctx context.Context, projectID string) ([]*types.Task, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, errors.New("project id is required")
	}
	var resp TasksResponse
	path := fmt.Sprintf("/projects/%s/tasks", strings.TrimSpace(projectID))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, true, &resp); err != nil {
		return nil, err
	}
	return resp.Tasks, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body any, requireAuth bool, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method == http.MethodPost {
		req.Header.Set("X-Request-Id", uuid.NewString())
	}
	if requireAuth {
		if err := c.ensureToken(); err != nil {
			return err
		}
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpClient := c.http
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) ensureToken() error {
	if strings.TrimSpace(c.token) == "" {
		if err := c.loadToken(); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.token) == "" {
		return errors.New("token not found; set LOOM_TOKEN or write " + c.tokenPath)
	}
	return nil
}

func (c *Client) loadToken() error {
	if env := strings.TrimSpace(os.Getenv("LOOM_TOKEN")); env != "" {
		c.token = env
		return nil
	}
	if c.tokenPath == "" {
		return nil
	}
	data, err := os.ReadFile(c.tokenPath)
	if err != nil {
		if os.IsNotExist(err) {
			c.token = ""
			return nil
		}
		return err
	}
	c.token = strings.TrimSpace(string(data))
	return nil
}

func decodeAPIError(resp *http.Response) error {
	type errorPayload struct {
		Error string `json:"error"`
	}
	var payload errorPayload
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	if payload.Error != "" {
		return &APIError{StatusCode: resp.StatusCode, Message: payload.Error}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: resp.Status}
}

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("api error (%d): %s", e.StatusCode, e.Message)
}

func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return nil
}

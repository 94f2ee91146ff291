// Package client is a Go client for the jobdesk API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/jobdesk/jobdesk-be/internal/models"
)

// APIError is a failure reported by the server, carrying its stable error
// code alongside the human-readable message.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Code, e.Message)
}

// Identity is the authenticated identity embedded in a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Client talks to a jobdesk server. The zero session is logged out; Login
// populates it and Logout clears it.
type Client struct {
	baseURL string
	http    *http.Client
	session *Session
}

// New creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		session: &Session{},
	}
}

// Session exposes the client's session holder.
func (c *Client) Session() *Session {
	return c.session
}

// newRequest builds a request, attaching the current session token if one
// is held. The token is read per call; nothing mutates shared defaults.
func (c *Client) newRequest(ctx context.Context, method, path string, body interface{}) (*http.Request, error) {
	var buf *bytes.Buffer
	if body != nil {
		buf = &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(body); err != nil {
			return nil, err
		}
	}

	var req *http.Request
	var err error
	if buf != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	}
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do executes the request and decodes a success body into v (when v is
// non-nil). Non-2xx responses decode into an *APIError.
func (c *Client) do(req *http.Request, v interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil {
			apiErr.Message = resp.Status
		}
		return apiErr
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password string) (models.User, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/register", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return models.User{}, err
	}
	var user models.User
	return user, c.do(req, &user)
}

// Login authenticates and stores the minted token in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return err
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &body); err != nil {
		return err
	}
	c.session.Set(body.Token)
	return nil
}

// Logout drops the session token. Tokens are stateless server-side, so
// nothing is sent.
func (c *Client) Logout() {
	c.session.Clear()
}

// Verify asks the server for the identity behind the current token.
func (c *Client) Verify(ctx context.Context) (Identity, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/auth/verify", nil)
	if err != nil {
		return Identity{}, err
	}
	var body struct {
		User Identity `json:"user"`
	}
	return body.User, c.do(req, &body)
}

// Jobs lists the jobs owned by the logged-in user.
func (c *Client) Jobs(ctx context.Context) ([]models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/jobs", nil)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	return jobs, c.do(req, &jobs)
}

// AllJobs lists every job on the board. No authentication required.
func (c *Client) AllJobs(ctx context.Context) ([]models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/alljobs", nil)
	if err != nil {
		return nil, err
	}
	var jobs []models.Job
	return jobs, c.do(req, &jobs)
}

// CreateJob posts a new job owned by the logged-in user.
func (c *Client) CreateJob(ctx context.Context, fields models.JobFields) (models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/jobs", fields)
	if err != nil {
		return models.Job{}, err
	}
	var job models.Job
	return job, c.do(req, &job)
}

// GetJob fetches a single job by id.
func (c *Client) GetJob(ctx context.Context, id string) (models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/jobs/"+id, nil)
	if err != nil {
		return models.Job{}, err
	}
	var job models.Job
	return job, c.do(req, &job)
}

// UpdateJob overwrites the mutable fields of a job the user owns.
func (c *Client) UpdateJob(ctx context.Context, id string, fields models.JobFields) (models.Job, error) {
	req, err := c.newRequest(ctx, http.MethodPut, "/api/jobs/"+id, fields)
	if err != nil {
		return models.Job{}, err
	}
	var job models.Job
	return job, c.do(req, &job)
}

// DeleteJob removes a job the user owns.
func (c *Client) DeleteJob(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/jobs/"+id, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Events fetches the most recent activity events.
func (c *Client) Events(ctx context.Context, limit int) ([]models.Event, error) {
	path := "/api/events"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	var events []models.Event
	return events, c.do(req, &events)
}

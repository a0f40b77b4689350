// Package client is a typed client for the survey persistence API. It
// also satisfies the pending-score relay's sink shape, so a freshly
// signed-in session can flush its staged score through SaveScore.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Survey mirrors the API's survey payload. OwnerID never appears on
// the wire.
type Survey struct {
	ID             string    `json:"id"`
	FootprintScore int       `json:"footprintScore"`
	CreatedAt      time.Time `json:"createdAt"`
}

// APIError is a non-2xx response decoded from the error envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

// New returns a client for the API at baseURL authenticating with the
// given bearer token. An empty token makes unauthenticated calls.
func New(baseURL, token string) *Client {
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken replaces the bearer token, e.g. after login.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Login authenticates and stores the returned token on the client.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// Register creates an account and stores the returned token.
func (c *Client) Register(ctx context.Context, email, password string) error {
	var out struct {
		Token string `json:"token"`
	}
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", body, &out); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

// SaveSurveyScore persists a new score snapshot.
func (c *Client) SaveSurveyScore(ctx context.Context, score int) (*Survey, error) {
	var out struct {
		Survey Survey `json:"survey"`
	}
	body := map[string]int{"footprintScore": score}
	if err := c.do(ctx, http.MethodPost, "/api/surveys", body, &out); err != nil {
		return nil, err
	}
	return &out.Survey, nil
}

// Surveys returns the caller's snapshots, newest first.
func (c *Client) Surveys(ctx context.Context) ([]Survey, error) {
	var out struct {
		Surveys []Survey `json:"surveys"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/surveys", nil, &out); err != nil {
		return nil, err
	}
	return out.Surveys, nil
}

// Survey fetches one snapshot by id.
func (c *Client) Survey(ctx context.Context, id string) (*Survey, error) {
	var out struct {
		Survey Survey `json:"survey"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/surveys/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out.Survey, nil
}

// UpdateSurvey replaces the score of an owned snapshot.
func (c *Client) UpdateSurvey(ctx context.Context, id string, score int) (*Survey, error) {
	var out struct {
		Survey Survey `json:"survey"`
	}
	body := map[string]int{"footprintScore": score}
	if err := c.do(ctx, http.MethodPut, "/api/surveys/"+id, body, &out); err != nil {
		return nil, err
	}
	return &out.Survey, nil
}

// DeleteSurvey permanently removes a snapshot.
func (c *Client) DeleteSurvey(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/surveys/"+id, nil, nil)
}

// SaveScore matches survey.ScoreSink. The owning user is implied by
// the client's token; the id argument is only the relay's bookkeeping.
func (c *Client) SaveScore(ctx context.Context, _ string, score int) error {
	_, err := c.SaveSurveyScore(ctx, score)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Error}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			return err
		}
	}
	return nil
}

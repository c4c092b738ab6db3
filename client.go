// Package studyref provides a client for the studyref HTTP API.
package studyref

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/scriptura/studyref/internal/server"
	"github.com/scriptura/studyref/internal/view"
)

// Client talks to a running studyref server. The token identifies the
// owner; every call is scoped to it.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    http.DefaultClient,
	}
}

// ListStudies returns all studies of the owner.
func (c *Client) ListStudies(ctx context.Context) ([]server.StudyResponse, error) {
	var resp server.StudyListResponse
	if err := c.do(ctx, http.MethodGet, "/v1/studies", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Studies, nil
}

// CreateStudy creates a new study and returns it.
func (c *Client) CreateStudy(ctx context.Context, req server.CreateStudyRequest) (*server.StudyResponse, error) {
	var resp server.StudyResponse
	if err := c.do(ctx, http.MethodPost, "/v1/studies", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateTag registers a tag with its display color.
func (c *Client) CreateTag(ctx context.Context, req server.CreateTagRequest) error {
	return c.do(ctx, http.MethodPost, "/v1/tags", req, nil)
}

// ListReferences returns the rendered reference cards of a study.
func (c *Client) ListReferences(ctx context.Context, studyID string) ([]view.Card, error) {
	var resp server.ReferenceListResponse
	path := fmt.Sprintf("/v1/studies/%s/references", studyID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.References, nil
}

// AddReference links a study to another study of the same owner.
func (c *Client) AddReference(ctx context.Context, studyID, targetStudyID string) (bool, error) {
	return c.mutate(ctx, http.MethodPost,
		fmt.Sprintf("/v1/studies/%s/references", studyID),
		server.AddReferenceRequest{TargetStudyID: targetStudyID})
}

// AddExternalLink attaches an outside URL to a study.
func (c *Client) AddExternalLink(ctx context.Context, studyID, url string) (bool, error) {
	return c.mutate(ctx, http.MethodPost,
		fmt.Sprintf("/v1/studies/%s/references", studyID),
		server.AddReferenceRequest{URL: url})
}

// DeleteReference removes a reference and its mirror, if any.
func (c *Client) DeleteReference(ctx context.Context, referenceID string) (bool, error) {
	return c.mutate(ctx, http.MethodDelete,
		fmt.Sprintf("/v1/references/%s", referenceID), nil)
}

// ReorderReference moves a reference one position up or down.
func (c *Client) ReorderReference(ctx context.Context, referenceID, direction string) (bool, error) {
	return c.mutate(ctx, http.MethodPost,
		fmt.Sprintf("/v1/references/%s/reorder", referenceID),
		server.ReorderRequest{Direction: direction})
}

func (c *Client) mutate(ctx context.Context, method, path string, body any) (bool, error) {
	var resp server.MutationResponse
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
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
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(res.Body).Decode(&apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", method, path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", method, path, res.StatusCode)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(res.Body).Decode(out)
}

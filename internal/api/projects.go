package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/harborview-io/harborview/internal/models"
)

// ListProjects fetches the project list for the authenticated user.
func (c *Client) ListProjects(ctx context.Context) ([]models.Project, *RequestError) {
	raw, reqErr := c.Get(ctx, "project.all", nil)
	if reqErr != nil {
		return nil, reqErr
	}
	projects, ok := decodeProjectList(raw)
	if !ok {
		return nil, newGenericError("malformed project list response")
	}
	return projects, nil
}

// GetProject fetches one project with its environments and services.
func (c *Client) GetProject(ctx context.Context, projectID string) (*models.ProjectDetail, *RequestError) {
	query := url.Values{"projectId": {projectID}}
	raw, reqErr := c.Get(ctx, "project.one", query)
	if reqErr != nil {
		return nil, reqErr
	}
	d := Decode[models.ProjectDetail](raw)
	if d.Malformed {
		return nil, newGenericError("malformed project response")
	}
	return &d.Value, nil
}

// Probe issues the credential-validation call: a read-only project list
// against the candidate endpoint with the candidate token, bypassing the
// stored endpoint and credential. Any authenticated read serves as a
// liveness and authorization check; its failure modes are already fully
// classified here.
func (c *Client) Probe(ctx context.Context, endpoint, token string) *RequestError {
	_, reqErr := c.Do(ctx, RequestOptions{
		Method:   http.MethodGet,
		Path:     "project.all",
		Endpoint: endpoint,
		Token:    token,
		Probe:    true,
	})
	return reqErr
}

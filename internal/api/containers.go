package api

import (
	"context"
	"net/url"

	"github.com/harborview-io/harborview/internal/models"
)

// FindContainers looks up the running containers whose name matches the
// service's application name. The log stream targets one of these.
func (c *Client) FindContainers(ctx context.Context, appName string) ([]models.Container, *RequestError) {
	query := url.Values{"appName": {appName}}
	raw, reqErr := c.Get(ctx, "docker.getContainersByAppNameMatch", query)
	if reqErr != nil {
		return nil, reqErr
	}
	containers, ok := decodeContainerList(raw)
	if !ok {
		return nil, newGenericError("malformed container list response")
	}
	return containers, nil
}

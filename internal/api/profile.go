package api

import (
	"context"

	"github.com/harborview-io/harborview/internal/models"
)

// GetProfile fetches the account record of the authenticated user.
func (c *Client) GetProfile(ctx context.Context) (*models.Profile, *RequestError) {
	raw, reqErr := c.Get(ctx, "auth/me", nil)
	if reqErr != nil {
		return nil, reqErr
	}
	d := Decode[models.Profile](raw)
	if d.Malformed {
		return nil, newGenericError("malformed profile response")
	}
	return &d.Value, nil
}

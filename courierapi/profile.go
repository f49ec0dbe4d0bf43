package courierapi

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

const profilePath = "/api/profile"

func (c *Client) Profile(ctx context.Context, ts TokenSource) (*UserProfile, error) {
	resp, err := c.DoAuthed(ctx, http.MethodGet, profilePath, RequestOptions{}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Profile]")
	}
	var profile UserProfile
	if err := decode(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *Client) UpdateProfile(ctx context.Context, ts TokenSource, req UpdateProfileRequest) (*UserProfile, error) {
	resp, err := c.DoAuthed(ctx, http.MethodPatch, profilePath, RequestOptions{Body: req}, ts)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.UpdateProfile]")
	}
	var profile UserProfile
	if err := decode(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

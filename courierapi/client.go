package courierapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/swiftship/courier-web/internal/config"
)

// TokenSource supplies the bearer token for authorized dispatches.
// Refresh must exchange the current token for a fresh one; a failed
// refresh is terminal for the underlying session.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// StaticTokenSource returns a TokenSource that always yields the given
// token and cannot refresh it.
func StaticTokenSource(rawToken string) TokenSource {
	return staticTokenSource(rawToken)
}

type staticTokenSource string

func (s staticTokenSource) Token(context.Context) (string, error) {
	if s == "" {
		return "", MissingTokenErr
	}
	return string(s), nil
}

func (s staticTokenSource) Refresh(context.Context) (string, error) {
	return "", errors.New("static token source cannot refresh")
}

// RequestOptions carries the caller-controlled parts of a dispatch.
type RequestOptions struct {
	Headers http.Header
	Body    any       // JSON-encoded when non-nil
	RawBody io.Reader // sent as-is, no Content-Type default
	Token   string    // bearer token; empty means unauthenticated
}

// Client dispatches requests to the remote courier API. It is stateless per
// call: the bearer token lives only in the single request's header.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg config.UpstreamConfig) *Client {
	return &Client{
		baseURL:    cfg.GetAPIBaseURL(),
		httpClient: &http.Client{Timeout: cfg.GetAPITimeout()},
	}
}

// Do sends a single request and returns the raw response. Status codes are
// not interpreted here; callers decide what a 401 or 403 means.
//
// Header merge order mirrors the dashboard's fetch wrapper: defaults first,
// then caller headers, then Authorization.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions) (*http.Response, error) {
	var body io.Reader
	jsonBody := false
	switch {
	case opts.Body != nil:
		encoded, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, errors.Wrap(err, "[Client.Do] marshal body")
		}
		body = bytes.NewReader(encoded)
		jsonBody = true
	case opts.RawBody != nil:
		body = opts.RawBody
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] new request")
	}

	req.Header.Set("Accept", "application/json")
	if jsonBody {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range opts.Headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", "Bearer "+opts.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Do] http")
	}
	return resp, nil
}

// DoAuthed dispatches with the token source's current token. On a 401 it
// performs exactly one refresh-and-retry cycle; a second rejection is
// returned as-is. The original dashboard only refreshed proactively on
// expiry, this closes the gap for tokens revoked server-side.
func (c *Client) DoAuthed(ctx context.Context, method, path string, opts RequestOptions, ts TokenSource) (*http.Response, error) {
	accessToken, err := ts.Token(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.DoAuthed] token")
	}
	opts.Token = accessToken

	resp, err := c.Do(ctx, method, path, opts)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	drain(resp)
	refreshed, err := ts.Refresh(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "[Client.DoAuthed] refresh after 401")
	}
	opts.Token = refreshed
	return c.Do(ctx, method, path, opts)
}

// decode reads an enveloped response body into out (which may be nil when
// only the status matters). Non-2xx responses become an *APIError carrying
// the envelope's message when one can be parsed.
func decode(resp *http.Response, out any) error {
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "[decode] read body")
	}

	var env envelope
	parseErr := json.Unmarshal(raw, &env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if parseErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if parseErr != nil || env.Data == nil {
		return MalformedResponseErr
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrap(MalformedResponseErr, err.Error())
	}
	return nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

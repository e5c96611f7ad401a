package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lumen/internal/api"
)

// ErrAPIUnavailable is returned when no client could be built or the daemon
// could not be reached.
var ErrAPIUnavailable = errors.New("lumen API unavailable")

// APIError is a failure envelope returned by the daemon.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api returned status %d", e.Status)
	}
	return fmt.Sprintf("api returned status %d: %s", e.Status, e.Message)
}

// Client issues requests against one daemon.
type Client struct {
	base  *url.URL
	http  *http.Client
	token string
}

// New builds a client for bind, which may be host:port or a full URL.
func New(bind, token string) (*Client, error) {
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return nil, ErrAPIUnavailable
	}
	if !strings.Contains(bind, "://") {
		bind = "http://" + bind
	}
	base, err := url.Parse(bind)
	if err != nil {
		return nil, fmt.Errorf("parse api address: %w", err)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base:  base,
		http:  &http.Client{Timeout: 10 * time.Second},
		token: strings.TrimSpace(token),
	}, nil
}

// Status returns the daemon's liveness string.
func (c *Client) Status(ctx context.Context) (string, error) {
	var resp api.Response
	if err := c.do(ctx, http.MethodGet, "/status", nil, nil, &resp); err != nil {
		return "", err
	}
	value, _ := resp.Data.(string)
	return value, nil
}

// State returns the worker's published snapshot.
func (c *Client) State(ctx context.Context) (api.State, error) {
	var resp api.StateResponse
	if err := c.do(ctx, http.MethodGet, "/state", nil, nil, &resp); err != nil {
		return api.State{}, err
	}
	return resp.Data, nil
}

// Submit enqueues an arbitrary command and returns its id.
func (c *Client) Submit(ctx context.Context, kind string, params map[string]any) (string, error) {
	return c.submit(ctx, http.MethodPost, "/", nil, api.CommandRequest{Kind: kind, Params: params})
}

// SetMode requests a mode change and returns the command id.
func (c *Client) SetMode(ctx context.Context, mode string) (string, error) {
	return c.submit(ctx, http.MethodPost, "/led", nil, api.ModeRequest{Mode: mode})
}

// SetTimer requests a timer entry and returns the command id.
func (c *Client) SetTimer(ctx context.Context, req api.TimerRequest) (string, error) {
	return c.submit(ctx, http.MethodPost, "/timers", nil, req)
}

// ClearTimer requests removal of one timer, or all timers when id is empty.
func (c *Client) ClearTimer(ctx context.Context, id string) (string, error) {
	values := url.Values{}
	if id = strings.TrimSpace(id); id != "" {
		values.Set("id", id)
	}
	return c.submit(ctx, http.MethodDelete, "/timers", values, nil)
}

func (c *Client) submit(ctx context.Context, method, path string, query url.Values, body any) (string, error) {
	var resp api.Response
	if err := c.do(ctx, method, path, query, body, &resp); err != nil {
		return "", err
	}
	id, _ := resp.Data.(string)
	return id, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	if c == nil {
		return ErrAPIUnavailable
	}

	endpoint := c.base.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
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

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		var envelope api.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&envelope) == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// IsAPIUnavailable reports whether err means the daemon could not be reached.
func IsAPIUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.Is(err, ErrAPIUnavailable) || errors.As(err, &opErr)
}

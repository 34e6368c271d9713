// Package api is the REST client for the WorkHub backend. Each resource has
// its own sub-client implementing the matching repository interface.
package api

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

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/alexanderramin/workhub/internal/config"
	"github.com/alexanderramin/workhub/internal/logging"
	"github.com/alexanderramin/workhub/internal/repository"
)

const maxResponseBytes = 8 << 20

// Options configures a Client.
type Options struct {
	BaseURL  string
	Token    string // bearer token; empty sends no Authorization header
	Timeout  time.Duration
	Observer CallObserver
	// Transport overrides the base round tripper, mainly for tests.
	Transport http.RoundTripper
}

type Client struct {
	baseURL  string
	http     *http.Client
	timeout  time.Duration
	observer CallObserver

	Projects  *ProjectsAPI
	Nodes     *NodesAPI
	Users     *UsersAPI
	Companies *CompaniesAPI
	History   *HistoryAPI
}

// New builds a client. The token, when present, is attached by an oauth2
// transport as "Authorization: Bearer <token>".
func New(opts Options) *Client {
	base := opts.Transport
	if base == nil {
		base = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).DialContext,
		}
	}
	var rt http.RoundTripper = base
	if opts.Token != "" {
		rt = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token}),
			Base:   base,
		}
	}
	observer := opts.Observer
	if observer == nil {
		observer = NoopObserver{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL:  strings.TrimRight(opts.BaseURL, "/"),
		http:     &http.Client{Transport: rt},
		timeout:  timeout,
		observer: observer,
	}
	c.Projects = &ProjectsAPI{c: c}
	c.Nodes = &NodesAPI{c: c}
	c.Users = &UsersAPI{c: c}
	c.Companies = &CompaniesAPI{c: c}
	c.History = &HistoryAPI{c: c}
	return c
}

// NewFromConfig builds a client from the api config section.
func NewFromConfig(cfg config.APIConfig, observer CallObserver) *Client {
	return New(Options{
		BaseURL:  cfg.BaseURL,
		Token:    cfg.Token,
		Timeout:  cfg.Timeout(),
		Observer: observer,
	})
}

// Repos exposes the sub-clients as the repository bundle.
func (c *Client) Repos() repository.Repos {
	return repository.Repos{
		Projects:  c.Projects,
		Nodes:     c.Nodes,
		Users:     c.Users,
		Companies: c.Companies,
		History:   c.History,
	}
}

// do performs one JSON call. in is marshaled as the request body when
// non-nil; out receives the (unwrapped) response body when non-nil.
// Calls without a request ID in ctx get a fresh one.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	requestID := logging.RequestID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = logging.WithRequestID(ctx, requestID)
	}

	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, query, in, out)
	c.observer.OnCallComplete(ctx, CallEvent{
		Method:    method,
		Path:      path,
		RequestID: requestID,
		Status:    status,
		Duration:  time.Since(start),
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("marshaling %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", logging.RequestID(ctx))
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, classifyTransportError(ctx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(data),
		}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return resp.StatusCode, nil
	}
	if err := decodeEnvelope(data, out); err != nil {
		return resp.StatusCode, fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func classifyTransportError(ctx context.Context, method, path string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s %s: %w", method, path, ErrTimeout)
	}
	if ctx.Err() != nil {
		return fmt.Errorf("%s %s: %w", method, path, ctx.Err())
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrUnavailable, err)
	}
	return fmt.Errorf("%s %s: %w", method, path, err)
}

// decodeEnvelope accepts both a bare payload and one wrapped as
// {"data": ...}.
func decodeEnvelope(data []byte, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var env map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if inner, ok := env["data"]; ok {
				return json.Unmarshal(inner, out)
			}
		}
	}
	return json.Unmarshal(trimmed, out)
}

// errorMessage extracts the server's "message" (or "error") field. Non-JSON
// bodies are returned as text.
func errorMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
		return ""
	}
	text := strings.TrimSpace(string(data))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}

// Package backend fetches the REST collections the dashboard renders.
//
// The client never decides what a page shows. It returns decoded JSON
// bodies untouched and leaves normalization to internal/core.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"github.com/JonMunkholm/civicdash/internal/config"
	"github.com/JonMunkholm/civicdash/internal/core"
)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if strings.HasPrefix(e.Message, "HTTP ") {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Client talks to the municipal-services REST backend.
type Client struct {
	http          *http.Client
	pageLimit     int
	maxConcurrent int
	logger        *slog.Logger
}

// New creates a client from backend settings.
func New(cfg config.BackendConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := cfg.PageLimit
	if limit <= 0 {
		limit = 100
	}
	workers := cfg.MaxConcurrent
	if workers <= 0 {
		workers = 1
	}
	return &Client{
		http:          &http.Client{Timeout: cfg.Timeout},
		pageLimit:     limit,
		maxConcurrent: workers,
		logger:        logger,
	}
}

// Fetch GETs one resource and decodes its body.
// Numbers decode as json.Number so large ids survive intact.
func (c *Client) Fetch(ctx context.Context, baseURL string, res core.Resource) (any, error) {
	var q url.Values
	if !res.Single {
		q = url.Values{}
		q.Set("skip", "0")
		q.Set("limit", strconv.Itoa(c.pageLimit))
	}
	endpoint, err := joinURL(baseURL, res.Path, q)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", res.Key, err)
	}

	resp, err := c.do(ctx, http.MethodGet, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", res.Key, err)
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("fetch %s: decode response: %w", res.Key, err)
	}
	return body, nil
}

// FetchDataset fetches every resource concurrently. It never fails: a
// resource that cannot be fetched is logged and recorded in Dataset.Errors
// with no value, which the renderer shows as an empty state.
func (c *Client) FetchDataset(ctx context.Context, baseURL string, resources []core.Resource) core.Dataset {
	ds := core.NewDataset()

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(c.maxConcurrent)

	for _, res := range resources {
		g.Go(func() error {
			start := time.Now()
			body, err := c.Fetch(ctx, baseURL, res)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				c.logger.Warn("resource fetch failed",
					"request_id", middleware.GetReqID(ctx),
					"resource", res.Key,
					"error", err,
				)
				ds.Fail(res.Key, err)
				return nil
			}
			c.logger.Debug("resource fetched",
				"resource", res.Key,
				"duration", time.Since(start),
			)
			ds.Set(res.Key, body)
			return nil
		})
	}
	_ = g.Wait()

	ds.FetchedAt = time.Now()
	return ds
}

// Delete issues DELETE {base}{path}.
func (c *Client) Delete(ctx context.Context, baseURL, path string) error {
	endpoint, err := joinURL(baseURL, path, nil)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	resp, err := c.do(ctx, http.MethodDelete, endpoint)
	if err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// Ping checks that the backend answers HEAD {base}/docs with a 2xx.
func (c *Client) Ping(ctx context.Context, baseURL string) error {
	endpoint, err := joinURL(baseURL, "/docs", nil)
	if err != nil {
		return err
	}
	resp, err := c.do(ctx, http.MethodHead, endpoint)
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	resp.Body.Close()
	return nil
}

// do sends a request and converts non-2xx responses to *APIError.
// The caller closes the body of a successful response.
func (c *Client) do(ctx context.Context, method, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID(ctx))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, body),
		}
	}
	return resp, nil
}

// errorMessage extracts detail or message from a JSON error body, falling
// back to the body itself and then to the status line.
func errorMessage(status int, body []byte) string {
	var parsed any
	if err := json.Unmarshal(bytes.TrimSpace(body), &parsed); err != nil || parsed == nil {
		return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}

	if obj, ok := parsed.(map[string]any); ok {
		for _, key := range []string{"detail", "message"} {
			if msg := messageText(obj[key]); msg != "" {
				return msg
			}
		}
	}
	return string(bytes.TrimSpace(body))
}

// messageText renders a detail value. Validation errors arrive as lists.
func messageText(v any) string {
	switch v.(type) {
	case nil:
		return ""
	case map[string]any, []any:
		b, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(b)
	}
	return cast.ToString(v)
}

func requestID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

// joinURL appends path to a validated base URL. Paths with dot segments
// are rejected so a request never leaves the base path.
func joinURL(base, path string, query url.Values) (string, error) {
	if err := config.ValidateBaseURL(base); err != nil {
		return "", err
	}
	for _, seg := range strings.Split(path, "/") {
		if seg, _ = url.PathUnescape(seg); seg == "." || seg == ".." {
			return "", fmt.Errorf("invalid resource path %q", path)
		}
	}
	u, err := url.Parse(config.NormalizeBaseURL(base))
	if err != nil {
		return "", fmt.Errorf("invalid base url: %w", err)
	}
	u = u.JoinPath(strings.TrimPrefix(path, "/"))
	u.RawQuery = query.Encode()
	return u.String(), nil
}

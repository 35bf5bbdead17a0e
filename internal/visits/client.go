package visits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrMalformed means the counter answered but without a usable value.
var ErrMalformed = errors.New("visit counter: malformed response")

// StatusError is a non-2xx answer from the counter (or its relay).
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("visit counter: unexpected status %d", e.Code)
}

// ClientConfig points the client at a counting service.
type ClientConfig struct {
	BaseURL   string        // e.g. https://api.counterapi.dev/v1
	RelayURL  string        // optional pass-through prefix, target is appended query-escaped
	Namespace string
	Key       string
	Timeout   time.Duration
}

// Client talks to a hit/get style counting service. It makes exactly one
// request per call and never retries.
type Client struct {
	cfg  ClientConfig
	http *http.Client
}

func NewClient(cfg ClientConfig, hc *http.Client) *Client {
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{cfg: cfg, http: hc}
}

// Hit increments the counter and returns the new value.
func (c *Client) Hit(ctx context.Context) (int64, error) {
	return c.fetch(ctx, "hit")
}

// Get reads the counter without incrementing it.
func (c *Client) Get(ctx context.Context) (int64, error) {
	return c.fetch(ctx, "get")
}

// TargetURL is the counting service URL for op ("hit" or "get").
func (c *Client) TargetURL(op string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), op,
		url.PathEscape(c.cfg.Namespace), url.PathEscape(c.cfg.Key))
}

// RequestURL is TargetURL routed through the relay when one is configured.
func (c *Client) RequestURL(op string) string {
	target := c.TargetURL(op)
	if c.cfg.RelayURL == "" {
		return target
	}
	return c.cfg.RelayURL + url.QueryEscape(target)
}

func (c *Client) fetch(ctx context.Context, op string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.RequestURL(op), nil)
	if err != nil {
		return 0, fmt.Errorf("building %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("visit counter %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		return 0, &StatusError{Code: resp.StatusCode}
	}

	return decodeValue(io.LimitReader(resp.Body, 64<<10))
}

// decodeValue accepts a JSON object whose "value" field is a non-negative
// integer. Integral floats such as 42.0 are accepted too.
func decodeValue(r io.Reader) (int64, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	raw, ok := body["value"]
	if !ok {
		return 0, fmt.Errorf("%w: missing value", ErrMalformed)
	}
	num, ok := raw.(json.Number)
	if !ok {
		return 0, fmt.Errorf("%w: value is not a number", ErrMalformed)
	}

	if n, err := num.Int64(); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("%w: negative value", ErrMalformed)
		}
		return n, nil
	}
	f, err := num.Float64()
	if err != nil || f < 0 || f != math.Trunc(f) || f > math.MaxInt64 {
		return 0, fmt.Errorf("%w: value %s is not a count", ErrMalformed, num)
	}
	return int64(f), nil
}

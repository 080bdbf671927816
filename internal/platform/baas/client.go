package baas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Client is the REST implementation of Handle.
type Client struct {
	restURL string
	apiKey  string
	token   string
	timeout time.Duration
	http    *http.Client
	logger  zerolog.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient returns a handle for restURL (".../rest/v1") authenticating with
// apiKey. A zero timeout disables the per-request deadline.
func NewClient(restURL, apiKey string, timeout time.Duration, logger zerolog.Logger, opts ...Option) *Client {
	c := &Client{
		restURL: strings.TrimRight(restURL, "/"),
		apiKey:  apiKey,
		token:   apiKey,
		timeout: timeout,
		http:    http.DefaultClient,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) WithAccessToken(token string) Handle {
	scoped := *c
	if token != "" {
		scoped.token = token
	}
	return &scoped
}

func (c *Client) Select(ctx context.Context, table string, q Query, dest interface{}) error {
	return c.do(ctx, http.MethodGet, table, q, nil, dest)
}

func (c *Client) SelectOne(ctx context.Context, table string, q Query, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("baas: SelectOne needs a non-nil pointer, got %T", dest)
	}
	rows := reflect.New(reflect.SliceOf(rv.Elem().Type()))
	if err := c.do(ctx, http.MethodGet, table, q.Limit(1), nil, rows.Interface()); err != nil {
		return err
	}
	if rows.Elem().Len() == 0 {
		return ErrNotFound
	}
	rv.Elem().Set(rows.Elem().Index(0))
	return nil
}

func (c *Client) Insert(ctx context.Context, table string, row interface{}, dest interface{}) error {
	return c.do(ctx, http.MethodPost, table, Query{}, row, dest)
}

func (c *Client) Update(ctx context.Context, table string, q Query, patch interface{}, dest interface{}) error {
	if !q.Filtered() {
		return ErrUnfiltered
	}
	return c.do(ctx, http.MethodPatch, table, q, patch, dest)
}

func (c *Client) Delete(ctx context.Context, table string, q Query) error {
	if !q.Filtered() {
		return ErrUnfiltered
	}
	return c.do(ctx, http.MethodDelete, table, q, nil, nil)
}

// Ping checks that the REST root answers for this key.
func (c *Client) Ping(ctx context.Context) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.restURL+"/", nil)
	if err != nil {
		return fmt.Errorf("baas: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.token)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("baas: ping: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, nil)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, table string, q Query, body, dest interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	endpoint := c.restURL + "/" + table
	if v := q.Values(); len(v) > 0 {
		endpoint += "?" + v.Encode()
	}

	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("baas: encode %s: %w", table, err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("baas: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		if dest != nil {
			req.Header.Set("Prefer", "return=representation")
		} else {
			req.Header.Set("Prefer", "return=minimal")
		}
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("baas: %s %s: %w", method, table, err)
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("table", table).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("baas request")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("baas: read %s: %w", table, err)
	}
	if resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, raw)
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := decodeRows(raw, dest); err != nil {
		return fmt.Errorf("baas: decode %s: %w", table, err)
	}
	return nil
}

// decodeRows decodes a PostgREST array body. A dest that is not a slice
// receives the first row.
func decodeRows(raw []byte, dest interface{}) error {
	rv := reflect.ValueOf(dest)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("dest must be a non-nil pointer, got %T", dest)
	}
	trimmed := bytes.TrimSpace(raw)
	if rv.Elem().Kind() == reflect.Slice || len(trimmed) == 0 || trimmed[0] != '[' {
		return json.Unmarshal(raw, dest)
	}
	rows := reflect.New(reflect.SliceOf(rv.Elem().Type()))
	if err := json.Unmarshal(raw, rows.Interface()); err != nil {
		return err
	}
	if rows.Elem().Len() == 0 {
		return ErrNotFound
	}
	rv.Elem().Set(rows.Elem().Index(0))
	return nil
}

func decodeError(status int, raw []byte) error {
	e := &Error{Status: status}
	if err := json.Unmarshal(raw, e); err != nil || (e.Code == "" && e.Message == "") {
		e.Message = strings.TrimSpace(string(raw))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
	}
	return e
}

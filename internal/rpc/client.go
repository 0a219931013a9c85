package rpc

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2/json2"
	"go.uber.org/zap"

	"solhello/internal/domain"
)

const (
	// DefaultEndpoint is the local test validator.
	DefaultEndpoint = "http://127.0.0.1:8899"

	defaultConfirmTimeout = 60 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
)

// Error is a failed call to a cluster RPC method.
type Error struct {
	Method string
	Err    error
}

func (e *Error) Error() string { return fmt.Sprintf("rpc %s: %v", e.Method, e.Err) }

func (e *Error) Unwrap() error { return e.Err }

// Client talks to a single cluster endpoint.
type Client struct {
	endpoint       string
	http           *http.Client
	log            *zap.Logger
	commitment     domain.Commitment
	confirmTimeout time.Duration
	pollInterval   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option { return func(c *Client) { c.log = l } }

// WithCommitment sets the commitment used for reads and confirmations.
func WithCommitment(cm domain.Commitment) Option { return func(c *Client) { c.commitment = cm } }

// WithConfirmTimeout bounds ConfirmTransaction.
func WithConfirmTimeout(d time.Duration) Option { return func(c *Client) { c.confirmTimeout = d } }

// WithPollInterval sets how often ConfirmTransaction polls.
func WithPollInterval(d time.Duration) Option { return func(c *Client) { c.pollInterval = d } }

// New returns a client for endpoint.
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:       endpoint,
		http:           http.DefaultClient,
		log:            zap.NewNop(),
		commitment:     domain.CommitmentConfirmed,
		confirmTimeout: defaultConfirmTimeout,
		pollInterval:   defaultPollInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL the client sends requests to.
func (c *Client) Endpoint() string { return c.endpoint }

// Commitment returns the commitment used for reads and confirmations.
func (c *Client) Commitment() domain.Commitment { return c.commitment }

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	if params == nil {
		params = []any{}
	}
	body, err := json2.EncodeClientRequest(method, params)
	if err != nil {
		return &Error{Method: method, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &Error{Method: method, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("rpc request failed", zap.String("method", method), zap.Error(err))
		return &Error{Method: method, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug("rpc request",
		zap.String("method", method),
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	if resp.StatusCode/100 != 2 {
		return &Error{Method: method, Err: fmt.Errorf("http %s", resp.Status)}
	}
	if err := json2.DecodeClientResponse(resp.Body, out); err != nil {
		return &Error{Method: method, Err: err}
	}
	return nil
}

var _ domain.ClusterClient = (*Client)(nil)

package fakestore

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/niksmo/catalog/internal/core/port"
	"github.com/niksmo/catalog/pkg/retry"
)

const (
	DefaultEndpoint = "https://fakestoreapi.com/products"
	maxBodySize     = 16 << 20
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

var _ port.ProductsFetcher = (*Client)(nil)

// StatusError reports a non-2xx response. It matches [ErrUnexpectedStatus].
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnexpectedStatus, e.Status)
}

func (e *StatusError) Unwrap() error {
	return ErrUnexpectedStatus
}

// Client fetches the product list from a FakeStore-compatible endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	retryCfg   retry.RetryConfig
}

type Opt func(*clientOpts) error

type clientOpts struct {
	endpoint    string
	timeout     time.Duration
	maxAttempts int
	tlsConfig   *tls.Config
}

func EndpointOpt(endpoint string) Opt {
	return func(o *clientOpts) error {
		u, err := url.Parse(endpoint)
		if err != nil {
			return fmt.Errorf("invalid endpoint: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("invalid endpoint scheme %q", u.Scheme)
		}
		o.endpoint = u.String()
		return nil
	}
}

// TimeoutOpt bounds one attempt. Zero, the default, leaves it unbounded.
func TimeoutOpt(d time.Duration) Opt {
	return func(o *clientOpts) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = d
		return nil
	}
}

// MaxAttemptsOpt sets how many times a failed fetch is attempted.
// The default is a single attempt.
func MaxAttemptsOpt(n int) Opt {
	return func(o *clientOpts) error {
		if n < 1 {
			return errors.New("max attempts must be at least 1")
		}
		o.maxAttempts = n
		return nil
	}
}

func TLSConfigOpt(c *tls.Config) Opt {
	return func(o *clientOpts) error {
		o.tlsConfig = c
		return nil
	}
}

func New(opts ...Opt) (Client, error) {
	const op = "fakestore.New"

	options := clientOpts{
		endpoint:    DefaultEndpoint,
		maxAttempts: 1,
	}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return Client{}, fmt.Errorf("%s: %w", op, err)
		}
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if options.tlsConfig != nil {
		transport.TLSClientConfig = options.tlsConfig
	}

	c := Client{
		endpoint: options.endpoint,
		httpClient: &http.Client{
			Timeout:   options.timeout,
			Transport: transport,
		},
		retryCfg: retry.RetryConfig{
			MaxAttempts: options.maxAttempts,
			Backoff:     retry.ExponentialBackoff(250 * time.Millisecond),
			ShouldRetry: shouldRetry,
		},
	}
	return c, nil
}

func (c Client) Endpoint() string {
	return c.endpoint
}

func (c Client) FetchProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Client.FetchProducts"
	log := slog.With("op", op, "endpoint", c.endpoint)

	retryCfg := c.retryCfg
	retryCfg.OnRetry = func(attempt int, wait time.Duration, err error) {
		log.Warn("fetch attempt failed", "attempt", attempt, "wait", wait, "err", err)
	}

	ps, err := retry.DoWithResult(ctx, retryCfg, func() ([]product, error) {
		return c.fetch(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Debug("products fetched", "nProducts", len(ps))
	return toDomain(ps), nil
}

func (c Client) fetch(ctx context.Context) ([]product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	var ps []product
	err = json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&ps)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON data: %w", err)
	}
	return ps, nil
}

func shouldRetry(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}

package bridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hue-rest-client/internal/domain/codec"
)

const DefaultTimeout = 10 * time.Second

// Client talks to the v1 REST API of one bridge. Requests made through the
// same Client run one at a time, in call order.
type Client struct {
	host          string
	credential    string
	httpClient    *http.Client
	logger        *zerolog.Logger
	validateState bool
	mu            sync.Mutex
}

type Option func(*Client)

// WithTimeout sets the deadline of a whole request, body included. Zero or
// negative means DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d <= 0 {
			d = DefaultTimeout
		}
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient makes the client send through a copy of hc, so its
// transport is shared but later options never modify hc itself. The copy
// keeps hc's timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			cp := *hc
			c.httpClient = &cp
		}
	}
}

// WithLogger fixes the logger. Without it the client logs through the
// global log.Logger as it is at request time.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = &l
	}
}

// WithStateValidation makes SetState check the state against the bridge's
// accepted ranges before sending it.
func WithStateValidation(enabled bool) Option {
	return func(c *Client) {
		c.validateState = enabled
	}
}

// New records the bridge address and credential. It does no I/O.
func New(host, credential string, opts ...Option) *Client {
	c := &Client{
		host:       host,
		credential: credential,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Host() string {
	return c.host
}

// Timeout is the whole-request deadline in effect.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) activeLogger() zerolog.Logger {
	if c.logger != nil {
		return *c.logger
	}
	return log.Logger.With().Str("component", "hue").Logger()
}

func (c *Client) url(path string) string {
	return fmt.Sprintf("http://%s/api/%s%s", c.host, c.credential, path)
}

// Stage names the step of a request that failed.
type Stage string

const (
	StagePath      Stage = "path"
	StageValidate  Stage = "validate"
	StageTransport Stage = "transport"
	StageStatus    Stage = "status"
	StageRead      Stage = "read"
	StageParse     Stage = "parse"
	StageDecode    Stage = "decode"
)

type requestError struct {
	stage Stage
	err   error
}

func (e *requestError) Error() string {
	return fmt.Sprintf("%s: %v", e.stage, e.err)
}

func (e *requestError) Unwrap() error {
	return e.err
}

func fail(stage Stage, err error) error {
	return &requestError{stage: stage, err: err}
}

// Request runs one call against the bridge and decodes the response body.
// Every failure, from connecting to decoding, comes back as (zero, false)
// and is logged at debug level with the stage it happened in.
func Request[T any](ctx context.Context, c *Client, method, path string, body *codec.Value, decode codec.Decoder[T]) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.activeLogger().With().
		Str("request_id", uuid.NewString()).
		Str("method", method).
		Str("path", path).
		Logger()

	var zero T
	raw, err := c.roundTrip(ctx, method, path, body)
	if err == nil {
		var v codec.Value
		if v, err = codec.Parse(raw); err != nil {
			err = fail(StageParse, err)
		} else if result, ok := decode(v); ok {
			logger.Debug().Msg("Bridge request succeeded")
			return result, true
		} else {
			err = fail(StageDecode, fmt.Errorf("unexpected %s response", v.Kind()))
		}
	}

	logFailure(logger, err)
	return zero, false
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body *codec.Value) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fail(StagePath, fmt.Errorf("path %q must start with /", path))
	}

	var reader io.Reader
	if body != nil {
		data, err := body.MarshalJSON()
		if err != nil {
			return nil, fail(StageTransport, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.url(path), reader)
	if err != nil {
		return nil, fail(StageTransport, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fail(StageTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fail(StageStatus, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(StageRead, err)
	}
	return data, nil
}

func logFailure(logger zerolog.Logger, err error) {
	stage := Stage("unknown")
	if re, ok := err.(*requestError); ok {
		stage = re.stage
	}
	logger.Debug().Err(err).Str("stage", string(stage)).Msg("Bridge request failed")
}

func Get[T any](ctx context.Context, c *Client, path string, decode codec.Decoder[T]) (T, bool) {
	return Request(ctx, c, http.MethodGet, path, nil, decode)
}

func Put[T any](ctx context.Context, c *Client, path string, body codec.Value, decode codec.Decoder[T]) (T, bool) {
	return Request(ctx, c, http.MethodPut, path, &body, decode)
}

func Post[T any](ctx context.Context, c *Client, path string, body codec.Value, decode codec.Decoder[T]) (T, bool) {
	return Request(ctx, c, http.MethodPost, path, &body, decode)
}

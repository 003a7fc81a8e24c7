package httpclient

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/relaywire/relay-go/internal/ratelimit"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
	"golang.org/x/xerrors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	// globalRatelimit is the pre-emptive ceiling applied before any bucket
	// is even known, matching the platform's global 50 requests/second
	// cap. It exists to smooth bursts; the per-bucket Bucket below is what
	// actually tracks server-reported remaining/reset state.
	globalRatelimit = 50
	globalBurst     = 50

	headerRatelimitRemaining = "X-RateLimit-Remaining"
	headerRatelimitReset     = "X-RateLimit-Reset-After"
	headerRatelimitBucket    = "X-RateLimit-Bucket"
	headerRetryAfter         = "Retry-After"

	maxRetries = 3
)

// Config configures a Client.
type Config struct {
	BaseURL string
	Token   string

	// HTTPClient, if set, is used instead of http.DefaultClient. Useful
	// for tests that swap in a transport stubbing the server.
	HTTPClient *http.Client

	Logger zerolog.Logger
}

// Client is a REST client over the Route enumeration: it resolves a route
// and its path parameters to a request, honors both the pre-emptive global
// limiter and the server's per-bucket limits, retries a 429 up to
// maxRetries times, and decodes JSON responses via the module's jsoniter
// configuration.
type Client struct {
	cfg    Config
	http   *http.Client
	global *rate.Limiter
	logger zerolog.Logger

	mu      sync.Mutex
	buckets map[string]*ratelimit.Bucket
}

// New constructs a Client from cfg.
func New(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		cfg:     cfg,
		http:    httpClient,
		global:  rate.NewLimiter(rate.Limit(globalRatelimit), globalBurst),
		logger:  cfg.Logger,
		buckets: make(map[string]*ratelimit.Bucket),
	}
}

// bucketFor returns the per-route-bucket limiter for key, creating one
// optimistically sized for a single request if this is the first time key
// has been seen. It is narrowed to the server's real capacity/window once a
// response carries rate-limit headers.
func (c *Client) bucketFor(key string) *ratelimit.Bucket {
	c.mu.Lock()
	defer c.mu.Unlock()

	b, ok := c.buckets[key]
	if !ok {
		b = ratelimit.New(1, time.Second)
		c.buckets[key] = b
	}

	return b
}

// Request is a single REST call, identified by its Route and path
// parameters, with an optional JSON body and audit-log reason.
type Request struct {
	Route  Route
	Params map[string]string
	Body   any
	Reason string
}

// Do sends req and decodes a JSON response body into out (if non-nil),
// retrying on 429 up to maxRetries times and honoring both the pre-emptive
// global limiter and the route's server-tracked bucket.
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	if req.Reason != "" {
		if err := Reason(req.Reason); err != nil {
			return err
		}
	}

	bucketKey := BucketKey(req.Route, req.Params)
	bucket := c.bucketFor(bucketKey)

	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.global.Wait(ctx); err != nil {
			return newError(KindRequest, err)
		}

		if err := bucket.Take(ctx); err != nil {
			return newError(KindRequest, err)
		}

		resp, retryAfter, err := c.doOnce(ctx, req, bucketKey, bucket)
		if err != nil {
			return err
		}

		if resp == nil {
			// A 429 was handled and the caller should retry.
			lastErr = newError(KindRatelimited, xerrors.Errorf("ratelimited, retrying after %s", retryAfter))

			c.logger.Warn().
				Str("bucket", bucketKey).
				Dur("retry_after", retryAfter).
				Int("attempt", attempt).
				Msg("httpclient: rate limited, retrying")

			select {
			case <-time.After(retryAfter):
				continue
			case <-ctx.Done():
				return newError(KindRequest, ctx.Err())
			}
		}

		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			return newStatusError(resp.StatusCode, xerrors.Errorf("%s", string(body)))
		}

		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}

		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return newError(KindDecoding, err)
		}

		return nil
	}

	return lastErr
}

// doOnce sends a single attempt. A nil *http.Response with no error means
// the server returned 429 and bucket/global state has already been
// adjusted; the caller should wait retryAfter and retry.
func (c *Client) doOnce(ctx context.Context, req Request, bucketKey string, bucket *ratelimit.Bucket) (*http.Response, time.Duration, error) {
	var body io.Reader

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, 0, newError(KindRequest, err)
		}

		body = bytes.NewReader(encoded)
	}

	path := Path(req.Route, req.Params)
	httpReq, err := http.NewRequestWithContext(ctx, Method(req.Route), c.cfg.BaseURL+path, body)
	if err != nil {
		return nil, 0, newError(KindRequest, err)
	}

	httpReq.Header.Set("Authorization", c.cfg.Token)

	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if req.Reason != "" {
		httpReq.Header.Set(auditLogReasonHeader, req.Reason)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, 0, newError(KindRequest, err)
	}

	c.adjustBucket(bucket, resp.Header)

	if resp.StatusCode == http.StatusTooManyRequests {
		retryAfter := parseRetryAfter(resp.Header.Get(headerRetryAfter))
		resp.Body.Close()

		// The bucket's assumed capacity was wrong; reset it so the retry
		// below isn't stuck waiting out the stale window on top of
		// retryAfter.
		bucket.Reset()

		return nil, retryAfter, nil
	}

	return resp, 0, nil
}

// adjustBucket narrows bucket's window to match the server's reported
// remaining/reset-after pair, so subsequent requests against the same
// bucket key stop guessing and start tracking the server's actual state.
func (c *Client) adjustBucket(bucket *ratelimit.Bucket, header http.Header) {
	resetAfter := header.Get(headerRatelimitReset)
	if resetAfter == "" {
		return
	}

	seconds, err := strconv.ParseFloat(resetAfter, 64)
	if err != nil {
		return
	}

	remaining := bucket.Remaining()
	if v := header.Get(headerRatelimitRemaining); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			remaining = parsed
		}
	}

	capacity := remaining + 1
	if capacity < 1 {
		capacity = 1
	}

	bucket.SetWindow(capacity, time.Duration(seconds*float64(time.Second)))
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return time.Second
	}

	if seconds, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(seconds * float64(time.Second))
	}

	return time.Second
}

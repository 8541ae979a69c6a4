package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/lametric/logger"
	"github.com/kbukum/lametric/observability"
)

// Adapter executes device calls. It is safe for concurrent use; every
// call is independent and dispatched exactly once.
type Adapter struct {
	httpClient *http.Client
	config     Config
	log        *logger.Logger
	inst       *observability.Instruments
}

// New creates a new request executor with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.Headers = canonicalHeaders(cfg.Headers)

	transport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.TLS != nil {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, err
		}
		if tlsCfg != nil {
			transport.TLSClientConfig = tlsCfg
		}
	}

	a := &Adapter{
		httpClient: &http.Client{
			Transport:     transport,
			Timeout:       cfg.Timeout,
			CheckRedirect: checkRedirect,
		},
		config: cfg,
		log:    logger.Nop(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a, nil
}

// checkRedirect follows redirects for GET only. Any other method gets the
// 3xx response back so it is reported as a status error instead of being
// replayed as a GET against the redirect target.
func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) > 0 && via[0].Method != http.MethodGet {
		return http.ErrUseLastResponse
	}
	if len(via) >= 10 {
		return errors.New("stopped after 10 redirects")
	}
	return nil
}

// Endpoint returns the full URL for path. A single leading slash is
// dropped so "apps" and "/apps" resolve to the same URL.
func (a *Adapter) Endpoint(path string) string {
	return a.config.BaseURL + "/api/" + a.config.APIVersion + "/" + strings.TrimPrefix(path, "/")
}

// Headers returns the headers sent with every request, credential included.
func (a *Adapter) Headers() map[string]string {
	out := make(map[string]string, len(a.config.Headers)+1)
	for k, v := range a.config.Headers {
		out[k] = v
	}
	if v := a.config.Auth.HeaderValue(); v != "" {
		out[HeaderAuthorization] = v
	}
	return out
}

// Prepare validates a call and encodes its parameters without sending it.
// All usage errors surface here.
func (a *Adapter) Prepare(method, path string, params any) (*Request, error) {
	m, err := NormalizeMethod(method)
	if err != nil {
		return nil, err
	}

	endpoint := a.Endpoint(path)
	if _, err := url.Parse(endpoint); err != nil {
		return nil, NewUsageError(fmt.Sprintf("invalid endpoint: %v", err))
	}

	req := &Request{Method: m, Endpoint: endpoint}
	if m == http.MethodGet {
		req.Query, err = EncodeQuery(params)
	} else {
		req.Body, err = EncodeBody(params)
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Execute prepares and dispatches a call, returning the decoded JSON body.
func (a *Adapter) Execute(ctx context.Context, method, path string, params any) (any, error) {
	req, err := a.Prepare(method, path, params)
	if err != nil {
		return nil, err
	}
	return a.Dispatch(ctx, req)
}

// Dispatch sends a prepared call and normalizes the response.
func (a *Adapter) Dispatch(ctx context.Context, req *Request) (any, error) {
	requestID := uuid.NewString()
	fields := logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, req.Method,
		logger.FieldEndpoint, req.Endpoint,
	)
	a.log.Debug("dispatching device request", fields)

	var call *observability.Call
	if a.inst != nil {
		ctx, call = a.inst.Start(ctx, req.Method, req.Endpoint, requestID)
	}

	start := time.Now()
	statusCode, value, err := a.roundTrip(ctx, req)
	outcome := Outcome(err)

	if call != nil {
		call.End(statusCode, outcome, err)
	}

	done := logger.MergeWithDuration(logger.Fields(
		logger.FieldRequestID, requestID,
		logger.FieldMethod, req.Method,
		logger.FieldEndpoint, req.Endpoint,
		logger.FieldStatusCode, statusCode,
		logger.FieldOutcome, outcome,
	), time.Since(start))
	a.log.Debug("device request completed", done)

	return value, err
}

// Outcome returns the metric label for a call result.
func Outcome(err error) string {
	if err == nil {
		return observability.OutcomeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	return "unknown"
}

func (a *Adapter) roundTrip(ctx context.Context, req *Request) (int, any, error) {
	httpReq, err := a.buildRequest(ctx, req)
	if err != nil {
		return 0, nil, err
	}

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil || isNetTimeout(err) {
			return 0, nil, NewTimeoutError(err)
		}
		return 0, nil, NewTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, NewTransportError(fmt.Errorf("read response body: %w", err))
	}

	value, err := Normalize(resp.StatusCode, statusText(resp), body)
	return resp.StatusCode, value, err
}

// buildRequest constructs an *http.Request. Configured headers go first
// and the credential last.
func (a *Adapter) buildRequest(ctx context.Context, req *Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL(), body)
	if err != nil {
		return nil, NewUsageError(fmt.Sprintf("create request: %v", err))
	}

	for k, v := range a.config.Headers {
		httpReq.Header.Set(k, v)
	}
	a.config.Auth.apply(httpReq)

	return httpReq, nil
}

// Unwrap returns the underlying *http.Client for advanced use cases.
func (a *Adapter) Unwrap() *http.Client {
	return a.httpClient
}

// Close releases idle connections held by the adapter.
func (a *Adapter) Close(_ context.Context) error {
	a.httpClient.CloseIdleConnections()
	return nil
}

// GetConfig returns the adapter's configuration.
func (a *Adapter) GetConfig() Config {
	return a.config
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

func isNetTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func canonicalHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		out[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	return out
}

package lametric

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kbukum/lametric/config"
	"github.com/kbukum/lametric/httpclient"
	"github.com/kbukum/lametric/logger"
	"github.com/kbukum/lametric/observability"
)

// Client talks to one device. Its configuration is fixed at construction;
// all methods are safe for concurrent use.
type Client struct {
	cfg     config.ClientConfig
	adapter *httpclient.Adapter
	log     *logger.Logger
}

// New creates a client from the defaults overlaid with opts. Construction
// does not validate the configuration; a missing base URL surfaces as a
// transport error on the first call.
func New(opts ...Option) (*Client, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	cfg := config.Merge(config.Defaults(), o.cfg)

	log := o.log
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("lametric")

	inst, err := observability.NewInstruments(o.tracer, o.meter)
	if err != nil {
		return nil, fmt.Errorf("lametric: %w", err)
	}

	adapterOpts := []httpclient.Option{
		httpclient.WithLogger(log),
		httpclient.WithInstruments(inst),
	}
	if o.httpClient != nil {
		adapterOpts = append(adapterOpts, httpclient.WithHTTPClient(o.httpClient))
	}

	adapter, err := httpclient.New(httpclient.Config{
		BaseURL:    cfg.BaseURL,
		APIVersion: cfg.APIVersion,
		Timeout:    cfg.RequestOptions.Timeout,
		Auth:       httpclient.EncodedBasicAuth(cfg.BasicAuthorization),
		TLS:        cfg.RequestOptions.TLS,
		Headers:    cfg.RequestOptions.Headers,
	}, adapterOpts...)
	if err != nil {
		return nil, fmt.Errorf("lametric: %w", err)
	}

	return &Client{cfg: cfg, adapter: adapter, log: log}, nil
}

// NewFromSettings creates a client from loaded settings. The settings
// logger is used unless opts supply one.
func NewFromSettings(s *config.Settings, opts ...Option) (*Client, error) {
	if s == nil {
		return New(opts...)
	}
	base := []Option{
		WithConfig(s.ClientConfig),
		WithLogger(logger.New(&s.Logging, "lametric")),
	}
	return New(append(base, opts...)...)
}

// Config returns a copy of the effective configuration.
func (c *Client) Config() config.ClientConfig {
	return c.cfg.Clone()
}

// Endpoint returns the full URL for path.
func (c *Client) Endpoint(path string) string {
	return c.adapter.Endpoint(path)
}

// Headers returns the headers sent with every request.
func (c *Client) Headers() map[string]string {
	return c.adapter.Headers()
}

// Do performs one call. GET params become the query string; other
// methods send params as a JSON body.
func (c *Client) Do(ctx context.Context, method, path string, params any) (any, error) {
	return c.adapter.Execute(ctx, method, path, params)
}

// Get performs a GET call.
func (c *Client) Get(ctx context.Context, path string, params any) (any, error) {
	return c.Do(ctx, http.MethodGet, path, params)
}

// Post performs a POST call.
func (c *Client) Post(ctx context.Context, path string, params any) (any, error) {
	return c.Do(ctx, http.MethodPost, path, params)
}

// Put performs a PUT call.
func (c *Client) Put(ctx context.Context, path string, params any) (any, error) {
	return c.Do(ctx, http.MethodPut, path, params)
}

// Delete performs a DELETE call.
func (c *Client) Delete(ctx context.Context, path string, params any) (any, error) {
	return c.Do(ctx, http.MethodDelete, path, params)
}

// Close releases idle connections.
func (c *Client) Close(ctx context.Context) error {
	return c.adapter.Close(ctx)
}

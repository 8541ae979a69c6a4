package lametric

import (
	"net/http"
	"net/textproto"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/lametric/config"
	"github.com/kbukum/lametric/logger"
	"github.com/kbukum/lametric/security"
)

// Option configures a Client.
type Option func(*options)

type options struct {
	cfg        config.ClientConfig
	log        *logger.Logger
	tracer     trace.TracerProvider
	meter      metric.MeterProvider
	httpClient *http.Client
}

// WithConfig merges cfg over the options collected so far. Non-empty
// fields win; header maps merge key by key.
func WithConfig(cfg config.ClientConfig) Option {
	return func(o *options) {
		o.cfg = config.Merge(o.cfg, cfg)
	}
}

// WithBaseURL sets the device origin, e.g. "http://192.168.1.40:8080".
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.cfg.BaseURL = baseURL
	}
}

// WithAPIKey sets the credential from the raw device API key.
func WithAPIKey(key string) Option {
	return func(o *options) {
		o.cfg.BasicAuthorization = config.EncodeCredentials(config.DeviceUser, key)
	}
}

// WithBasicAuthorization sets an already base64 encoded credential.
func WithBasicAuthorization(credential string) Option {
	return func(o *options) {
		o.cfg.BasicAuthorization = credential
	}
}

// WithAPIVersion sets the path segment after /api/.
func WithAPIVersion(version string) Option {
	return func(o *options) {
		o.cfg.APIVersion = version
	}
}

// WithHeader adds or replaces a header sent with every request.
func WithHeader(key, value string) Option {
	return func(o *options) {
		if o.cfg.RequestOptions.Headers == nil {
			o.cfg.RequestOptions.Headers = make(map[string]string)
		}
		o.cfg.RequestOptions.Headers[textproto.CanonicalMIMEHeaderKey(key)] = value
	}
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.cfg.RequestOptions.Timeout = d
	}
}

// WithTLS configures the HTTPS transport.
func WithTLS(tls *security.TLSConfig) Option {
	return func(o *options) {
		o.cfg.RequestOptions.TLS = tls
	}
}

// WithLogger sets the logger. Calls are only logged at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global one.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracer = tp
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global one.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meter = mp
	}
}

// WithHTTPClient replaces the HTTP client used for every call.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

package httpclient

import (
	"net/http"

	"github.com/kbukum/lametric/logger"
	"github.com/kbukum/lametric/observability"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for debug tracing of calls.
func WithLogger(log *logger.Logger) Option {
	return func(a *Adapter) {
		if log != nil {
			a.log = log
		}
	}
}

// WithInstruments enables spans and metrics for every call.
func WithInstruments(inst *observability.Instruments) Option {
	return func(a *Adapter) {
		a.inst = inst
	}
}

// WithHTTPClient replaces the underlying HTTP client. The configured
// timeout and TLS settings are not applied to it.
func WithHTTPClient(hc *http.Client) Option {
	return func(a *Adapter) {
		if hc != nil {
			a.httpClient = hc
		}
	}
}

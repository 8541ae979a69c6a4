package config

import (
	"encoding/base64"
	"net/textproto"
	"time"

	"github.com/kbukum/lametric/security"
	"github.com/kbukum/lametric/validation"
	"github.com/kbukum/lametric/version"
)

const (
	// DefaultAPIVersion is the device API version used when none is configured.
	DefaultAPIVersion = "v2"

	// DeviceUser is the fixed basic-auth user name of the device API.
	DeviceUser = "dev"
)

// ClientConfig is the configuration of one client instance.
type ClientConfig struct {
	// BaseURL is the device origin, e.g. "http://192.168.1.40:8080".
	BaseURL string `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,http_url"`

	// BasicAuthorization is a pre-encoded base64 "user:key" credential.
	BasicAuthorization string `yaml:"basic_authorization" mapstructure:"basic_authorization"`

	// APIVersion is the path segment after /api/. Defaults to v2.
	APIVersion string `yaml:"api_version" mapstructure:"api_version" validate:"required,api_version"`

	// RequestOptions are applied to every request made by the client.
	RequestOptions RequestOptions `yaml:"request_options" mapstructure:"request_options"`
}

// RequestOptions hold per-client HTTP defaults.
type RequestOptions struct {
	// Headers are sent with every request. Keys are canonicalized on merge.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`

	// Timeout bounds each request. Zero uses the executor default of 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// TLS configures the HTTPS transport.
	TLS *security.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// DefaultHeaders returns the headers every client starts from.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":       "*/*",
		"Connection":   "close",
		"Content-Type": "application/json",
		"User-Agent":   version.UserAgent(),
	}
}

// Defaults returns a fresh default configuration.
func Defaults() ClientConfig {
	return ClientConfig{
		APIVersion: DefaultAPIVersion,
		RequestOptions: RequestOptions{
			Headers: DefaultHeaders(),
		},
	}
}

// Merge returns base overlaid with override. Non-empty scalars in override
// win; header maps and TLS settings merge key by key. Neither input is
// modified.
func Merge(base, override ClientConfig) ClientConfig {
	out := base.Clone()

	if override.BaseURL != "" {
		out.BaseURL = override.BaseURL
	}
	if override.BasicAuthorization != "" {
		out.BasicAuthorization = override.BasicAuthorization
	}
	if override.APIVersion != "" {
		out.APIVersion = override.APIVersion
	}

	out.RequestOptions.Headers = mergeHeaders(out.RequestOptions.Headers, override.RequestOptions.Headers)
	if override.RequestOptions.Timeout > 0 {
		out.RequestOptions.Timeout = override.RequestOptions.Timeout
	}
	out.RequestOptions.TLS = mergeTLS(out.RequestOptions.TLS, override.RequestOptions.TLS)

	return out
}

// Clone returns a deep copy.
func (c ClientConfig) Clone() ClientConfig {
	out := c
	out.RequestOptions.Headers = mergeHeaders(nil, c.RequestOptions.Headers)
	if c.RequestOptions.TLS != nil {
		tls := *c.RequestOptions.TLS
		out.RequestOptions.TLS = &tls
	}
	return out
}

// Validate checks the configuration. Construction never validates;
// Load does.
func (c ClientConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.RequestOptions.TLS.Validate()
}

// EncodeCredentials returns the base64 basic credential for user and key.
func EncodeCredentials(user, key string) string {
	return base64.StdEncoding.EncodeToString([]byte(user + ":" + key))
}

func mergeHeaders(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for k, v := range base {
		out[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	for k, v := range override {
		out[textproto.CanonicalMIMEHeaderKey(k)] = v
	}
	return out
}

func mergeTLS(base, override *security.TLSConfig) *security.TLSConfig {
	if override == nil {
		return base
	}
	if base == nil {
		tls := *override
		return &tls
	}
	out := *base
	if override.SkipVerify {
		out.SkipVerify = true
	}
	if override.CAFile != "" {
		out.CAFile = override.CAFile
	}
	if override.CAPEM != "" {
		out.CAPEM = override.CAPEM
	}
	if override.ServerName != "" {
		out.ServerName = override.ServerName
	}
	if override.MinVersion != 0 {
		out.MinVersion = override.MinVersion
	}
	return &out
}


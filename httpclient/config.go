package httpclient

import (
	"fmt"
	"time"

	"github.com/kbukum/lametric/security"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultAPIVersion = "v2"
)

// TLSConfig is an alias for the shared security TLS configuration.
type TLSConfig = security.TLSConfig

// Config configures the request executor.
type Config struct {
	// BaseURL is the device origin prepended to every endpoint.
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// APIVersion is the path segment after /api/. Defaults to v2.
	APIVersion string `yaml:"api_version" mapstructure:"api_version"`

	// Timeout is the request timeout. Defaults to 30s.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Auth configures the credential applied to all requests.
	Auth *AuthConfig `yaml:"-" mapstructure:"-"`

	// TLS configures TLS settings for the HTTP transport.
	TLS *TLSConfig `yaml:"tls" mapstructure:"tls"`

	// Headers are applied to all requests before authentication.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.APIVersion == "" {
		c.APIVersion = defaultAPIVersion
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("httpclient: timeout must be positive")
	}
	if c.TLS != nil {
		if err := c.TLS.Validate(); err != nil {
			return err
		}
	}
	return nil
}

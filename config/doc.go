// Package config defines the LaMetric client configuration and how it is
// merged over built-in defaults.
//
// The effective configuration of a client is computed once, at construction,
// by merging caller values over Defaults(). Scalars are right-biased; request
// headers merge key by key so overriding one header keeps the others:
//
//	cfg := config.Merge(config.Defaults(), config.ClientConfig{
//	    BaseURL:            "http://192.168.1.40:8080",
//	    BasicAuthorization: config.EncodeCredentials(config.DeviceUser, apiKey),
//	    RequestOptions: config.RequestOptions{
//	        Headers: map[string]string{"User-Agent": "my-dashboard"},
//	    },
//	})
//
// Load reads the same structure from a YAML file, a .env file, and
// LAMETRIC_* environment variables.
package config

// Package security builds the TLS settings used to reach a device's HTTPS
// endpoint.
//
// LaMetric devices serve their local API over HTTPS with a self-signed
// certificate, so callers either pin the device certificate or skip
// verification:
//
//	cfg := security.TLSConfig{CAFile: "/etc/lametric/device.pem"}
//	tlsConfig, err := cfg.Build()
package security

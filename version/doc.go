// Package version reports the library version used in the default
// User-Agent header sent to the device.
//
// Version can be overridden at link time:
//
//	go build -ldflags "-X github.com/kbukum/lametric/version.Version=1.3.0"
package version

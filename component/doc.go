// Package component defines the lifecycle and health contract shared by
// long-lived clients, so a host application can start, stop and probe
// them uniformly.
package component

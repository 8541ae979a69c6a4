package lametric

import (
	"context"

	"github.com/kbukum/lametric/component"
	"github.com/kbukum/lametric/httpclient"
)

// ComponentName is the name the client registers under.
const ComponentName = "lametric"

var (
	_ component.Component   = (*Client)(nil)
	_ component.Describable = (*Client)(nil)
)

// Name implements component.Component.
func (c *Client) Name() string {
	return ComponentName
}

// Start checks that the device answers the API version probe.
func (c *Client) Start(ctx context.Context) error {
	_, err := c.GetAPIVersion(ctx)
	return err
}

// Stop releases idle connections.
func (c *Client) Stop(ctx context.Context) error {
	return c.Close(ctx)
}

// Health probes the API version endpoint. A device that answers with an
// error (for example a rejected key) is degraded; one that cannot be
// reached or answers garbage is unhealthy.
func (c *Client) Health(ctx context.Context) component.Health {
	h := component.Health{Name: ComponentName, Status: component.StatusHealthy}

	_, err := c.GetAPIVersion(ctx)
	switch {
	case err == nil:
	case httpclient.IsApplication(err), httpclient.IsStatus(err):
		h.Status = component.StatusDegraded
		h.Message = err.Error()
	default:
		h.Status = component.StatusUnhealthy
		h.Message = err.Error()
	}
	return h
}

// Describe implements component.Describable.
func (c *Client) Describe() component.Description {
	return component.Description{
		Name:    "LaMetric device",
		Type:    "lametric",
		Details: c.Endpoint(""),
	}
}

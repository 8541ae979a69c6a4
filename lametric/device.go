package lametric

import (
	"context"
	"net/url"
	"strings"
)

// DefaultBluetoothName is the name sent by UpdateBluetoothState when none
// is given.
const DefaultBluetoothName = "lametric-local"

// GetAPIVersion returns the API description served at the version root.
func (c *Client) GetAPIVersion(ctx context.Context) (any, error) {
	return c.Get(ctx, "", nil)
}

// GetDeviceState returns the device state, limited to fields when given.
func (c *Client) GetDeviceState(ctx context.Context, fields ...string) (any, error) {
	params := map[string]string{}
	if len(fields) > 0 {
		params["fields"] = strings.Join(fields, ",")
	}
	return c.Get(ctx, "device", params)
}

// GetApps lists installed apps.
func (c *Client) GetApps(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/apps", nil)
}

// GetApp returns one installed app.
func (c *Client) GetApp(ctx context.Context, appPackage string) (any, error) {
	return c.Get(ctx, "device/apps/"+url.PathEscape(appPackage), nil)
}

// SwitchToNextApp shows the next app.
func (c *Client) SwitchToNextApp(ctx context.Context) (any, error) {
	return c.Put(ctx, "device/apps/next", nil)
}

// SwitchToPreviousApp shows the previous app.
func (c *Client) SwitchToPreviousApp(ctx context.Context) (any, error) {
	return c.Put(ctx, "device/apps/prev", nil)
}

// ActivateWidget brings a widget to the front.
func (c *Client) ActivateWidget(ctx context.Context, appPackage, widgetID string) (any, error) {
	return c.Put(ctx, widgetPath(appPackage, widgetID)+"/activate", nil)
}

// InteractWithWidget sends an action to a running widget. Nil params are
// sent as an empty object.
func (c *Client) InteractWithWidget(ctx context.Context, appPackage, widgetID, actionID string, params map[string]any) (any, error) {
	if params == nil {
		params = map[string]any{}
	}
	return c.Post(ctx, widgetPath(appPackage, widgetID)+"/actions", map[string]any{
		"id":     actionID,
		"params": params,
	})
}

// GetNotificationQueue lists queued notifications.
func (c *Client) GetNotificationQueue(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/notifications", nil)
}

// PushNotification queues a notification. model is usually a Model but
// any JSON encodable value is sent as is.
func (c *Client) PushNotification(ctx context.Context, model any, opts NotificationOptions) (any, error) {
	return c.Post(ctx, "device/notifications", opts.params(model))
}

// CancelNotification removes a queued or dismisses a shown notification.
func (c *Client) CancelNotification(ctx context.Context, id string) (any, error) {
	return c.Delete(ctx, "device/notifications/"+url.PathEscape(id), nil)
}

// GetDisplayState returns the display settings.
func (c *Client) GetDisplayState(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/display", nil)
}

// DisplayUpdate holds the display settings to change. Zero values are not
// sent.
type DisplayUpdate struct {
	Brightness     int
	BrightnessMode string
	Screensaver    any
}

func (u DisplayUpdate) params() map[string]any {
	params := map[string]any{}
	if u.Brightness != 0 {
		params["brightness"] = u.Brightness
	}
	if u.BrightnessMode != "" {
		params["brightness_mode"] = u.BrightnessMode
	}
	if u.Screensaver != nil {
		params["screensaver"] = u.Screensaver
	}
	return params
}

// UpdateDisplayState changes the display settings.
func (c *Client) UpdateDisplayState(ctx context.Context, update DisplayUpdate) (any, error) {
	return c.Put(ctx, "device/display", update.params())
}

// GetAudioState returns the audio settings.
func (c *Client) GetAudioState(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/audio", nil)
}

// UpdateAudioState sets the volume. Zero is sent, muting the device.
func (c *Client) UpdateAudioState(ctx context.Context, volume int) (any, error) {
	return c.Put(ctx, "device/audio", map[string]any{"volume": volume})
}

// GetBluetoothState returns the bluetooth settings.
func (c *Client) GetBluetoothState(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/bluetooth", nil)
}

// UpdateBluetoothState turns bluetooth on or off and sets its name.
func (c *Client) UpdateBluetoothState(ctx context.Context, active bool, name string) (any, error) {
	if name == "" {
		name = DefaultBluetoothName
	}
	return c.Put(ctx, "device/bluetooth", map[string]any{
		"active": active,
		"name":   name,
	})
}

// GetWifiState returns the wifi settings.
func (c *Client) GetWifiState(ctx context.Context) (any, error) {
	return c.Get(ctx, "device/wifi", nil)
}

func widgetPath(appPackage, widgetID string) string {
	return "device/apps/" + url.PathEscape(appPackage) + "/widgets/" + url.PathEscape(widgetID)
}

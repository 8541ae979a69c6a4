package lametric

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/kbukum/lametric/httpclient"
)

const (
	clockWidget = "08b8eac21074f8f7e5a29f2855ba8060"
	radioWidget = "589ed1b3fcdaa5180bf4848e55ba8061"
)

func TestDeviceEndpoints(t *testing.T) {
	c, dev := newDeviceClient(t)

	model := Model{Frames: []Frame{TextFrame("i120", "hello")}}

	// Cases share one device and run in order: the notification pushed
	// first receives id "1" and is cancelled later.
	tests := []struct {
		name   string
		call   func(ctx context.Context) (any, error)
		method string
		path   string
		query  url.Values
		body   string
	}{
		{
			name:   "api version",
			call:   c.GetAPIVersion,
			method: http.MethodGet,
			path:   "/api/v2/",
		},
		{
			name:   "device state",
			call:   func(ctx context.Context) (any, error) { return c.GetDeviceState(ctx) },
			method: http.MethodGet,
			path:   "/api/v2/device",
		},
		{
			name:   "device state fields",
			call:   func(ctx context.Context) (any, error) { return c.GetDeviceState(ctx, "display", "audio") },
			method: http.MethodGet,
			path:   "/api/v2/device",
			query:  url.Values{"fields": {"display,audio"}},
		},
		{
			name:   "apps",
			call:   c.GetApps,
			method: http.MethodGet,
			path:   "/api/v2/device/apps",
		},
		{
			name:   "app",
			call:   func(ctx context.Context) (any, error) { return c.GetApp(ctx, "com.lametric.clock") },
			method: http.MethodGet,
			path:   "/api/v2/device/apps/com.lametric.clock",
		},
		{
			name:   "next app",
			call:   c.SwitchToNextApp,
			method: http.MethodPut,
			path:   "/api/v2/device/apps/next",
		},
		{
			name:   "previous app",
			call:   c.SwitchToPreviousApp,
			method: http.MethodPut,
			path:   "/api/v2/device/apps/prev",
		},
		{
			name: "activate widget",
			call: func(ctx context.Context) (any, error) {
				return c.ActivateWidget(ctx, "com.lametric.radio", radioWidget)
			},
			method: http.MethodPut,
			path:   "/api/v2/device/apps/com.lametric.radio/widgets/" + radioWidget + "/activate",
		},
		{
			name: "widget action without params",
			call: func(ctx context.Context) (any, error) {
				return c.InteractWithWidget(ctx, "com.lametric.clock", clockWidget, "clock.alarm", nil)
			},
			method: http.MethodPost,
			path:   "/api/v2/device/apps/com.lametric.clock/widgets/" + clockWidget + "/actions",
			body:   `{"id":"clock.alarm","params":{}}`,
		},
		{
			name: "widget action with params",
			call: func(ctx context.Context) (any, error) {
				return c.InteractWithWidget(ctx, "com.lametric.clock", clockWidget, "clock.alarm", map[string]any{"enabled": true})
			},
			method: http.MethodPost,
			path:   "/api/v2/device/apps/com.lametric.clock/widgets/" + clockWidget + "/actions",
			body:   `{"id":"clock.alarm","params":{"enabled":true}}`,
		},
		{
			name: "push notification",
			call: func(ctx context.Context) (any, error) {
				return c.PushNotification(ctx, model, NotificationOptions{
					Priority: PriorityCritical,
					IconType: IconTypeAlert,
					Lifetime: 5 * time.Second,
				})
			},
			method: http.MethodPost,
			path:   "/api/v2/device/notifications",
			body:   `{"model":{"frames":[{"icon":"i120","text":"hello"}]},"priority":"critical","icon_type":"alert","lifetime":5000}`,
		},
		{
			name:   "notification queue",
			call:   c.GetNotificationQueue,
			method: http.MethodGet,
			path:   "/api/v2/device/notifications",
		},
		{
			name:   "cancel notification",
			call:   func(ctx context.Context) (any, error) { return c.CancelNotification(ctx, "1") },
			method: http.MethodDelete,
			path:   "/api/v2/device/notifications/1",
		},
		{
			name:   "display state",
			call:   c.GetDisplayState,
			method: http.MethodGet,
			path:   "/api/v2/device/display",
		},
		{
			name: "update display",
			call: func(ctx context.Context) (any, error) {
				return c.UpdateDisplayState(ctx, DisplayUpdate{Brightness: 50, BrightnessMode: "manual"})
			},
			method: http.MethodPut,
			path:   "/api/v2/device/display",
			body:   `{"brightness":50,"brightness_mode":"manual"}`,
		},
		{
			name:   "audio state",
			call:   c.GetAudioState,
			method: http.MethodGet,
			path:   "/api/v2/device/audio",
		},
		{
			name:   "mute",
			call:   func(ctx context.Context) (any, error) { return c.UpdateAudioState(ctx, 0) },
			method: http.MethodPut,
			path:   "/api/v2/device/audio",
			body:   `{"volume":0}`,
		},
		{
			name:   "bluetooth state",
			call:   c.GetBluetoothState,
			method: http.MethodGet,
			path:   "/api/v2/device/bluetooth",
		},
		{
			name:   "bluetooth default name",
			call:   func(ctx context.Context) (any, error) { return c.UpdateBluetoothState(ctx, true, "") },
			method: http.MethodPut,
			path:   "/api/v2/device/bluetooth",
			body:   `{"active":true,"name":"lametric-local"}`,
		},
		{
			name:   "bluetooth off",
			call:   func(ctx context.Context) (any, error) { return c.UpdateBluetoothState(ctx, false, "desk") },
			method: http.MethodPut,
			path:   "/api/v2/device/bluetooth",
			body:   `{"active":false,"name":"desk"}`,
		},
		{
			name:   "wifi state",
			call:   c.GetWifiState,
			method: http.MethodGet,
			path:   "/api/v2/device/wifi",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.call(context.Background()); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			r, ok := dev.LastRequest()
			if !ok {
				t.Fatal("no request recorded")
			}
			if r.Method != tt.method {
				t.Errorf("method = %s, want %s", r.Method, tt.method)
			}
			if r.Path != tt.path {
				t.Errorf("path = %s, want %s", r.Path, tt.path)
			}

			gotQuery, _ := url.ParseQuery(r.RawQuery)
			if len(tt.query) == 0 {
				if r.RawQuery != "" {
					t.Errorf("unexpected query %q", r.RawQuery)
				}
			} else if !reflect.DeepEqual(gotQuery, tt.query) {
				t.Errorf("query = %v, want %v", gotQuery, tt.query)
			}

			if tt.body == "" {
				if len(r.Body) != 0 {
					t.Errorf("unexpected body %s", r.Body)
				}
				return
			}
			assertJSONEqual(t, r.Body, tt.body)
		})
	}

	s := dev.State()
	if s.Display.Brightness != 50 || s.Audio.Volume != 0 || s.Bluetooth.Name != "desk" {
		t.Errorf("device state not updated: %+v", s)
	}
	if len(s.Queue) != 0 {
		t.Errorf("notification should have been cancelled: %+v", s.Queue)
	}
	if len(s.Actions) != 2 {
		t.Errorf("expected 2 widget actions, got %d", len(s.Actions))
	}
}

func TestDeviceState_FieldsFilterResponse(t *testing.T) {
	c, _ := newDeviceClient(t)

	got, err := c.GetDeviceState(context.Background(), "wifi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := got.(map[string]any)
	if len(m) != 1 || m["wifi"] == nil {
		t.Errorf("got %v", m)
	}
}

func TestDeviceErrors(t *testing.T) {
	c, _ := newDeviceClient(t)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() (any, error)
	}{
		{"unknown app", func() (any, error) { return c.GetApp(ctx, "com.example.none") }},
		{"unknown notification", func() (any, error) { return c.CancelNotification(ctx, "42") }},
		{"volume out of range", func() (any, error) { return c.UpdateAudioState(ctx, 150) }},
		{"unknown widget", func() (any, error) { return c.ActivateWidget(ctx, "com.lametric.clock", "missing") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.call()
			payload, ok := httpclient.ApplicationPayload(err)
			if !ok {
				t.Fatalf("expected application error, got %v", err)
			}
			if list, _ := payload.([]any); len(list) == 0 {
				t.Errorf("payload = %#v", payload)
			}
		})
	}
}

func TestPushNotification_SparseParams(t *testing.T) {
	c, dev := newDeviceClient(t)

	if _, err := c.PushNotification(context.Background(), Model{Frames: []Frame{{Text: "hi"}}}, NotificationOptions{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := dev.LastRequest()
	assertJSONEqual(t, r.Body, `{"model":{"frames":[{"text":"hi"}]}}`)

	queue := dev.State().Queue
	if len(queue) != 1 || queue[0].Priority != "info" {
		t.Errorf("queue = %+v", queue)
	}
}

func TestUpdateDisplayState_Empty(t *testing.T) {
	c, dev := newDeviceClient(t)

	if _, err := c.UpdateDisplayState(context.Background(), DisplayUpdate{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, _ := dev.LastRequest()
	assertJSONEqual(t, r.Body, `{}`)
}

func TestUpdateDisplayState_Screensaver(t *testing.T) {
	c, dev := newDeviceClient(t)

	ss := map[string]any{"enabled": true, "mode": "when_dark"}
	if _, err := c.UpdateDisplayState(context.Background(), DisplayUpdate{Screensaver: ss}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := dev.State().Display.Screensaver["mode"]; got != "when_dark" {
		t.Errorf("screensaver mode = %v", got)
	}
}

func TestPathSegmentsEscaped(t *testing.T) {
	c, dev := newDeviceClient(t)

	_, _ = c.CancelNotification(context.Background(), "a/b")
	r, _ := dev.LastRequest()
	if r.EscapedPath != "/api/v2/device/notifications/a%2Fb" {
		t.Errorf("path = %q", r.EscapedPath)
	}
	if r.Method != http.MethodDelete {
		t.Errorf("method = %s", r.Method)
	}
}

func assertJSONEqual(t *testing.T, got []byte, want string) {
	t.Helper()
	var g, w any
	if err := json.Unmarshal(got, &g); err != nil {
		t.Fatalf("invalid JSON body %q: %v", got, err)
	}
	if err := json.Unmarshal([]byte(want), &w); err != nil {
		t.Fatalf("invalid expected JSON %q: %v", want, err)
	}
	if !reflect.DeepEqual(g, w) {
		t.Errorf("body = %s, want %s", got, want)
	}
}

package lametrictest

// State is the mutable state of a fake device.
type State struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	SerialNumber string         `json:"serial_number"`
	OSVersion    string         `json:"os_version"`
	Mode         string         `json:"mode"`
	Model        string         `json:"model"`
	Audio        Audio          `json:"audio"`
	Bluetooth    Bluetooth      `json:"bluetooth"`
	Display      Display        `json:"display"`
	Wifi         Wifi           `json:"wifi"`
	Apps         map[string]App `json:"-"`
	Active       string         `json:"-"`
	Queue        []Notification `json:"-"`
	Actions      []WidgetAction `json:"-"`
}

// Audio is the audio section of the device state.
type Audio struct {
	Volume int `json:"volume"`
}

// Bluetooth is the bluetooth section of the device state.
type Bluetooth struct {
	Available bool   `json:"available"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	MAC       string `json:"mac"`
}

// Display is the display section of the device state.
type Display struct {
	Brightness     int            `json:"brightness"`
	BrightnessMode string         `json:"brightness_mode"`
	Width          int            `json:"width"`
	Height         int            `json:"height"`
	Type           string         `json:"type"`
	Screensaver    map[string]any `json:"screensaver,omitempty"`
}

// Wifi is the wifi section of the device state.
type Wifi struct {
	Active     bool   `json:"active"`
	Address    string `json:"address"`
	Available  bool   `json:"available"`
	Encryption string `json:"encryption"`
	ESSID      string `json:"essid"`
	IP         string `json:"ip"`
	Mode       string `json:"mode"`
	Netmask    string `json:"netmask"`
	Strength   int    `json:"strength"`
}

// App is an installed application.
type App struct {
	Package string            `json:"package"`
	Vendor  string            `json:"vendor"`
	Version string            `json:"version"`
	Title   string            `json:"title"`
	Widgets map[string]Widget `json:"widgets"`
}

// Widget is one instance of an app on the device.
type Widget struct {
	Index   int    `json:"index"`
	Package string `json:"package"`
}

// Notification is a queued notification.
type Notification struct {
	ID       string         `json:"id"`
	Type     string         `json:"type"`
	Priority string         `json:"priority"`
	IconType string         `json:"icon_type,omitempty"`
	Lifetime int64          `json:"lifetime,omitempty"`
	Model    map[string]any `json:"model"`
}

// WidgetAction is an action received for a running widget.
type WidgetAction struct {
	Package string         `json:"package"`
	Widget  string         `json:"widget"`
	ID      string         `json:"id"`
	Params  map[string]any `json:"params"`
}

// DefaultState returns the state a new fake device starts with.
func DefaultState() State {
	return State{
		ID:           "1",
		Name:         "LaMetric Time",
		SerialNumber: "SA000000000000",
		OSVersion:    "2.2.2",
		Mode:         "auto",
		Model:        "LM 37X8",
		Audio:        Audio{Volume: 40},
		Bluetooth:    Bluetooth{
			Available: true,
			Name:      "LM0000",
			Active:    false,
			MAC:       "AA:AA:AA:AA:AA:AA",
		},
		Display: Display{
			Brightness:     70,
			BrightnessMode: "auto",
			Width:          37,
			Height:         8,
			Type:           "mixed",
		},
		Wifi: Wifi{
			Active:     true,
			Address:    "AA:AA:AA:AA:AA:AB",
			Available:  true,
			Encryption: "WPA",
			ESSID:      "home",
			IP:         "192.168.1.40",
			Mode:       "dhcp",
			Netmask:    "255.255.255.0",
			Strength:   90,
		},
		Apps: map[string]App{
			"com.lametric.clock": {
				Package: "com.lametric.clock",
				Vendor:  "LaMetric",
				Version: "1.0.0",
				Title:   "Clock",
				Widgets: map[string]Widget{
					"08b8eac21074f8f7e5a29f2855ba8060": {Index: 0, Package: "com.lametric.clock"},
				},
			},
			"com.lametric.radio": {
				Package: "com.lametric.radio",
				Vendor:  "LaMetric",
				Version: "1.0.10",
				Title:   "Radio",
				Widgets: map[string]Widget{
					"589ed1b3fcdaa5180bf4848e55ba8061": {Index: 0, Package: "com.lametric.radio"},
				},
			},
		},
		Active: "com.lametric.clock",
	}
}

// clone returns a copy that shares no mutable data with s.
func (s State) clone() State {
	out := s
	out.Apps = make(map[string]App, len(s.Apps))
	for k, app := range s.Apps {
		widgets := make(map[string]Widget, len(app.Widgets))
		for id, w := range app.Widgets {
			widgets[id] = w
		}
		app.Widgets = widgets
		out.Apps[k] = app
	}
	out.Queue = append([]Notification(nil), s.Queue...)
	out.Actions = append([]WidgetAction(nil), s.Actions...)
	if s.Display.Screensaver != nil {
		ss := make(map[string]any, len(s.Display.Screensaver))
		for k, v := range s.Display.Screensaver {
			ss[k] = v
		}
		out.Display.Screensaver = ss
	}
	return out
}

package lametric

import "time"

// Priority controls how a notification interrupts the display.
type Priority string

const (
	PriorityInfo     Priority = "info"
	PriorityWarning  Priority = "warning"
	PriorityCritical Priority = "critical"
)

// IconType selects the announcement icon shown before a notification.
type IconType string

const (
	IconTypeNone  IconType = "none"
	IconTypeInfo  IconType = "info"
	IconTypeAlert IconType = "alert"
)

// Sound categories accepted by the device.
const (
	SoundCategoryNotifications = "notifications"
	SoundCategoryAlarms        = "alarms"
)

// Model is the content of a notification.
type Model struct {
	Frames []Frame `json:"frames"`
	Sound  *Sound  `json:"sound,omitempty"`
	// Cycles is how many times the frames are shown. Zero shows them until
	// the notification is dismissed.
	Cycles *int `json:"cycles,omitempty"`
}

// Frame is one screen of a notification. Set Text, GoalData or ChartData.
type Frame struct {
	Icon      string    `json:"icon,omitempty"`
	Text      string    `json:"text,omitempty"`
	GoalData  *GoalData `json:"goalData,omitempty"`
	ChartData []int     `json:"chartData,omitempty"`
}

// GoalData renders a progress frame.
type GoalData struct {
	Start   int    `json:"start"`
	Current int    `json:"current"`
	End     int    `json:"end"`
	Unit    string `json:"unit,omitempty"`
}

// Sound is played when the notification is shown.
type Sound struct {
	Category string `json:"category"`
	ID       string `json:"id"`
	Repeat   int    `json:"repeat,omitempty"`
}

// TextFrame returns a frame showing text with an optional icon.
func TextFrame(icon, text string) Frame {
	return Frame{Icon: icon, Text: text}
}

// NotificationOptions are the optional fields of a notification. Zero
// values are not sent.
type NotificationOptions struct {
	Priority Priority
	IconType IconType
	// Lifetime is how long the notification stays queued, sent in
	// milliseconds.
	Lifetime time.Duration
}

func (o NotificationOptions) params(model any) map[string]any {
	params := map[string]any{"model": model}
	if o.Priority != "" {
		params["priority"] = o.Priority
	}
	if o.IconType != "" {
		params["icon_type"] = o.IconType
	}
	if ms := o.Lifetime.Milliseconds(); ms > 0 {
		params["lifetime"] = ms
	}
	return params
}

package lametrictest

import (
	"bytes"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (d *Device) routes() *gin.Engine {
	r := gin.New()
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(gin.Recovery(), d.record(), d.authorize())
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, errorBody("Resource not found"))
	})

	api := r.Group("/api/v2")
	api.GET("/", d.getAPI)
	api.GET("/device", d.getDevice)
	api.GET("/device/apps", d.getApps)
	api.GET("/device/apps/:package", d.getApp)
	api.PUT("/device/apps/:package", d.switchApp)
	api.PUT("/device/apps/:package/widgets/:widget/activate", d.activateWidget)
	api.POST("/device/apps/:package/widgets/:widget/actions", d.widgetAction)
	api.GET("/device/notifications", d.getNotifications)
	api.POST("/device/notifications", d.pushNotification)
	api.DELETE("/device/notifications/:id", d.cancelNotification)
	api.GET("/device/display", d.getDisplay)
	api.PUT("/device/display", d.putDisplay)
	api.GET("/device/audio", d.getAudio)
	api.PUT("/device/audio", d.putAudio)
	api.GET("/device/bluetooth", d.getBluetooth)
	api.PUT("/device/bluetooth", d.putBluetooth)
	api.GET("/device/wifi", d.getWifi)

	return r
}

// record stores every request and short-circuits scripted replies.
func (d *Device) record() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body []byte
		if c.Request.Body != nil {
			body, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		d.mu.Lock()
		d.requests = append(d.requests, Recorded{
			Method:      c.Request.Method,
			Path:        c.Request.URL.Path,
			EscapedPath: c.Request.URL.EscapedPath(),
			RawQuery:    c.Request.URL.RawQuery,
			Header:      c.Request.Header.Clone(),
			Body:        body,
		})
		resp, scripted := d.scripted[scriptKey(c.Request.Method, c.Request.URL.Path)]
		d.mu.Unlock()

		if scripted {
			c.Data(resp.Status, "application/json", []byte(resp.Body))
			c.Abort()
			return
		}
		c.Next()
	}
}

// authorize enforces basic auth the way the device does: user "dev" and
// the API key as password.
func (d *Device) authorize() gin.HandlerFunc {
	return func(c *gin.Context) {
		if d.apiKey == "" {
			c.Next()
			return
		}
		user, key, ok := c.Request.BasicAuth()
		if !ok || user != DeviceUser || key != d.apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorBody("Authorization is required"))
			return
		}
		c.Next()
	}
}

func errorBody(msg string) gin.H {
	return gin.H{"errors": []gin.H{{"message": msg}}}
}

func success(c *gin.Context, data any) gin.H {
	return gin.H{"success": gin.H{"data": data, "path": c.Request.URL.Path}}
}

func (d *Device) getAPI(c *gin.Context) {
	base := "http://" + c.Request.Host + "/api/v2"
	c.JSON(http.StatusOK, gin.H{
		"api_version": "2.0.0",
		"endpoints":   gin.H{
			"apps_list_url":             base + "/device/apps",
			"audio_url":                 base + "/device/audio",
			"bluetooth_url":             base + "/device/bluetooth",
			"concrete_notification_url": base + "/device/notifications/{:id}",
			"current_notification_url":  base + "/device/notifications/current",
			"device_url":                base + "/device",
			"display_url":               base + "/device/display",
			"notifications_url":         base + "/device/notifications",
			"wifi_url":                  base + "/device/wifi",
		},
	})
}

func (d *Device) getDevice(c *gin.Context) {
	d.mu.Lock()
	s := d.state.clone()
	d.mu.Unlock()

	full := gin.H{
		"id":            s.ID,
		"name":          s.Name,
		"serial_number": s.SerialNumber,
		"os_version":    s.OSVersion,
		"mode":          s.Mode,
		"model":         s.Model,
		"audio":         s.Audio,
		"bluetooth":     s.Bluetooth,
		"display":       s.Display,
		"wifi":          s.Wifi,
	}
	if fields := c.Query("fields"); fields != "" {
		filtered := gin.H{}
		for _, f := range strings.Split(fields, ",") {
			f = strings.TrimSpace(f)
			if v, ok := full[f]; ok {
				filtered[f] = v
			}
		}
		full = filtered
	}
	c.JSON(http.StatusOK, full)
}

func (d *Device) getApps(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.JSON(http.StatusOK, d.state.clone().Apps)
}

func (d *Device) getApp(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	app, ok := d.state.Apps[c.Param("package")]
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("Application not found"))
		return
	}
	c.JSON(http.StatusOK, app)
}

func (d *Device) switchApp(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	step := 0
	switch c.Param("package") {
	case "next":
		step = 1
	case "prev":
		step = -1
	default:
		c.JSON(http.StatusNotFound, errorBody("Resource not found"))
		return
	}

	packages := make([]string, 0, len(d.state.Apps))
	for p := range d.state.Apps {
		packages = append(packages, p)
	}
	if len(packages) == 0 {
		c.JSON(http.StatusNotFound, errorBody("No applications installed"))
		return
	}
	sort.Strings(packages)

	current := sort.SearchStrings(packages, d.state.Active)
	if current >= len(packages) || packages[current] != d.state.Active {
		current = 0
	}
	next := (current + step + len(packages)) % len(packages)
	d.state.Active = packages[next]

	c.JSON(http.StatusOK, success(c, gin.H{"package": d.state.Active}))
}

func (d *Device) activateWidget(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	app, ok := d.state.Apps[c.Param("package")]
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("Application not found"))
		return
	}
	if _, ok := app.Widgets[c.Param("widget")]; !ok {
		c.JSON(http.StatusNotFound, errorBody("Widget not found"))
		return
	}
	d.state.Active = app.Package
	c.JSON(http.StatusOK, success(c, gin.H{"package": app.Package, "widget": c.Param("widget")}))
}

func (d *Device) widgetAction(c *gin.Context) {
	var body struct {
		ID     string         `json:"id"`
		Params map[string]any `json:"params"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.ID == "" {
		c.JSON(http.StatusBadRequest, errorBody("Action id is required"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	app, ok := d.state.Apps[c.Param("package")]
	if !ok {
		c.JSON(http.StatusNotFound, errorBody("Application not found"))
		return
	}
	if _, ok := app.Widgets[c.Param("widget")]; !ok {
		c.JSON(http.StatusNotFound, errorBody("Widget not found"))
		return
	}
	d.state.Actions = append(d.state.Actions, WidgetAction{
		Package: app.Package,
		Widget:  c.Param("widget"),
		ID:      body.ID,
		Params:  body.Params,
	})
	c.JSON(http.StatusOK, success(c, gin.H{"id": body.ID}))
}

func (d *Device) getNotifications(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	queue := append([]Notification{}, d.state.Queue...)
	c.JSON(http.StatusOK, queue)
}

func (d *Device) pushNotification(c *gin.Context) {
	var body struct {
		Priority string         `json:"priority"`
		IconType string         `json:"icon_type"`
		Lifetime int64          `json:"lifetime"`
		Model    map[string]any `json:"model"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Model == nil {
		c.JSON(http.StatusBadRequest, errorBody("Notification model is required"))
		return
	}
	if body.Priority == "" {
		body.Priority = "info"
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	id := strconv.Itoa(d.nextID)
	d.nextID++
	d.state.Queue = append(d.state.Queue, Notification{
		ID:       id,
		Type:     "external",
		Priority: body.Priority,
		IconType: body.IconType,
		Lifetime: body.Lifetime,
		Model:    body.Model,
	})
	c.JSON(http.StatusCreated, gin.H{"success": gin.H{"id": id}})
}

func (d *Device) cancelNotification(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := c.Param("id")
	for i, n := range d.state.Queue {
		if n.ID == id {
			d.state.Queue = append(d.state.Queue[:i], d.state.Queue[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, errorBody("Notification not found"))
}

func (d *Device) getDisplay(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.JSON(http.StatusOK, d.state.clone().Display)
}

func (d *Device) putDisplay(c *gin.Context) {
	var body struct {
		Brightness     *int           `json:"brightness"`
		BrightnessMode *string        `json:"brightness_mode"`
		Screensaver    map[string]any `json:"screensaver"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid display update"))
		return
	}
	if body.Brightness != nil && (*body.Brightness < 2 || *body.Brightness > 100) {
		c.JSON(http.StatusBadRequest, errorBody("Brightness must be between 2 and 100"))
		return
	}
	if body.BrightnessMode != nil && *body.BrightnessMode != "auto" && *body.BrightnessMode != "manual" {
		c.JSON(http.StatusBadRequest, errorBody("Brightness mode must be auto or manual"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if body.Brightness != nil {
		d.state.Display.Brightness = *body.Brightness
	}
	if body.BrightnessMode != nil {
		d.state.Display.BrightnessMode = *body.BrightnessMode
	}
	if body.Screensaver != nil {
		d.state.Display.Screensaver = body.Screensaver
	}
	c.JSON(http.StatusOK, success(c, d.state.clone().Display))
}

func (d *Device) getAudio(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.JSON(http.StatusOK, d.state.Audio)
}

func (d *Device) putAudio(c *gin.Context) {
	var body struct {
		Volume *int `json:"volume"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Volume == nil {
		c.JSON(http.StatusBadRequest, errorBody("Volume is required"))
		return
	}
	if *body.Volume < 0 || *body.Volume > 100 {
		c.JSON(http.StatusBadRequest, errorBody("Volume must be between 0 and 100"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Audio.Volume = *body.Volume
	c.JSON(http.StatusOK, success(c, d.state.Audio))
}

func (d *Device) getBluetooth(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.JSON(http.StatusOK, d.state.Bluetooth)
}

func (d *Device) putBluetooth(c *gin.Context) {
	var body struct {
		Active *bool   `json:"active"`
		Name   *string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("Invalid bluetooth update"))
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if body.Active != nil {
		d.state.Bluetooth.Active = *body.Active
	}
	if body.Name != nil {
		d.state.Bluetooth.Name = *body.Name
	}
	c.JSON(http.StatusOK, success(c, d.state.Bluetooth))
}

func (d *Device) getWifi(c *gin.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	c.JSON(http.StatusOK, d.state.Wifi)
}

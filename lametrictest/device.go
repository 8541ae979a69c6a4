package lametrictest

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// DeviceUser is the basic-auth user the device accepts.
const DeviceUser = "dev"

// Recorded is a request received by the fake device.
type Recorded struct {
	Method string
	// Path is the decoded request path.
	Path string
	// EscapedPath is the path as sent on the wire.
	EscapedPath string
	RawQuery    string
	Header      http.Header
	Body        []byte
}

// Response is a canned reply returned instead of the routed handler.
type Response struct {
	Status int
	Body   string
}

// Device is an in-process fake of the device local API, served by gin
// behind an httptest.Server. All methods are safe for concurrent use.
type Device struct {
	apiKey string
	engine *gin.Engine
	ts     *httptest.Server

	mu       sync.Mutex
	state    State
	requests []Recorded
	scripted map[string]Response
	nextID   int
}

// NewDevice starts a fake device that accepts apiKey. An empty key
// disables authentication.
func NewDevice(apiKey string) *Device {
	d := &Device{
		apiKey:   apiKey,
		state:    DefaultState(),
		scripted: make(map[string]Response),
		nextID:   1,
	}
	d.engine = d.routes()
	d.ts = httptest.NewServer(d.engine)
	return d
}

// URL returns the device origin, e.g. "http://127.0.0.1:53211".
func (d *Device) URL() string {
	return d.ts.URL
}

// Close shuts the server down.
func (d *Device) Close() {
	d.ts.Close()
}

// Handler returns the gin engine for use without a listener.
func (d *Device) Handler() http.Handler {
	return d.engine
}

// APIKey returns the key the device accepts.
func (d *Device) APIKey() string {
	return d.apiKey
}

// Credential returns the base64 basic credential for the device key.
func (d *Device) Credential() string {
	return base64.StdEncoding.EncodeToString([]byte(DeviceUser + ":" + d.apiKey))
}

// Script makes the device answer method+path with a fixed reply until
// cleared. path is the full request path, e.g. "/api/v2/device".
func (d *Device) Script(method, path string, status int, body string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripted[scriptKey(method, path)] = Response{Status: status, Body: body}
}

// ClearScripts removes all canned replies.
func (d *Device) ClearScripts() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.scripted = make(map[string]Response)
}

// Requests returns every request received so far.
func (d *Device) Requests() []Recorded {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Recorded(nil), d.requests...)
}

// LastRequest returns the most recent request.
func (d *Device) LastRequest() (Recorded, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return Recorded{}, false
	}
	return d.requests[len(d.requests)-1], true
}

// State returns a snapshot of the device state.
func (d *Device) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state.clone()
}

// SetState replaces the device state.
func (d *Device) SetState(s State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = s.clone()
}

func scriptKey(method, path string) string {
	return method + " " + path
}

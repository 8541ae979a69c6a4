// Package lametrictest provides an in-process fake of the device local
// API for tests.
//
// The fake keeps display, audio, bluetooth, app and notification state,
// enforces basic auth, records every request it receives, and can be
// scripted to return arbitrary status codes and bodies:
//
//	dev := lametrictest.NewDevice("secret")
//	defer dev.Close()
//
//	dev.Script(http.MethodGet, "/api/v2/device", 200, "fail whale")
package lametrictest

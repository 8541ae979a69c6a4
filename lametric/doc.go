// Package lametric is a client for the local REST API of a LaMetric device.
//
// A Client is built from defaults overlaid with options and then fixed:
//
//	client, err := lametric.New(
//	    lametric.WithBaseURL("http://192.168.1.40:8080"),
//	    lametric.WithAPIKey(apiKey),
//	)
//
//	state, err := client.GetDeviceState(ctx, "display", "audio")
//
// Every method returns the decoded JSON body or an error from the
// httpclient package. Use httpclient.IsApplication and
// httpclient.ApplicationPayload to inspect errors the device reported in
// its response body:
//
//	_, err = client.UpdateAudioState(ctx, 150)
//	if payload, ok := httpclient.ApplicationPayload(err); ok {
//	    ...
//	}
//
// Raw calls are available through Get, Post, Put, Delete and Do, and Go
// runs a call in the background.
//
// Client also satisfies component.Component, so a host application can
// probe the device on Start and report it through Health.
package lametric

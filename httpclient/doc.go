// Package httpclient executes calls against the device REST API and turns
// every response into either a decoded JSON value or a classified *Error.
//
// Each call is sent exactly once. There is no retry and no caching.
//
// # Basic Usage
//
//	adapter, err := httpclient.New(httpclient.Config{
//	    BaseURL: "http://192.168.1.40:8080",
//	    Auth:    httpclient.BasicAuth("dev", apiKey),
//	    Headers: map[string]string{"Accept": "*/*"},
//	})
//
//	state, err := adapter.Execute(ctx, "GET", "device", nil)
//	if httpclient.IsApplication(err) {
//	    payload, _ := httpclient.ApplicationPayload(err)
//	    ...
//	}
//
// # Classification
//
// Responses are checked in order: a body that is not valid JSON is a
// parse error; a JSON object with an "errors" key is an application
// error whatever the status; a status outside 200..299 is a status
// error. Everything else succeeds, and an empty body decodes to an
// empty object.
package httpclient

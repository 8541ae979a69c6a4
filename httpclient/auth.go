package httpclient

import (
	"encoding/base64"
	"net/http"
)

// AuthType identifies the authentication method.
type AuthType int

const (
	// AuthNone disables authentication.
	AuthNone AuthType = iota
	// AuthBasic uses HTTP Basic authentication with a pre-encoded credential.
	AuthBasic
)

// HeaderAuthorization is the header carrying the credential.
const HeaderAuthorization = "Authorization"

// AuthConfig configures request authentication.
type AuthConfig struct {
	// Type is the authentication method.
	Type AuthType
	// Credential is the base64 "user:key" credential (AuthBasic).
	Credential string
}

// EncodedBasicAuth creates a basic auth config from an already encoded
// credential. An empty credential disables authentication.
func EncodedBasicAuth(credential string) *AuthConfig {
	if credential == "" {
		return nil
	}
	return &AuthConfig{Type: AuthBasic, Credential: credential}
}

// BasicAuth creates a basic auth config from a user name and password.
func BasicAuth(username, password string) *AuthConfig {
	return EncodedBasicAuth(base64.StdEncoding.EncodeToString([]byte(username + ":" + password)))
}

// HeaderValue returns the Authorization header value, or "" when the
// config does not authenticate.
func (a *AuthConfig) HeaderValue() string {
	if a == nil || a.Type != AuthBasic || a.Credential == "" {
		return ""
	}
	return "Basic " + a.Credential
}

// apply applies authentication to an HTTP request. It runs after all
// other headers so the credential always wins.
func (a *AuthConfig) apply(req *http.Request) {
	if v := a.HeaderValue(); v != "" {
		req.Header.Set(HeaderAuthorization, v)
	}
}

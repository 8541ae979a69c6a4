package httpclient

import (
	"reflect"
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		text     string
		body     string
		want     any
		wantCode ErrorCode
		wantErr  bool
	}{
		{name: "json object", status: 201, text: "Created", body: `{"a":1}`, want: map[string]any{"a": float64(1)}},
		{name: "empty body", status: 201, text: "Created", body: ``, want: map[string]any{}},
		{name: "json array", status: 200, text: "OK", body: `[1,"x"]`, want: []any{float64(1), "x"}},
		{name: "json null", status: 200, text: "OK", body: `null`, want: nil},
		{name: "errors on 2xx", status: 203, text: "Non-Authoritative Information", body: `{"errors":["nope"]}`, wantErr: true, wantCode: ErrCodeApplication},
		{name: "errors on 4xx", status: 400, text: "Bad Request", body: `{"errors":[{"message":"bad"}]}`, wantErr: true, wantCode: ErrCodeApplication},
		{name: "invalid json on 2xx", status: 200, text: "OK", body: `fail whale`, wantErr: true, wantCode: ErrCodeParse},
		{name: "invalid json on 5xx", status: 502, text: "Bad Gateway", body: `<html>`, wantErr: true, wantCode: ErrCodeParse},
		{name: "non 2xx with object", status: 500, text: "Internal Server Error", body: `{}`, wantErr: true, wantCode: ErrCodeStatus},
		{name: "non 2xx empty body", status: 404, text: "Not Found", body: ``, wantErr: true, wantCode: ErrCodeStatus},
		{name: "redirect status", status: 302, text: "Found", body: `{}`, wantErr: true, wantCode: ErrCodeStatus},
		{name: "errors in array is not application", status: 200, text: "OK", body: `[{"errors":1}]`, want: []any{map[string]any{"errors": float64(1)}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.status, tt.text, []byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got value %v", got)
				}
				if !hasCode(err, tt.wantCode) {
					t.Fatalf("expected %s error, got %v", tt.wantCode, err)
				}
				if got != nil {
					t.Errorf("expected nil value on error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestNormalize_ApplicationPayload(t *testing.T) {
	_, err := Normalize(203, "Non-Authoritative Information", []byte(`{"errors":["nope"]}`))
	payload, ok := ApplicationPayload(err)
	if !ok {
		t.Fatalf("expected application error, got %v", err)
	}
	if !reflect.DeepEqual(payload, []any{"nope"}) {
		t.Errorf("payload = %#v", payload)
	}
	if StatusCode(err) != 203 {
		t.Errorf("status code = %d, want 203", StatusCode(err))
	}
}

func TestNormalize_NullErrorsKey(t *testing.T) {
	_, err := Normalize(200, "OK", []byte(`{"errors":null}`))
	payload, ok := ApplicationPayload(err)
	if !ok {
		t.Fatalf("expected application error, got %v", err)
	}
	if payload != nil {
		t.Errorf("payload = %#v, want nil", payload)
	}
}

func TestNormalize_ParseErrorMentionsStatus(t *testing.T) {
	_, err := Normalize(200, "OK", []byte("fail whale"))
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "200") || !strings.Contains(msg, "OK") {
		t.Errorf("message %q should mention the status", msg)
	}
	if strings.Contains(msg, "fail whale") {
		t.Errorf("message %q should not echo the body", msg)
	}
}

func TestNormalize_StatusErrorMentionsStatus(t *testing.T) {
	_, err := Normalize(500, "Internal Server Error", []byte("{}"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("message %q should mention 500", err.Error())
	}
}

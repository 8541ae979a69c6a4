package httpclient

import (
	"net/url"
	"testing"
)

func TestNormalizeMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"GET", "GET", false},
		{"get", "GET", false},
		{"Post", "POST", false},
		{"put", "PUT", false},
		{"delete", "DELETE", false},
		{"PATCH", "", true},
		{"HEAD", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizeMethod(tt.in)
			if tt.wantErr {
				if !IsUsage(err) {
					t.Fatalf("expected usage error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeQuery(t *testing.T) {
	type filter struct {
		Fields string `json:"fields"`
		Limit  int    `json:"limit,omitempty"`
	}

	tests := []struct {
		name   string
		params any
		want   string
	}{
		{"nil", nil, ""},
		{"string map", map[string]string{"fields": "display,audio"}, "fields=display%2Caudio"},
		{"url values", url.Values{"a": {"1", "2"}}, "a=1&a=2"},
		{"scalars", map[string]any{"b": true, "n": 3, "f": 1.5, "s": "x"}, "b=true&f=1.5&n=3&s=x"},
		{"slice repeats key", map[string]any{"id": []int{1, 2}}, "id=1&id=2"},
		{"nested object", map[string]any{"p": map[string]any{"x": 1}}, "p%5Bx%5D=1"},
		{"null value", map[string]any{"k": nil}, "k="},
		{"struct", filter{Fields: "wifi"}, "fields=wifi"},
		{"large integer keeps precision", map[string]any{"id": int64(9007199254740993)}, "id=9007199254740993"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := EncodeQuery(tt.params)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := q.Encode(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeQuery_RejectsNonObject(t *testing.T) {
	for _, params := range []any{[]int{1, 2}, "fields=x", 42} {
		if _, err := EncodeQuery(params); !IsUsage(err) {
			t.Errorf("EncodeQuery(%#v): expected usage error, got %v", params, err)
		}
	}
}

func TestEncodeQuery_UnencodableIsUsage(t *testing.T) {
	_, err := EncodeQuery(map[string]any{"ch": make(chan int)})
	if !IsUsage(err) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestEncodeBody(t *testing.T) {
	body, err := EncodeBody(nil)
	if err != nil || body != nil {
		t.Fatalf("nil params: body=%q err=%v", body, err)
	}

	body, err = EncodeBody(map[string]any{"volume": 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"volume":0}` {
		t.Errorf("got %s", body)
	}

	if _, err := EncodeBody(map[string]any{"fn": func() {}}); !IsUsage(err) {
		t.Errorf("expected usage error, got %v", err)
	}
}

func TestRequestURL(t *testing.T) {
	r := &Request{Endpoint: "http://d/api/v2/device"}
	if got := r.URL(); got != "http://d/api/v2/device" {
		t.Errorf("got %q", got)
	}
	r.Query = url.Values{"fields": {"wifi"}}
	if got := r.URL(); got != "http://d/api/v2/device?fields=wifi" {
		t.Errorf("got %q", got)
	}
	r.Endpoint = "http://d/api/v2/device?x=1"
	if got := r.URL(); got != "http://d/api/v2/device?x=1&fields=wifi" {
		t.Errorf("got %q", got)
	}
}

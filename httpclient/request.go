package httpclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Request is a validated device call ready for dispatch.
type Request struct {
	// Method is the upper-case HTTP method.
	Method string
	// Endpoint is the full request URL without the query string.
	Endpoint string
	// Query holds the encoded GET parameters.
	Query url.Values
	// Body holds the JSON encoded parameters of non-GET calls.
	Body []byte
}

// URL returns the endpoint with the query string appended.
func (r *Request) URL() string {
	if len(r.Query) == 0 {
		return r.Endpoint
	}
	sep := "?"
	if strings.Contains(r.Endpoint, "?") {
		sep = "&"
	}
	return r.Endpoint + sep + r.Query.Encode()
}

// NormalizeMethod upper-cases method and rejects anything other than
// GET, POST, PUT and DELETE.
func NormalizeMethod(method string) (string, error) {
	m := strings.ToUpper(strings.TrimSpace(method))
	switch m {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
		return m, nil
	default:
		return "", NewUsageError(fmt.Sprintf("unsupported method %q", method))
	}
}

// EncodeQuery flattens params into query values. Maps and structs are
// accepted; slices repeat their key and nested objects use key[sub].
func EncodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		q := make(url.Values, len(p))
		for k, v := range p {
			q.Set(k, v)
		}
		return q, nil
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, NewUsageError(fmt.Sprintf("encode query: %v", err))
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, NewUsageError(fmt.Sprintf("encode query: %v", err))
	}
	if generic == nil {
		return nil, nil
	}
	obj, ok := generic.(map[string]any)
	if !ok {
		return nil, NewUsageError(fmt.Sprintf("query params must be an object, got %T", params))
	}

	q := url.Values{}
	for _, k := range sortedKeys(obj) {
		flattenQuery(q, k, obj[k])
	}
	return q, nil
}

func flattenQuery(q url.Values, key string, v any) {
	switch val := v.(type) {
	case nil:
		q.Add(key, "")
	case string:
		q.Add(key, val)
	case bool:
		q.Add(key, strconv.FormatBool(val))
	case json.Number:
		q.Add(key, val.String())
	case float64:
		q.Add(key, strconv.FormatFloat(val, 'f', -1, 64))
	case []any:
		for _, item := range val {
			flattenQuery(q, key, item)
		}
	case map[string]any:
		for _, k := range sortedKeys(val) {
			flattenQuery(q, key+"["+k+"]", val[k])
		}
	default:
		q.Add(key, fmt.Sprint(val))
	}
}

// EncodeBody JSON encodes params. Nil params produce no body.
func EncodeBody(params any) ([]byte, error) {
	if params == nil {
		return nil, nil
	}
	if raw, ok := params.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, NewUsageError(fmt.Sprintf("encode body: %v", err))
	}
	return data, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

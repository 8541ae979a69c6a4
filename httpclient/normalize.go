package httpclient

import "encoding/json"

// errorsKey is the top-level key the device uses to report failures.
const errorsKey = "errors"

// Normalize classifies a received response. Checks run in a fixed order:
// an undecodable body fails first, then an "errors" key, then a status
// outside 200..299. An empty body decodes to an empty object.
func Normalize(statusCode int, status string, body []byte) (any, error) {
	var data any
	if len(body) == 0 {
		data = map[string]any{}
	} else if err := json.Unmarshal(body, &data); err != nil {
		return nil, NewParseError(statusCode, status, err)
	}

	if obj, ok := data.(map[string]any); ok {
		if payload, found := obj[errorsKey]; found {
			return nil, NewApplicationError(statusCode, status, payload)
		}
	}

	if statusCode < 200 || statusCode > 299 {
		return nil, NewStatusError(statusCode, status)
	}

	return data, nil
}

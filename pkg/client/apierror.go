package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
)

// APIError is a non-2xx response translated into a human-readable message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: api error %d: %s", e.StatusCode, e.Message)
}

const genericErrorMessage = "Something went wrong. Please try again."

// newAPIError reads the response body and extracts the most specific
// message the server offered. Probes run in order: a plain string body,
// non_field_errors, detail, error, then the first field with a message
// array, and finally a generic fallback.
func newAPIError(resp *http.Response) *APIError {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &APIError{StatusCode: resp.StatusCode, Message: genericErrorMessage}
	}
	return &APIError{StatusCode: resp.StatusCode, Message: extractMessage(body)}
}

func extractMessage(body []byte) string {
	var asString string
	if err := json.Unmarshal(body, &asString); err == nil && asString != "" {
		return asString
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return genericErrorMessage
	}

	if msg := firstOfArray(payload["non_field_errors"]); msg != "" {
		return msg
	}
	for _, key := range []string{"detail", "error"} {
		var msg string
		if raw, ok := payload[key]; ok && json.Unmarshal(raw, &msg) == nil && msg != "" {
			return msg
		}
	}

	// Per-field validation maps: report the first field's first message.
	keys := make([]string, 0, len(payload))
	for k := range payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if msg := firstOfArray(payload[k]); msg != "" {
			return fmt.Sprintf("%s: %s", strings.ReplaceAll(k, "_", " "), msg)
		}
	}
	return genericErrorMessage
}

func firstOfArray(raw json.RawMessage) string {
	if raw == nil {
		return ""
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil || len(arr) == 0 {
		return ""
	}
	return arr[0]
}

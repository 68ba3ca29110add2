// Package testutil provides common test utilities for handler and integration tests.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewJSONRequest creates an HTTP request whose body is body marshaled to JSON.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err, "failed to marshal request body")
		r = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// NewRawRequest creates a JSON request with a literal body, for malformed payloads.
func NewRawRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// Do executes req against handler and returns the recorder.
func Do(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

// Decode unmarshals the response body into T.
func Decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), "failed to unmarshal response: %s", rr.Body.String())
	return out
}

// DecodeMap unmarshals the response body into a generic JSON object.
func DecodeMap(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	return Decode[map[string]any](t, rr)
}

// AssertError asserts the status code and the {"error": message} body.
func AssertError(t *testing.T, rr *httptest.ResponseRecorder, status int, message string) {
	t.Helper()
	assert.Equal(t, status, rr.Code, "unexpected status code, body: %s", rr.Body.String())
	body := Decode[map[string]string](t, rr)
	assert.Equal(t, message, body["error"], "unexpected error message")
}

// AssertNoKey asserts the JSON response omits key entirely.
func AssertNoKey(t *testing.T, rr *httptest.ResponseRecorder, key string) {
	t.Helper()
	_, ok := DecodeMap(t, rr)[key]
	assert.False(t, ok, "key %q should be absent, body: %s", key, rr.Body.String())
}

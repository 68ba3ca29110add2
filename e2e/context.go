package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TestContext carries HTTP state between steps of one scenario.
type TestContext struct {
	baseURL    string
	client     *http.Client
	lastStatus int
	lastBody   []byte
	vars       map[string]string
}

func NewTestContext(baseURL string) *TestContext {
	return &TestContext{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
		vars:    make(map[string]string),
	}
}

// Reset clears per-scenario state.
func (tc *TestContext) Reset() {
	tc.lastStatus = 0
	tc.lastBody = nil
	tc.vars = make(map[string]string)
}

func (tc *TestContext) POST(path string, body any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal body: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, tc.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return tc.do(req)
}

func (tc *TestContext) GET(path string) error {
	req, err := http.NewRequest(http.MethodGet, tc.baseURL+path, nil)
	if err != nil {
		return err
	}
	return tc.do(req)
}

func (tc *TestContext) do(req *http.Request) error {
	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()
	tc.lastStatus = resp.StatusCode
	tc.lastBody, err = io.ReadAll(resp.Body)
	return err
}

// GetResponseField returns a top-level field of the last JSON response.
func (tc *TestContext) GetResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not a JSON object: %s", tc.lastBody)
	}
	v, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("response has no %q field: %s", field, tc.lastBody)
	}
	return v, nil
}

func (tc *TestContext) GetLastResponseStatus() int  { return tc.lastStatus }
func (tc *TestContext) GetLastResponseBody() []byte { return tc.lastBody }

// Remember stores a value for later steps, e.g. the session id.
func (tc *TestContext) Remember(name, value string) { tc.vars[name] = value }

func (tc *TestContext) Recall(name string) (string, error) {
	v, ok := tc.vars[name]
	if !ok {
		return "", fmt.Errorf("nothing remembered as %q", name)
	}
	return v, nil
}

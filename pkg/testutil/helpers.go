// Package testutil provides common utility functions for testing.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
)

// Float returns a pointer to v for optional rate arguments.
func Float(v float64) *float64 {
	return &v
}

// Do issues a request against baseURL+path and returns the status code and
// raw body. Failures to reach the server abort the test.
func Do(t *testing.T, method, baseURL, path string) (int, []byte) {
	t.Helper()
	req, err := http.NewRequest(method, strings.TrimRight(baseURL, "/")+path, nil)
	if err != nil {
		t.Fatalf("building %s %s: %v", method, path, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading %s %s: %v", method, path, err)
	}
	return resp.StatusCode, body
}

// Numbers decodes a flat JSON object of numeric fields.
func Numbers(t *testing.T, body []byte) map[string]float64 {
	t.Helper()
	var fields map[string]float64
	if err := json.Unmarshal(body, &fields); err != nil {
		t.Fatalf("decoding %s: %v", string(body), err)
	}
	return fields
}

// FindViolation reports whether any violation contains fragment.
func FindViolation(violations []string, fragment string) bool {
	for _, v := range violations {
		if strings.Contains(v, fragment) {
			return true
		}
	}
	return false
}

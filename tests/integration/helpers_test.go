//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

var client = &http.Client{Timeout: 10 * time.Second}

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func apiURL(path string) string {
	base := envOrDefault("INTEGRATION_BASE_URL", "http://localhost:5000")
	return fmt.Sprintf("%s%s%s", base, envOrDefault("INTEGRATION_API_PREFIX", "/api"), path)
}

// doJSON sends payload (if any) and decodes the JSON response body.
func doJSON(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		if err := json.NewEncoder(&body).Encode(payload); err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
	}

	req, err := http.NewRequest(method, url, &body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

// createQuestion inserts a question and returns its id.
func createQuestion(t *testing.T, category int) int64 {
	t.Helper()

	status, out := doJSON(t, http.MethodPost, apiURL("/questions"), map[string]interface{}{
		"question":   fmt.Sprintf("Integration question %d?", time.Now().UnixNano()),
		"answer":     "42",
		"category":   category,
		"difficulty": 2,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: unexpected status %d: %v", status, out)
	}

	id, ok := out["question_id"].(float64)
	if !ok || id <= 0 {
		t.Fatalf("create question: missing question_id in %v", out)
	}
	return int64(id)
}

func expectFailure(t *testing.T, status int, out map[string]interface{}, want int, message string) {
	t.Helper()
	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, out)
	}
	if out["success"] != false || out["error"] != float64(want) || out["message"] != message {
		t.Fatalf("unexpected error envelope: %v", out)
	}
}

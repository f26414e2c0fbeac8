//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("DASS_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:8000"
}

// Exercises the full journey against a running server: banner, scoring with
// persistence, then the assessment listing.
func TestScoreJourneyIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	resp, err := client.Get(base + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	drainAndClose(t, resp)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /: status %d", resp.StatusCode)
	}

	answers := make([]int, 21)
	for i := range answers {
		answers[i] = 2
	}
	body, _ := json.Marshal(map[string]any{
		"student_name": "Integration Tester",
		"answers":      answers,
	})
	resp, err = client.Post(base+"/api/score", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/score: %v", err)
	}
	var result struct {
		TotalScore   int    `json:"total_score"`
		AssessmentID string `json:"assessment_id"`
	}
	decodeAndClose(t, resp, &result)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/score: status %d", resp.StatusCode)
	}
	if result.TotalScore != 42 {
		t.Fatalf("want total 42, got %d", result.TotalScore)
	}
	if result.AssessmentID == "" {
		t.Fatalf("expected persisted assessment id")
	}

	resp, err = client.Get(base + "/api/assessments?limit=5")
	if err != nil {
		t.Fatalf("GET /api/assessments: %v", err)
	}
	var docs []map[string]any
	decodeAndClose(t, resp, &docs)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/assessments: status %d", resp.StatusCode)
	}
	found := false
	for _, d := range docs {
		if d["_id"] == result.AssessmentID {
			found = true
		}
	}
	if !found {
		t.Fatalf("scored assessment %s not in listing", result.AssessmentID)
	}
}

func drainAndClose(t *testing.T, resp *http.Response) {
	t.Helper()
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func decodeAndClose(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/model"
)

// stubDetector returns a fixed score, so handler tests run without any
// network access.
type stubDetector struct {
	id    string
	score float64
}

func (d *stubDetector) ID() string                    { return d.id }
func (d *stubDetector) DisplayName() string           { return "Stub " + d.id }
func (d *stubDetector) Method() model.DetectionMethod { return model.MethodClassifier }
func (d *stubDetector) Available() bool               { return true }

func (d *stubDetector) Detect(context.Context, string) (*model.DetectionResult, error) {
	return &model.DetectionResult{
		Detector:     d.id,
		DetectorName: d.DisplayName(),
		Verdict:      model.VerdictFromScore(d.score),
		AIScore:      d.score,
		HumanScore:   1 - d.score,
		Method:       model.MethodClassifier,
	}, nil
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := config.NewConfig()
	cfg.ExperimentFile = filepath.Join(t.TempDir(), "experiment_results.json")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := detector.NewRegistry(logger, &stubDetector{id: "stub", score: 0.9})

	return New(cfg, logger, registry, "test")
}

func postJSON(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	var resp healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
	if resp.Version != "test" {
		t.Errorf("version = %q, want test", resp.Version)
	}
}

func TestServer_Scan(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/scan", `{"text":"Hello​world"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusOK, rec.Body)
	}

	var result model.ScanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !result.HasInvisibleChars {
		t.Error("HasInvisibleChars = false, want true")
	}
	if result.TotalInvisibleCount != 1 {
		t.Errorf("TotalInvisibleCount = %d, want 1", result.TotalInvisibleCount)
	}
	if result.Findings[0].Char != "U+200B" {
		t.Errorf("Findings[0].Char = %q, want U+200B", result.Findings[0].Char)
	}
	if result.SmartChars != nil {
		t.Error("SmartChars should be null when not requested")
	}
}

func TestServer_Scan_smartCharsRequested(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/scan",
		`{"text":"“Hello”","include_smart_chars":true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var result model.ScanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(result.SmartChars) != 2 {
		t.Errorf("len(SmartChars) = %d, want 2", len(result.SmartChars))
	}
}

func TestServer_Scan_emptyTextRejected(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/scan", `{"text":""}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("empty")) {
		t.Errorf("error body should mention empty text: %s", rec.Body)
	}
}

func TestServer_Scan_invalidBodyRejected(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/scan", `{not json`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestServer_Scan_textTooLong(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	srv.cfg.MaxScanTextLen = 5
	rec := postJSON(t, srv.Router(), "/api/v1/scan", `{"text":"too long for the limit"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("maximum length")) {
		t.Errorf("error body should mention length: %s", rec.Body)
	}
}

func TestServer_Clean(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/clean", `{"text":"Hello​world"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var result model.CleanResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if result.CleanedText != "Helloworld" {
		t.Errorf("CleanedText = %q, want Helloworld", result.CleanedText)
	}
	if result.CharsRemoved != 1 {
		t.Errorf("CharsRemoved = %d, want 1", result.CharsRemoved)
	}
}

func TestServer_Detect(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/detect", `{"text":"Some text to judge"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var report model.DetectReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(report.Results) != 1 {
		t.Fatalf("len(Results) = %d, want 1", len(report.Results))
	}
	if report.Results[0].Verdict != model.VerdictLikelyAI {
		t.Errorf("Verdict = %q, want likely_ai", report.Results[0].Verdict)
	}
	if report.Summary.Consensus != model.ConsensusLikelyAI {
		t.Errorf("Consensus = %q, want likely_ai", report.Summary.Consensus)
	}
}

func TestServer_Compare(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := postJSON(t, srv.Router(), "/api/v1/compare", `{"text":"Hello​world"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body: %s", rec.Code, rec.Body)
	}

	var report model.CompareReport
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if report.Comparison.CharsRemoved != 1 {
		t.Errorf("CharsRemoved = %d, want 1", report.Comparison.CharsRemoved)
	}
	if report.Disclaimer == "" {
		t.Error("Disclaimer should not be empty")
	}
}

func TestServer_ExperimentResults_notGenerated(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/experiment-results", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte("not yet generated")) {
		t.Errorf("error body = %s", rec.Body)
	}
}

func TestServer_ExperimentResults_served(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	artifact := `{"generated_at":"2026-01-01T00:00:00Z","runs":[]}`
	if err := os.WriteFile(srv.cfg.ExperimentFile, []byte(artifact), 0o600); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/experiment-results", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != artifact {
		t.Errorf("body = %s, want %s", rec.Body, artifact)
	}
}

func TestServer_CORSPreflight(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/scan", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

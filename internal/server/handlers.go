package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	"github.com/ghostedhq/ghostscan/internal/config"
	"github.com/ghostedhq/ghostscan/internal/detector"
	"github.com/ghostedhq/ghostscan/internal/scanner"
)

// scanRequest is the body of POST /api/v1/scan.
type scanRequest struct {
	Text              string `json:"text"`
	IncludeSmartChars bool   `json:"include_smart_chars"`
}

// cleanRequest is the body of POST /api/v1/clean.
type cleanRequest struct {
	Text                string `json:"text"`
	NormalizeSmartChars bool   `json:"normalize_smart_chars"`
}

// detectRequest is the body of POST /api/v1/detect.
type detectRequest struct {
	Text      string   `json:"text"`
	Detectors []string `json:"detectors"`
}

// compareRequest is the body of POST /api/v1/compare.
type compareRequest struct {
	Text                string   `json:"text"`
	Detectors           []string `json:"detectors"`
	NormalizeSmartChars bool     `json:"normalize_smart_chars"`
}

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// healthResponse is the body of GET /api/v1/health.
type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: s.version})
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.cfg.ValidateScanText(req.Text); err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scanner.Scan(req.Text, req.IncludeSmartChars))
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req cleanRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.cfg.ValidateScanText(req.Text); err != nil {
		writeValidationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scanner.Clean(req.Text, req.NormalizeSmartChars))
}

func (s *Server) handleDetect(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.cfg.ValidateDetectText(req.Text); err != nil {
		writeValidationError(w, err)
		return
	}

	results := s.registry.DetectAll(r.Context(), req.Text, req.Detectors)
	writeJSON(w, http.StatusOK, detector.Report(results))
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	if err := s.cfg.ValidateDetectText(req.Text); err != nil {
		writeValidationError(w, err)
		return
	}

	report := s.comparator.Compare(r.Context(), req.Text, req.Detectors, req.NormalizeSmartChars)
	writeJSON(w, http.StatusOK, report)
}

// handleExperimentResults serves the experiment artifact written by the
// experiment command. The artifact is optional; a missing file is a 404,
// not a server error.
func (s *Server) handleExperimentResults(w http.ResponseWriter, _ *http.Request) {
	data, err := os.ReadFile(s.cfg.ExperimentFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			writeJSON(w, http.StatusNotFound, errorResponse{
				Error: "Experiment results not yet generated. Run: ghostscan experiment",
			})
			return
		}
		s.logger.Error("read experiment results", "err", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to read experiment results"})
		return
	}

	// Sanity check so a truncated artifact never reaches clients.
	if !json.Valid(data) {
		s.logger.Error("experiment results artifact is not valid JSON", "path", s.cfg.ExperimentFile)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "experiment results artifact is corrupt"})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.logger.Debug("write experiment results", "err", err)
	}
}

// decodeBody parses the JSON request body into dst, writing a 400 and
// returning false on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return false
	}
	return true
}

// writeValidationError maps text validation failures to client errors.
func writeValidationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, config.ErrEmptyText):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text must not be empty"})
	case errors.Is(err, config.ErrTextTooLong):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "text exceeds the maximum length"})
	default:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
}

// writeJSON writes v as a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Encoding errors past this point mean the client went away; the
	// status line is already written, so there is nothing to report.
	_ = json.NewEncoder(w).Encode(v)
}

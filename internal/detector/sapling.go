package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// defaultSaplingURL is the Sapling AI detection endpoint.
const defaultSaplingURL = "https://api.sapling.ai/api/v1/aidetect"

// Sapling is the primary classifier detector. It is the only provider
// that returns sentence-level scores alongside the document score.
type Sapling struct {
	apiKey string
	url    string
	client *http.Client
}

// SaplingOption configures a Sapling detector.
type SaplingOption func(*Sapling)

// WithSaplingURL overrides the API endpoint. Used in tests.
func WithSaplingURL(url string) SaplingOption {
	return func(s *Sapling) {
		s.url = url
	}
}

// WithSaplingTimeout overrides the per-request timeout.
func WithSaplingTimeout(timeout time.Duration) SaplingOption {
	return func(s *Sapling) {
		s.client = newHTTPClient(timeout)
	}
}

// NewSapling creates a Sapling detector with the given API key.
// An empty key yields a detector that reports itself unavailable.
func NewSapling(apiKey string, opts ...SaplingOption) *Sapling {
	s := &Sapling{
		apiKey: apiKey,
		url:    defaultSaplingURL,
		client: newHTTPClient(30 * time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID implements Detector.
func (s *Sapling) ID() string { return "sapling" }

// DisplayName implements Detector.
func (s *Sapling) DisplayName() string { return "Sapling AI Detector" }

// Method implements Detector.
func (s *Sapling) Method() model.DetectionMethod { return model.MethodClassifier }

// Available implements Detector. Sapling requires an API key.
func (s *Sapling) Available() bool { return s.apiKey != "" }

// saplingRequest is the Sapling API request body.
type saplingRequest struct {
	Key        string `json:"key"`
	Text       string `json:"text"`
	SentScores bool   `json:"sent_scores"`
}

// saplingResponse is the Sapling API response body. Score is the AI
// probability directly.
type saplingResponse struct {
	Score          float64 `json:"score"`
	SentenceScores []struct {
		Sentence string  `json:"sentence"`
		Score    float64 `json:"score"`
	} `json:"sentence_scores"`
}

// Detect implements Detector.
func (s *Sapling) Detect(ctx context.Context, text string) (*model.DetectionResult, error) {
	body, err := json.Marshal(saplingRequest{Key: s.apiKey, Text: text, SentScores: true})
	if err != nil {
		return nil, &TransportError{Detector: s.ID(), Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Detector: s.ID(), Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &TransportError{Detector: s.ID(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Detector: s.ID(), Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Detector: s.ID(), Err: err}
	}

	var parsed saplingResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &TransportError{Detector: s.ID(), Err: fmt.Errorf("malformed response: %w", err)}
	}

	var sentenceScores []model.SentenceScore
	for _, item := range parsed.SentenceScores {
		sentenceScores = append(sentenceScores, model.SentenceScore{
			Sentence: item.Sentence,
			Score:    item.Score,
		})
	}

	return &model.DetectionResult{
		Detector:       s.ID(),
		DetectorName:   s.DisplayName(),
		Verdict:        model.VerdictFromScore(parsed.Score),
		AIScore:        parsed.Score,
		HumanScore:     1.0 - parsed.Score,
		Method:         s.Method(),
		Note:           "Primary detector. Trained on GPT-5, Claude 4.5, Gemini 2.5, DeepSeek-V3.",
		SentenceScores: sentenceScores,
	}, nil
}

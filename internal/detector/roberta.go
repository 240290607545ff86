package detector

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// defaultHFBaseURL is the HuggingFace inference API base URL.
const defaultHFBaseURL = "https://api-inference.huggingface.co/models"

// robertaMaxChars bounds the input sent to RoBERTa models, which accept
// at most 512 tokens.
const robertaMaxChars = 512

// Roberta is a classifier detector backed by a RoBERTa model served via
// the HuggingFace inference API. Multiple instances with different model
// IDs can be registered side by side.
type Roberta struct {
	id          string
	displayName string
	modelID     string
	apiToken    string
	baseURL     string
	client      *http.Client
}

// RobertaOption configures a Roberta detector.
type RobertaOption func(*Roberta)

// WithRobertaBaseURL overrides the inference API base URL. Used in tests.
func WithRobertaBaseURL(url string) RobertaOption {
	return func(r *Roberta) {
		r.baseURL = url
	}
}

// WithRobertaTimeout overrides the per-request timeout.
func WithRobertaTimeout(timeout time.Duration) RobertaOption {
	return func(r *Roberta) {
		r.client = newHTTPClient(timeout)
	}
}

// NewRoberta creates a RoBERTa detector for the given model.
// An empty token yields a detector that reports itself unavailable.
func NewRoberta(id, displayName, modelID, apiToken string, opts ...RobertaOption) *Roberta {
	r := &Roberta{
		id:          id,
		displayName: displayName,
		modelID:     modelID,
		apiToken:    apiToken,
		baseURL:     defaultHFBaseURL,
		client:      newHTTPClient(60 * time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID implements Detector.
func (r *Roberta) ID() string { return r.id }

// DisplayName implements Detector.
func (r *Roberta) DisplayName() string { return r.displayName }

// Method implements Detector.
func (r *Roberta) Method() model.DetectionMethod { return model.MethodClassifier }

// Available implements Detector. The inference API requires a token.
func (r *Roberta) Available() bool { return r.apiToken != "" }

// hfLabel is one label/score pair from the inference API.
type hfLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Detect implements Detector.
func (r *Roberta) Detect(ctx context.Context, text string) (*model.DetectionResult, error) {
	body, err := json.Marshal(map[string]string{"inputs": truncateRunes(text, robertaMaxChars)})
	if err != nil {
		return nil, &TransportError{Detector: r.id, Err: err}
	}

	url := r.baseURL + "/" + r.modelID
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Detector: r.id, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.apiToken)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, &TransportError{Detector: r.id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Detector: r.id, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Detector: r.id, Err: err}
	}

	aiScore := extractAIScore(data)

	return &model.DetectionResult{
		Detector:     r.id,
		DetectorName: r.displayName,
		Verdict:      model.VerdictFromScore(aiScore),
		AIScore:      aiScore,
		HumanScore:   1.0 - aiScore,
		Method:       r.Method(),
		Note:         fmt.Sprintf("Open-source classifier (%s). Analyzes first 512 tokens.", r.modelID),
	}, nil
}

// extractAIScore maps a HuggingFace classification response to an AI
// probability. Different models use different label conventions:
//   - openai-community: "Fake" (AI) / "Real" (human)
//   - coai: "LABEL_1" (AI) / "LABEL_0" (human)
//
// The response is [[{label, score}, ...]] or a flat list. Unrecognized
// labels fall back to the first label's raw score; an empty or
// unparseable response degrades to the neutral 0.5.
func extractAIScore(data []byte) float64 {
	var nested [][]hfLabel
	var labels []hfLabel
	if err := json.Unmarshal(data, &nested); err == nil && len(nested) > 0 {
		labels = nested[0]
	} else if err := json.Unmarshal(data, &labels); err != nil {
		return 0.5
	}

	for _, item := range labels {
		label := strings.ToUpper(item.Label)

		switch label {
		case "FAKE", "LABEL_1":
			return item.Score
		case "REAL", "LABEL_0":
			return 1.0 - item.Score
		}

		if strings.Contains(label, "AI") || strings.Contains(label, "GENERATED") || strings.Contains(label, "FAKE") {
			return item.Score
		}
	}

	if len(labels) > 0 {
		return labels[0].Score
	}
	return 0.5
}

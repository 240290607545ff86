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

// defaultGroqURL is the Groq OpenAI-compatible chat completion endpoint.
const defaultGroqURL = "https://api.groq.com/openai/v1/chat/completions"

// llamaModel is the judge model. The instant tier keeps latency inside
// the request-path timeout budget.
const llamaModel = "llama-3.1-8b-instant"

// llamaMaxChars bounds the text sent to the judge; anything beyond the
// first few thousand characters adds cost without changing the verdict.
const llamaMaxChars = 3000

// System prompts for the two judge strategies. These are part of the
// detector contract: the model is instructed to answer with a bare JSON
// object, which parseJudgeResponse then extracts tolerantly.
const (
	stylisticSystemPrompt = `You are a text analysis tool that detects stylistic markers of AI-generated content.

Analyze the text for these specific markers:
- Hedging phrases ("It's important to note", "It's worth mentioning")
- Excessive em-dash usage
- Overly balanced/diplomatic tone
- Generic transitions ("Furthermore", "Moreover", "Additionally")
- Lists that are too perfectly structured
- Lack of personal voice or specific details

Respond with ONLY valid JSON:
{"ai_probability": <float 0.0 to 1.0>, "markers_found": ["list"], "reasoning": "1-2 sentences"}`

	structuralSystemPrompt = `You are a text analysis tool that detects structural patterns of AI-generated content.

Analyze the text for these patterns:
- Uniform paragraph lengths
- Consistent sentence length (low variance)
- Repetitive sentence structures
- Vocabulary that is unusually consistent in register
- Perfect grammar with no natural errors
- Formulaic introduction/conclusion patterns

Respond with ONLY valid JSON:
{"ai_probability": <float 0.0 to 1.0>, "patterns_found": ["list"], "reasoning": "1-2 sentences"}`
)

// Llama is an LLM-judge detector backed by a Groq-hosted Llama model.
// Two instances with different prompts analyze stylistic and structural
// signals independently.
type Llama struct {
	id           string
	displayName  string
	apiKey       string
	systemPrompt string
	url          string
	client       *http.Client
}

// LlamaOption configures a Llama detector.
type LlamaOption func(*Llama)

// WithLlamaURL overrides the API endpoint. Used in tests.
func WithLlamaURL(url string) LlamaOption {
	return func(l *Llama) {
		l.url = url
	}
}

// WithLlamaTimeout overrides the per-request timeout.
func WithLlamaTimeout(timeout time.Duration) LlamaOption {
	return func(l *Llama) {
		l.client = newHTTPClient(timeout)
	}
}

// NewLlamaStylistic creates the stylistic-marker judge.
func NewLlamaStylistic(apiKey string, opts ...LlamaOption) *Llama {
	return newLlama("groq_stylistic", "Llama Stylistic Analyzer", apiKey, stylisticSystemPrompt, opts...)
}

// NewLlamaStructural creates the structural-pattern judge.
func NewLlamaStructural(apiKey string, opts ...LlamaOption) *Llama {
	return newLlama("groq_structural", "Llama Structural Analyzer", apiKey, structuralSystemPrompt, opts...)
}

func newLlama(id, displayName, apiKey, systemPrompt string, opts ...LlamaOption) *Llama {
	l := &Llama{
		id:           id,
		displayName:  displayName,
		apiKey:       apiKey,
		systemPrompt: systemPrompt,
		url:          defaultGroqURL,
		client:       newHTTPClient(30 * time.Second),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ID implements Detector.
func (l *Llama) ID() string { return l.id }

// DisplayName implements Detector.
func (l *Llama) DisplayName() string { return l.displayName }

// Method implements Detector.
func (l *Llama) Method() model.DetectionMethod { return model.MethodLLMAnalysis }

// Available implements Detector. Groq requires an API key.
func (l *Llama) Available() bool { return l.apiKey != "" }

// chatMessage is one message in a chat completion request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the OpenAI-compatible chat completion request body.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

// chatResponse is the part of the chat completion response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// judgeVerdict is the JSON object the judge is prompted to return.
// MarkersFound and PatternsFound are the same field under the two
// prompt variants.
type judgeVerdict struct {
	AIProbability *float64 `json:"ai_probability"`
	MarkersFound  []string `json:"markers_found"`
	PatternsFound []string `json:"patterns_found"`
	Reasoning     string   `json:"reasoning"`
}

// Detect implements Detector.
func (l *Llama) Detect(ctx context.Context, text string) (*model.DetectionResult, error) {
	reqBody := chatRequest{
		Model: llamaModel,
		Messages: []chatMessage{
			{Role: "system", Content: l.systemPrompt},
			{Role: "user", Content: "Analyze this text:\n\n" + truncateRunes(text, llamaMaxChars)},
		},
		Temperature: 0.1,
		MaxTokens:   500,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, &TransportError{Detector: l.id, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.url, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Detector: l.id, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &TransportError{Detector: l.id, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{Detector: l.id, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Detector: l.id, Err: err}
	}

	var completion chatResponse
	if err := json.Unmarshal(data, &completion); err != nil {
		return nil, &TransportError{Detector: l.id, Err: fmt.Errorf("malformed response: %w", err)}
	}

	content := ""
	if len(completion.Choices) > 0 {
		content = completion.Choices[0].Message.Content
	}

	verdict := parseJudgeResponse(content)

	aiScore := 0.5
	if verdict.AIProbability != nil {
		aiScore = clamp01(*verdict.AIProbability)
	}

	markers := verdict.MarkersFound
	if len(markers) == 0 {
		markers = verdict.PatternsFound
	}

	var noteParts []string
	if len(markers) > 0 {
		if len(markers) > 5 {
			markers = markers[:5]
		}
		noteParts = append(noteParts, "Markers: "+strings.Join(markers, ", "))
	}
	if verdict.Reasoning != "" {
		noteParts = append(noteParts, verdict.Reasoning)
	}
	note := "LLM-based analysis."
	if len(noteParts) > 0 {
		note = strings.Join(noteParts, ". ")
	}

	return &model.DetectionResult{
		Detector:     l.id,
		DetectorName: l.displayName,
		Verdict:      model.VerdictFromScore(aiScore),
		AIScore:      aiScore,
		HumanScore:   1.0 - aiScore,
		Method:       l.Method(),
		Note:         note,
	}, nil
}

// parseJudgeResponse extracts the verdict JSON from the judge's reply.
// Models wrap their answer in markdown code fences or surround it with
// stray prose despite the prompt, so parsing is best-effort: strip
// fences first, then fall back to the outermost brace span. Anything
// unparseable yields the zero verdict, which the caller maps to the
// neutral 0.5 score.
//
// This tolerance is deliberately confined here so a parsing failure
// never crosses into the registry's typed result contract.
func parseJudgeResponse(content string) judgeVerdict {
	text := strings.TrimSpace(content)
	if strings.HasPrefix(text, "```") {
		if _, rest, ok := strings.Cut(text, "\n"); ok {
			text = rest
		}
		text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	}

	var verdict judgeVerdict
	if err := json.Unmarshal([]byte(text), &verdict); err == nil {
		return verdict
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(text[start:end+1]), &verdict); err == nil {
			return verdict
		}
	}

	return judgeVerdict{}
}

// clamp01 clamps a probability into [0,1].
func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

package detector

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ghostedhq/ghostscan/internal/model"
)

// Detector is the interface every external detection provider implements.
//
// Design decision: We use an interface rather than a concrete type because:
//  1. Providers differ vastly in wire formats (scalar classifiers vs
//     LLM judges returning loosely-formed JSON)
//  2. Allows for easy mocking in tests
//  3. The registry can treat all providers uniformly
type Detector interface {
	// ID returns the stable detector identifier (e.g. "sapling").
	ID() string

	// DisplayName returns the human-readable detector name.
	DisplayName() string

	// Method identifies the detection approach.
	Method() model.DetectionMethod

	// Available reports whether the detector can currently run.
	// This is typically a credentials check, not a network probe.
	Available() bool

	// Detect scores the given text. Implementations must respect
	// context cancellation and return a TransportError for network
	// or non-2xx failures. Malformed provider responses degrade to
	// documented defaults instead of failing.
	Detect(ctx context.Context, text string) (*model.DetectionResult, error)
}

// TransportError reports a network, timeout, or HTTP status failure from
// a provider. The registry isolates these per detector; they never reach
// the caller of DetectAll.
type TransportError struct {
	// Detector is the failing detector's identifier.
	Detector string

	// Err is the underlying failure.
	Err error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("detector %s: %v", e.Detector, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// truncateRunes limits text to the first n code points. Provider limits
// are defined over characters, not bytes, so we slice runes.
func truncateRunes(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

// newHTTPClient builds the provider HTTP client with the per-request
// timeout baked in. Detector calls are fire-once with no retries in the
// request path, so the client timeout is the only failure budget.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// Timeouts mirror the latency characteristics of the external detector
// APIs; text limits protect the scanning engine and the providers from
// oversized inputs.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "ghostscan"

	// DefaultListenAddr is the default HTTP listen address for serve mode.
	DefaultListenAddr = ":8080"

	// DefaultClassifierTimeout applies to classifier-style detector APIs.
	// HuggingFace inference endpoints cold-start models on first use,
	// which can take tens of seconds, so this is generous.
	DefaultClassifierTimeout = 60 * time.Second

	// DefaultLLMTimeout applies to LLM-judge detector APIs. Chat
	// completions with a 500 token cap return well within this window.
	DefaultLLMTimeout = 30 * time.Second

	// DefaultMaxScanTextLen is the maximum input length in code points
	// for scan and clean operations. Scanning is cheap, so the limit is
	// high; it exists to bound response payloads, not CPU.
	DefaultMaxScanTextLen = 50000

	// DefaultMaxDetectTextLen is the maximum input length in code points
	// for detect and compare operations. Detector APIs truncate or
	// reject long inputs anyway, so accepting more would be misleading.
	DefaultMaxDetectTextLen = 10000

	// DefaultShutdownTimeout is the grace period for draining in-flight
	// HTTP requests on shutdown.
	DefaultShutdownTimeout = 10 * time.Second
)

// Config holds all configuration options for ghostscan.
// This struct is populated from CLI flags and the credentials file, then
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// ListenAddr is the HTTP listen address for serve mode.
	ListenAddr string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the credentials file. If empty, the
	// tool searches for .ghostscan in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// Credentials holds the detector API credentials loaded from the
	// credentials file and environment.
	Credentials Credentials

	// ClassifierTimeout is the per-request timeout for classifier APIs.
	ClassifierTimeout time.Duration

	// LLMTimeout is the per-request timeout for LLM-judge APIs.
	LLMTimeout time.Duration

	// MaxScanTextLen is the maximum scan/clean input length in code points.
	MaxScanTextLen int

	// MaxDetectTextLen is the maximum detect/compare input length in
	// code points.
	MaxDetectTextLen int

	// ExperimentFile is the path of the experiment results artifact.
	// The experiment command writes it; the HTTP surface reads it back.
	ExperimentFile string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because most defaults are non-zero (timeouts, limits).
// This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		ListenAddr:        DefaultListenAddr,
		ClassifierTimeout: DefaultClassifierTimeout,
		LLMTimeout:        DefaultLLMTimeout,
		MaxScanTextLen:    DefaultMaxScanTextLen,
		MaxDetectTextLen:  DefaultMaxDetectTextLen,
		ExperimentFile:    DefaultExperimentFile(),
	}
}

// DefaultExperimentFile returns the default path of the experiment
// results artifact, under the XDG data directory.
// On Linux: ~/.local/share/ghostscan/experiment_results.json
func DefaultExperimentFile() string {
	return filepath.Join(xdg.DataHome, AppName, "experiment_results.json")
}

// XDGDataDir returns the XDG data directory for ghostscan.
// This follows the XDG Base Directory Specification.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return ErrInvalidListenAddr
	}
	if c.ClassifierTimeout <= 0 || c.LLMTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxScanTextLen <= 0 || c.MaxDetectTextLen <= 0 {
		return ErrInvalidTextLimit
	}
	return nil
}

// ValidateScanText validates input text for scan and clean operations.
// Empty text is rejected before any core logic runs.
func (c *Config) ValidateScanText(text string) error {
	return validateText(text, c.MaxScanTextLen)
}

// ValidateDetectText validates input text for detect and compare operations.
func (c *Config) ValidateDetectText(text string) error {
	return validateText(text, c.MaxDetectTextLen)
}

// validateText checks length in code points, not bytes, because the
// published limits are defined over characters.
func validateText(text string, maxLen int) error {
	if text == "" {
		return ErrEmptyText
	}
	n := 0
	for range text {
		n++
		if n > maxLen {
			return ErrTextTooLong
		}
	}
	return nil
}

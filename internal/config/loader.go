package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default credentials file name.
const DefaultConfigFile = ".ghostscan"

// ErrConfigNotFound is returned when the credentials file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Credentials holds the API credentials for the external detectors.
// A detector whose credential is empty reports itself unavailable and is
// skipped by default; no credential is ever required to scan or clean.
type Credentials struct {
	// SaplingAPIKey authenticates against the Sapling AI detection API.
	SaplingAPIKey string `yaml:"sapling_api_key,omitempty"`

	// HFAPIToken authenticates against the HuggingFace inference API.
	HFAPIToken string `yaml:"hf_api_token,omitempty"`

	// GroqAPIKey authenticates against the Groq chat completion API.
	GroqAPIKey string `yaml:"groq_api_key,omitempty"`
}

// LoadCredentialsFile loads detector credentials from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers
// should handle this error based on whether the path was explicitly
// specified by the user.
func LoadCredentialsFile(path string) (Credentials, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, ErrConfigNotFound
		}
		return Credentials{}, err
	}

	var creds Credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// FindConfigFile searches for the credentials file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .ghostscan in the current directory
// 3. Look for .ghostscan in the user's home directory
//
// Returns the path to the file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyEnv overrides credentials from environment variables. Environment
// variables win over the credentials file so deployments can inject keys
// without writing them to disk.
func (c *Credentials) ApplyEnv() {
	if v := os.Getenv("GHOSTSCAN_SAPLING_API_KEY"); v != "" {
		c.SaplingAPIKey = v
	}
	if v := os.Getenv("GHOSTSCAN_HF_API_TOKEN"); v != "" {
		c.HFAPIToken = v
	}
	if v := os.Getenv("GHOSTSCAN_GROQ_API_KEY"); v != "" {
		c.GroqAPIKey = v
	}
}

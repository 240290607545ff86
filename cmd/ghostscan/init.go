package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

//go:embed templates/ghostscan.yaml
var configTemplate embed.FS

// configFileName is the default credentials file name.
const configFileName = ".ghostscan"

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new ghostscan credentials file",
		Long: `Initialize creates a new .ghostscan credentials file in the current
directory.

The generated file documents every supported detector credential and the
matching environment variables. All keys start out commented; uncomment
and fill in the ones you have.

Examples:
  # Create .ghostscan in current directory
  ghostscan init

  # Create credentials file at a specific path
  ghostscan init -o mycreds.yaml

  # Force overwrite existing file
  ghostscan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", configFileName,
		"Output file path for the credentials file")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing credentials file")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	// Check if file already exists
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("credentials file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	// Read template from embedded filesystem
	content, err := configTemplate.ReadFile("templates/ghostscan.yaml")
	if err != nil {
		return fmt.Errorf("failed to read credentials template: %w", err)
	}

	// Create parent directories if needed
	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Credentials are secrets, so the file is owner-readable only
	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created credentials file: %s\n", outputPath)
	fmt.Fprintln(out, "\nUncomment and fill in the API keys for the detectors you want to use:")
	fmt.Fprintln(out, "  - sapling_api_key (Sapling AI detector)")
	fmt.Fprintln(out, "  - hf_api_token (HuggingFace RoBERTa classifiers)")
	fmt.Fprintln(out, "  - groq_api_key (Llama judges)")

	return nil
}

// Package main provides the entry point for the ghostscan CLI.
//
// Ghostscan detects invisible Unicode characters hidden in text, strips
// them out, and measures how third-party AI-text detectors react to the
// difference.
//
// Usage:
//
//	ghostscan scan "some text"
//	ghostscan compare --file essay.txt
//	ghostscan serve
//
// See --help for all available options.
package main

// main is the entry point for ghostscan.
func main() {
	Execute()
}

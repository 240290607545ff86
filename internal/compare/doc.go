// Package compare implements the before/after comparison: it scans and
// cleans a text, runs the detector batch against both versions, and
// diffs the verdicts to judge whether the detectors reacted to invisible
// byte patterns or to the content itself.
package compare

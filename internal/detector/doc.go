// Package detector integrates external AI text detection services.
//
// Each provider implements the Detector interface; the Registry fans out
// detection requests to the selected providers concurrently and collects
// whatever succeeds. A failing detector never aborts the batch: its
// error is logged and its result is simply absent from the output.
package detector

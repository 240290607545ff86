// Package model defines the data structures shared across ghostscan.
//
// It contains the static character classification tables, the scan and
// clean result types, the detector result types, and the before/after
// comparison types. All types in this package are plain data with no
// I/O; they are safe to construct and read from any goroutine.
package model

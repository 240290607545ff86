// Package scanner implements the invisible character scanning and
// cleaning engine.
//
// Both Scan and Clean are pure functions over the input text: they walk
// the code points exactly once, never mutate their input, never fail for
// any well-formed string, and hold no state between calls. They are safe
// to call from any number of goroutines without locking.
package scanner

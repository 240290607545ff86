// Package experiment measures how invisible character injection shifts
// AI detector scores on known-human text.
//
// The experiment takes a fixed corpus of human-written samples, injects
// each tested character at several densities, scores the original and
// injected variants against classifier detectors, and aggregates the
// score deltas and verdict flips per character. The result is written
// as a JSON artifact that the HTTP surface serves read-only; it is the
// empirical basis for the threat levels the scanner assigns.
package experiment

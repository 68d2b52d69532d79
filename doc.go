// Package dtwalign computes a minimum-cost monotone alignment between
// two sequences of MFCC frames using dynamic time warping (DTW).
//
// Two engines are provided: an exact O(n*m) algorithm and a
// Sakoe-Chiba banded (stripe) O(n*delta) approximation. An Aligner
// selects between them from a Config and translates the resulting
// path back into absolute frame indices of the original, untrimmed
// real sequence.
//
// This package is a pure computation library: it does not decode
// audio, extract MFCCs, perform voice-activity detection, or own a
// CLI. Callers hand it two dense MFCC matrices and read back a path.
package dtwalign

package dtwalign

import "errors"

// Sentinel errors returned by this package. Wrap with fmt.Errorf and %w
// at the point of detection so callers can still use errors.Is.
var (
	// ErrInvalidMFCC is returned when an MFCC matrix is missing, has
	// fewer than two cepstral coefficient rows, or has zero frames.
	ErrInvalidMFCC = errors.New("dtwalign: invalid mfcc matrix")

	// ErrInvalidAlgorithm is returned when a Config names an algorithm
	// outside {AlgorithmExact, AlgorithmStripe}, and also when its
	// MFCCWinShift is not positive or its DTWMargin is negative.
	ErrInvalidAlgorithm = errors.New("dtwalign: invalid algorithm")

	// ErrInvalidDelta is returned when the computed stripe width is
	// not a positive integer.
	ErrInvalidDelta = errors.New("dtwalign: invalid delta")

	// ErrNotInitialized is returned by NewAligner when either MFCC
	// sequence is nil.
	ErrNotInitialized = errors.New("dtwalign: aligner not initialized")

	// ErrNativeComputationFailed is returned only when both a
	// registered native engine and the portable fallback fail.
	ErrNativeComputationFailed = errors.New("dtwalign: native and portable computation both failed")
)

package dtwalign

import "runtime"

// Algorithm names a DTW engine.
type Algorithm string

const (
	// AlgorithmExact selects the full O(n*m) DTW engine.
	AlgorithmExact Algorithm = "exact"

	// AlgorithmStripe selects the banded Sakoe-Chiba O(n*delta) engine.
	AlgorithmStripe Algorithm = "stripe"
)

// allowedAlgorithms lists the values Config.Algorithm may take.
var allowedAlgorithms = map[Algorithm]bool{
	AlgorithmExact:  true,
	AlgorithmStripe: true,
}

// Config parameterizes algorithm selection and stripe width
// derivation.
type Config struct {
	// Algorithm is the caller's preferred engine. It may be
	// overridden by the selection rule in Aligner when the stripe
	// width would cover the whole synthesized sequence and
	// NativeAvailable is false.
	Algorithm Algorithm

	// DTWMargin is the Sakoe-Chiba margin, in seconds.
	DTWMargin float64

	// MFCCWinShift is the MFCC frame shift, in seconds. Must be > 0.
	MFCCWinShift float64

	// NativeAvailable reports whether a native fast-path engine is
	// registered and should be preferred even when the stripe would
	// span the entire synthesized length.
	NativeAvailable bool

	// Parallelism bounds the number of worker goroutines used to
	// build cost-matrix rows concurrently. Values <= 1 run fully
	// sequentially. Defaults to runtime.NumCPU() via DefaultConfig.
	Parallelism int
}

// DefaultConfig returns a Config defaulting to the stripe algorithm
// with a 60 second margin and a 40 millisecond frame shift.
func DefaultConfig() Config {
	p := runtime.NumCPU()
	if p < 1 {
		p = 1
	}
	return Config{
		Algorithm:       AlgorithmStripe,
		DTWMargin:       60.0,
		MFCCWinShift:    0.040,
		NativeAvailable: false,
		Parallelism:     p,
	}
}

// validate checks the Config fields that can be validated without
// reference to the MFCC matrices being aligned.
func (c Config) validate() error {
	if !allowedAlgorithms[c.Algorithm] {
		return ErrInvalidAlgorithm
	}
	if c.MFCCWinShift <= 0 {
		return ErrInvalidAlgorithm
	}
	if c.DTWMargin < 0 {
		return ErrInvalidAlgorithm
	}
	return nil
}

func (c Config) parallelism() int {
	if c.Parallelism > 0 {
		return c.Parallelism
	}
	return 1
}

// Logger receives debug traces of the decisions the aligner makes
// (requested vs. selected algorithm, computed delta, fallback to the
// portable path). A Logger is never required: NewAligner defaults to
// a no-op implementation when none is supplied.
type Logger interface {
	Debugf(format string, args ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...interface{}) {}

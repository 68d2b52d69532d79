package dtwalign

import "fmt"

// Aligner validates two MFCC sequences, derives the stripe width from
// Config, selects between the exact and banded DTW engines, and
// offsets the returned real-side indices by the real sequence's head
// trim length.
type Aligner struct {
	real, synt *MFCC
	config     Config
	logger     Logger
}

// NewAligner validates real and synt eagerly and returns
// ErrNotInitialized / ErrInvalidMFCC / ErrInvalidAlgorithm rather than
// deferring validation to the first compute call.
func NewAligner(real, synt *MFCC, config Config, logger Logger) (*Aligner, error) {
	if logger == nil {
		logger = noopLogger{}
	}
	if real == nil || synt == nil {
		return nil, ErrNotInitialized
	}
	if err := real.validate(); err != nil {
		return nil, fmt.Errorf("real wave: %w", err)
	}
	if err := synt.validate(); err != nil {
		return nil, fmt.Errorf("synt wave: %w", err)
	}
	if real.coefficients() != synt.coefficients() {
		return nil, fmt.Errorf("%w: real has %d coefficients, synt has %d", ErrInvalidMFCC, real.coefficients(), synt.coefficients())
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &Aligner{real: real, synt: synt, config: config, logger: logger}, nil
}

// selectAlgorithm derives the stripe width and decides which engine
// to run:
//
//  1. delta = floor(2 * dtw_margin / mfcc_win_shift)
//  2. if m <= delta and native is unavailable, force exact;
//     if native is available, keep the configured algorithm (native
//     stripe is still preferred for speed).
func (a *Aligner) selectAlgorithm() (Algorithm, int) {
	m := a.synt.frames()
	delta := int(2 * a.config.DTWMargin / a.config.MFCCWinShift)

	algorithm := a.config.Algorithm
	a.logger.Debugf("requested algorithm=%s delta=%d m=%d", algorithm, delta, m)

	if m <= delta {
		if a.config.NativeAvailable {
			a.logger.Debugf("m<=delta but native engine available: keeping %s", algorithm)
		} else {
			a.logger.Debugf("m<=delta and no native engine: forcing exact algorithm")
			algorithm = AlgorithmExact
		}
	}
	return algorithm, delta
}

// ComputeAccumulatedCostMatrix runs the selected engine and returns
// its accumulated cost matrix A.
func (a *Aligner) ComputeAccumulatedCostMatrix() ([][]float64, error) {
	algorithm, delta := a.selectAlgorithm()

	switch algorithm {
	case AlgorithmExact:
		engine := newExactEngine(a.real, a.synt, a.config.parallelism())
		return engine.accumulatedCostMatrix(), nil
	case AlgorithmStripe:
		acm, _, _, err := runStripeWithFallback(a.real, a.synt, delta, a.config.parallelism(), a.logger)
		return acm, err
	default:
		return nil, ErrInvalidAlgorithm
	}
}

// ComputePath runs the selected engine, offsets every real-sequence
// index by the real wave's head length, and returns the two
// equal-length index sequences.
func (a *Aligner) ComputePath() (realIndices, syntIndices []int, err error) {
	algorithm, delta := a.selectAlgorithm()

	var path []indexPair
	switch algorithm {
	case AlgorithmExact:
		engine := newExactEngine(a.real, a.synt, a.config.parallelism())
		path = engine.bestPath()
	case AlgorithmStripe:
		_, _, p, fallbackErr := runStripeWithFallback(a.real, a.synt, delta, a.config.parallelism(), a.logger)
		if fallbackErr != nil {
			return nil, nil, fallbackErr
		}
		path = p
	default:
		return nil, nil, ErrInvalidAlgorithm
	}

	realIndices, syntIndices = offsetPath(path, a.real.HeadLength)
	return realIndices, syntIndices, nil
}

// offsetPath splits a path of absolute (real, synt) index pairs into
// two equal-length index slices, shifting every real-sequence index
// by headLength.
func offsetPath(path []indexPair, headLength int) (realIndices, syntIndices []int) {
	realIndices = make([]int, len(path))
	syntIndices = make([]int, len(path))
	for idx, p := range path {
		realIndices[idx] = p.i + headLength
		syntIndices[idx] = p.j
	}
	return realIndices, syntIndices
}

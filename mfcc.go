package dtwalign

import "fmt"

// MFCC wraps the "middle" region of an MFCC matrix handed to the
// aligner by an upstream MFCC-extraction collaborator, together with
// the head trim length needed to translate path indices back to the
// untrimmed real sequence.
//
// Matrix has shape (C, L): C rows of cepstral coefficients (C >= 2,
// row 0 is the energy coefficient and is dropped by the core) and L
// columns, one per time frame.
type MFCC struct {
	Matrix     [][]float64
	HeadLength int
}

// coefficients returns C, the number of cepstral coefficient rows.
func (m *MFCC) coefficients() int {
	if m == nil {
		return 0
	}
	return len(m.Matrix)
}

// frames returns L, the number of time frames (columns).
func (m *MFCC) frames() int {
	if m == nil || len(m.Matrix) == 0 {
		return 0
	}
	return len(m.Matrix[0])
}

// validate enforces C >= 2 and L >= 1, plus rectangularity (every row
// has the same length).
func (m *MFCC) validate() error {
	if m == nil || m.Matrix == nil {
		return fmt.Errorf("%w: mfcc matrix is nil", ErrInvalidMFCC)
	}
	if m.HeadLength < 0 {
		return fmt.Errorf("%w: head length must be non-negative, got %d", ErrInvalidMFCC, m.HeadLength)
	}
	c := len(m.Matrix)
	if c < 2 {
		return fmt.Errorf("%w: need at least 2 coefficient rows, got %d", ErrInvalidMFCC, c)
	}
	l := len(m.Matrix[0])
	if l == 0 {
		return fmt.Errorf("%w: mfcc matrix has zero frames", ErrInvalidMFCC)
	}
	for i, row := range m.Matrix {
		if len(row) != l {
			return fmt.Errorf("%w: row %d has %d frames, expected %d", ErrInvalidMFCC, i, len(row), l)
		}
	}
	return nil
}

// middle drops row 0 (the energy coefficient) and returns the reduced
// (C-1, L) view used by costKernel. It does not copy: the returned
// slice aliases the tail of m.Matrix.
func (m *MFCC) middle() [][]float64 {
	return m.Matrix[1:]
}

package dtwalign

import "math"

// stripeEngine implements the Sakoe-Chiba banded DTW algorithm: an
// n x delta banded cost matrix with per-row center offsets,
// accumulated in place, backtracked in band-local columns and
// emitted as absolute (real, synt) index pairs.
type stripeEngine struct {
	kernel *costKernel
	delta  int
}

// newStripeEngine clamps delta down to m before constructing the
// engine. It does not check that delta is positive.
func newStripeEngine(real, synt *MFCC, delta int, parallelism int) *stripeEngine {
	k := newCostKernel(real, synt, parallelism)
	if delta > k.m {
		delta = k.m
	}
	return &stripeEngine{kernel: k, delta: delta}
}

// accumulatedCostMatrix computes the banded accumulated cost matrix
// in place. off(i) = centers[i] - centers[i-1].
func (e *stripeEngine) accumulatedCostMatrix() ([][]float64, []int) {
	a, centers := e.kernel.stripeCostMatrix(e.delta)
	n, delta := len(a), e.delta

	for k := 1; k < delta; k++ {
		a[0][k] += a[0][k-1]
	}

	for i := 1; i < n; i++ {
		off := centers[i] - centers[i-1]
		row, prev := a[i], a[i-1]
		for k := 0; k < delta; k++ {
			costUp := math.Inf(1)
			if k+off < delta {
				costUp = prev[k+off]
			}
			costLeft := math.Inf(1)
			if k > 0 {
				costLeft = row[k-1]
			}
			costDiag := math.Inf(1)
			if d := k + off - 1; d >= 0 && d < delta {
				costDiag = prev[d]
			}
			row[k] += min3(costUp, costLeft, costDiag)
		}
	}
	return a, centers
}

// bestPath backtracks the banded accumulated cost matrix and emits
// absolute (real, synt) index pairs. The predecessor order and
// first-argmin tie-break match the exact engine exactly.
func (e *stripeEngine) bestPath() []indexPair {
	a, centers := e.accumulatedCostMatrix()
	return backtrackStripe(a, centers)
}

func backtrackStripe(a [][]float64, centers []int) []indexPair {
	n := len(a)
	delta := len(a[0])
	i := n - 1
	j := delta - 1 + centers[i]

	path := make([]indexPair, 0, maxInt(n, delta))
	path = append(path, indexPair{i, j})

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			off := centers[i] - centers[i-1]
			rj := j - centers[i]

			costUp := math.Inf(1)
			if rj+off < delta {
				costUp = a[i-1][rj+off]
			}
			costLeft := math.Inf(1)
			if rj > 0 {
				costLeft = a[i][rj-1]
			}
			costDiag := math.Inf(1)
			if d := rj + off - 1; rj > 0 && d >= 0 && d < delta {
				costDiag = a[i-1][d]
			}

			switch argmin3(costUp, costLeft, costDiag) {
			case 0:
				i--
			case 1:
				j--
			default:
				i--
				j--
			}
		}
		path = append(path, indexPair{i, j})
	}
	reversePath(path)
	return path
}

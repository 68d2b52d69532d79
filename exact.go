package dtwalign

// indexPair is an absolute (real, synt) frame index pair, a single
// point on a DTW alignment path.
type indexPair struct {
	i, j int
}

// exactEngine implements the classical O(n*m) DTW algorithm: dense
// cost matrix, in-place accumulation, and backtracking with
// deterministic tie-breaking.
type exactEngine struct {
	kernel *costKernel
}

func newExactEngine(real, synt *MFCC, parallelism int) *exactEngine {
	return &exactEngine{kernel: newCostKernel(real, synt, parallelism)}
}

// accumulatedCostMatrix computes A in place over the cost matrix C:
//
//	A[0,0]   = C[0,0]
//	A[0,j]   = A[0,j-1] + C[0,j]                                 (j>=1)
//	A[i,0]   = A[i-1,0] + C[i,0]                                 (i>=1)
//	A[i,j]   = C[i,j] + min(A[i-1,j], A[i,j-1], A[i-1,j-1])      (otherwise)
func (e *exactEngine) accumulatedCostMatrix() [][]float64 {
	a := e.kernel.exactCostMatrix()
	n, m := e.kernel.n, e.kernel.m

	for j := 1; j < m; j++ {
		a[0][j] += a[0][j-1]
	}
	for i := 1; i < n; i++ {
		row, prev := a[i], a[i-1]
		row[0] += prev[0]
		for j := 1; j < m; j++ {
			row[j] += min3(prev[j], row[j-1], prev[j-1])
		}
	}
	return a
}

// bestPath runs accumulation and backtracks the minimum-cost path.
// The predecessor order (up, left, diag) and first-argmin-wins
// tie-break must be reproduced exactly for the result to be
// deterministic across runs and across implementations.
func (e *exactEngine) bestPath() []indexPair {
	a := e.accumulatedCostMatrix()
	return backtrackExact(a)
}

func backtrackExact(a [][]float64) []indexPair {
	n := len(a)
	m := len(a[0])
	i, j := n-1, m-1

	path := make([]indexPair, 0, maxInt(n, m))
	path = append(path, indexPair{i, j})

	for i > 0 || j > 0 {
		switch {
		case i == 0:
			j--
		case j == 0:
			i--
		default:
			up, left, diag := a[i-1][j], a[i][j-1], a[i-1][j-1]
			switch argmin3(up, left, diag) {
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

// min3 returns the minimum of three values.
func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// argmin3 returns the index (0, 1 or 2) of the first minimum among
// up, left, diag, in that order.
func argmin3(up, left, diag float64) int {
	idx := 0
	best := up
	if left < best {
		best = left
		idx = 1
	}
	if diag < best {
		idx = 2
	}
	return idx
}

func reversePath(p []indexPair) {
	for l, r := 0, len(p)-1; l < r; l, r = l+1, r-1 {
		p[l], p[r] = p[r], p[l]
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

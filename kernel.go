package dtwalign

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"
)

// costKernel computes pairwise cosine distance between MFCC frame
// vectors. A zero-norm column is treated as cost 1 for every pairing
// it is involved in, rather than surfaced as an error.
type costKernel struct {
	// colsA and colsB are column-major views of the reduced (row 0
	// dropped) MFCC matrices: colsA[i] is frame i's coefficient
	// vector, contiguous so it can be fed to floats.Dot.
	colsA, colsB [][]float64
	normA, normB []float64
	n, m         int
	parallelism  int
}

// newCostKernel transposes the reduced MFCC matrices into column-major
// form and precomputes per-frame L2 norms once, up front, so every
// pairwise distance call reuses them instead of recomputing a norm.
func newCostKernel(mfcc1, mfcc2 *MFCC, parallelism int) *costKernel {
	a := mfcc1.middle()
	b := mfcc2.middle()
	k := &costKernel{
		n:           mfcc1.frames(),
		m:           mfcc2.frames(),
		parallelism: parallelism,
	}
	k.colsA = transpose(a, k.n)
	k.colsB = transpose(b, k.m)
	k.normA = columnNorms(k.colsA)
	k.normB = columnNorms(k.colsB)
	return k
}

// transpose turns a (C, L) row-major matrix into an (L, C) slice of
// contiguous per-column vectors.
func transpose(rows [][]float64, cols int) [][]float64 {
	c := len(rows)
	out := make([][]float64, cols)
	buf := make([]float64, cols*c)
	for j := 0; j < cols; j++ {
		out[j] = buf[j*c : j*c : j*c+c]
		for i := 0; i < c; i++ {
			out[j] = append(out[j], rows[i][j])
		}
	}
	return out
}

func columnNorms(cols [][]float64) []float64 {
	out := make([]float64, len(cols))
	for i, v := range cols {
		out[i] = floats.Norm(v, 2)
	}
	return out
}

// cosineDistance returns 1 - dot(u,v)/(|u|*|v|), defining the result
// as 1 when either norm is zero.
func cosineDistance(u, v []float64, normU, normV float64) float64 {
	if normU == 0 || normV == 0 {
		return 1
	}
	dot := floats.Dot(u, v)
	return clampFinite(1 - dot/(normU*normV))
}

// exactCostMatrix builds the dense n x m cost matrix. Rows have no
// recurrence between them, so they are filled by a worker-batch pool
// when parallelism > 1.
func (k *costKernel) exactCostMatrix() [][]float64 {
	cost := make([][]float64, k.n)
	for i := range cost {
		cost[i] = make([]float64, k.m)
	}

	fillRow := func(i int) {
		ui, normU := k.colsA[i], k.normA[i]
		row := cost[i]
		for j := 0; j < k.m; j++ {
			row[j] = cosineDistance(ui, k.colsB[j], normU, k.normB[j])
		}
	}
	runRowBatches(k.n, k.parallelism, fillRow)
	return cost
}

// stripeCostMatrix builds the banded n x delta cost matrix and the
// per-row center offsets. delta is assumed already clamped to m by
// the caller.
func (k *costKernel) stripeCostMatrix(delta int) ([][]float64, []int) {
	n, m := k.n, k.m
	cost := make([][]float64, n)
	centers := make([]int, n)

	fillRow := func(i int) {
		centerJ := (m * i) / n
		rangeStart := centerJ - delta/2
		if rangeStart < 0 {
			rangeStart = 0
		}
		rangeEnd := rangeStart + delta
		if rangeEnd > m {
			rangeEnd = m
			rangeStart = rangeEnd - delta
		}
		centers[i] = rangeStart

		ui, normU := k.colsA[i], k.normA[i]
		row := make([]float64, delta)
		for kk := 0; kk < delta; kk++ {
			j := rangeStart + kk
			row[kk] = cosineDistance(ui, k.colsB[j], normU, k.normB[j])
		}
		cost[i] = row
	}
	runRowBatches(n, k.parallelism, fillRow)
	return cost, centers
}

// runRowBatches partitions [0,n) into parallelism contiguous batches
// and runs fn(i) for every row, waiting for all batches to finish.
// parallelism <= 1 runs everything on the calling goroutine.
func runRowBatches(n, parallelism int, fn func(i int)) {
	if parallelism <= 1 || n <= 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}
	if parallelism > n {
		parallelism = n
	}
	batchSize := (n + parallelism - 1) / parallelism

	var wg sync.WaitGroup
	wg.Add(parallelism)
	for b := 0; b < parallelism; b++ {
		go func(start int) {
			defer wg.Done()
			end := start + batchSize
			if end > n {
				end = n
			}
			for i := start; i < end; i++ {
				fn(i)
			}
		}(b * batchSize)
	}
	wg.Wait()
}

// clampFinite clamps a non-finite cosine distance to the worst-case
// value of 2.
func clampFinite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 2
	}
	return v
}

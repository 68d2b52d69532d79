package dtwalign

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlignerValidation(t *testing.T) {
	valid := withEnergyRow(randomMatrix(3, 5, 1))
	cfg := DefaultConfig()

	testdata := []struct {
		name    string
		real    *MFCC
		synt    *MFCC
		cfg     Config
		wantErr error
	}{
		{"nil real", nil, valid, cfg, ErrNotInitialized},
		{"nil synt", valid, nil, cfg, ErrNotInitialized},
		{"empty matrix", &MFCC{}, valid, cfg, ErrInvalidMFCC},
		{"negative head length", &MFCC{Matrix: randomMatrix(3, 5, 2), HeadLength: -1}, valid, cfg, ErrInvalidMFCC},
		{"mismatched coefficients", withEnergyRow(randomMatrix(2, 5, 3)), valid, cfg, ErrInvalidMFCC},
		{"bad algorithm", valid, valid, Config{Algorithm: "bogus", MFCCWinShift: 0.04}, ErrInvalidAlgorithm},
		{"zero win shift", valid, valid, Config{Algorithm: AlgorithmExact, MFCCWinShift: 0}, ErrInvalidAlgorithm},
		{"valid", valid, valid, cfg, nil},
	}

	for _, d := range testdata {
		t.Run(d.name, func(t *testing.T) {
			a, err := NewAligner(d.real, d.synt, d.cfg, nil)
			if d.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, d.wantErr), "got %v, want wrapping %v", err, d.wantErr)
				assert.Nil(t, a)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, a)
		})
	}
}

func TestAlignerSelectAlgorithmForcesExactWithoutNative(t *testing.T) {
	real := withEnergyRow(randomMatrix(3, 5, 4))
	synt := withEnergyRow(randomMatrix(3, 5, 5))

	cfg := Config{
		Algorithm:       AlgorithmStripe,
		DTWMargin:       60,
		MFCCWinShift:    0.040,
		NativeAvailable: false,
		Parallelism:     1,
	}
	// delta = floor(2*60/0.040) = 3000, m = 5 <= delta, native
	// unavailable: algorithm must be forced to exact.
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	algorithm, _ := a.selectAlgorithm()
	assert.Equal(t, AlgorithmExact, algorithm)
}

func TestAlignerSelectAlgorithmKeepsStripeWithNative(t *testing.T) {
	real := withEnergyRow(randomMatrix(3, 5, 6))
	synt := withEnergyRow(randomMatrix(3, 5, 7))

	cfg := Config{
		Algorithm:       AlgorithmStripe,
		DTWMargin:       60,
		MFCCWinShift:    0.040,
		NativeAvailable: true,
		Parallelism:     1,
	}
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	algorithm, _ := a.selectAlgorithm()
	assert.Equal(t, AlgorithmStripe, algorithm)
}

func TestAlignerComputePathOffsetsByHeadLength(t *testing.T) {
	m := randomMatrix(3, 6, 8)
	real := &MFCC{Matrix: prependEnergyRow(m), HeadLength: 11}
	synt := withEnergyRow(m)

	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmExact
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	realIdx, syntIdx := must2(a.ComputePath())
	require.Equal(t, len(realIdx), len(syntIdx))
	assert.Equal(t, 11, realIdx[0])
	assert.Equal(t, 11+len(m[0])-1, realIdx[len(realIdx)-1])
	assert.Equal(t, 0, syntIdx[0])
	assert.Equal(t, len(m[0])-1, syntIdx[len(syntIdx)-1])
}

func TestAlignerComputeAccumulatedCostMatrixStripe(t *testing.T) {
	real := withEnergyRow(randomMatrix(3, 20, 9))
	synt := withEnergyRow(randomMatrix(3, 20, 10))

	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmStripe
	cfg.DTWMargin = 0.1
	cfg.MFCCWinShift = 0.040
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	acm, err := a.ComputeAccumulatedCostMatrix()
	require.NoError(t, err)
	require.NotEmpty(t, acm)
}

func TestAlignerNativeFallbackOnPanic(t *testing.T) {
	defer RegisterNativeStripe(nil)
	RegisterNativeStripe(func(real, synt *MFCC, delta int) ([][]float64, []int, []indexPair, error) {
		panic("simulated native crash")
	})

	real := withEnergyRow(randomMatrix(3, 8, 12))
	synt := withEnergyRow(randomMatrix(3, 8, 13))

	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmStripe
	cfg.NativeAvailable = true
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	realIdx, syntIdx, err := a.ComputePath()
	require.NoError(t, err)
	assert.NotEmpty(t, realIdx)
	assert.Equal(t, len(realIdx), len(syntIdx))
}

func TestAlignerNativeFallbackOnError(t *testing.T) {
	defer RegisterNativeStripe(nil)
	RegisterNativeStripe(func(real, synt *MFCC, delta int) ([][]float64, []int, []indexPair, error) {
		return nil, nil, nil, errors.New("native engine refused input")
	})

	real := withEnergyRow(randomMatrix(3, 8, 14))
	synt := withEnergyRow(randomMatrix(3, 8, 15))

	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmStripe
	cfg.NativeAvailable = true
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	realIdx, _, err := a.ComputePath()
	require.NoError(t, err)
	assert.NotEmpty(t, realIdx)
}

func TestAlignerNativeSuccessIsUsedDirectly(t *testing.T) {
	defer RegisterNativeStripe(nil)
	called := false
	RegisterNativeStripe(func(real, synt *MFCC, delta int) ([][]float64, []int, []indexPair, error) {
		called = true
		return [][]float64{{0}}, []int{0}, []indexPair{{0, 0}}, nil
	})

	real := withEnergyRow(randomMatrix(3, 8, 16))
	synt := withEnergyRow(randomMatrix(3, 8, 17))

	cfg := DefaultConfig()
	cfg.Algorithm = AlgorithmStripe
	cfg.NativeAvailable = true
	a, err := NewAligner(real, synt, cfg, nil)
	require.NoError(t, err)

	realIdx, syntIdx, err := a.ComputePath()
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, []int{0}, realIdx)
	assert.Equal(t, []int{0}, syntIdx)
}

func TestRunStripeWithFallbackBothFail(t *testing.T) {
	defer RegisterNativeStripe(nil)
	RegisterNativeStripe(func(real, synt *MFCC, delta int) ([][]float64, []int, []indexPair, error) {
		return nil, nil, nil, errors.New("native failure")
	})

	real := withEnergyRow(randomMatrix(2, 4, 18))
	synt := withEnergyRow(randomMatrix(2, 4, 19))

	_, _, _, err := runStripeWithFallback(real, synt, 0, 1, noopLogger{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNativeComputationFailed))
}

// --- helpers ---

func prependEnergyRow(reduced [][]float64) [][]float64 {
	energy := make([]float64, len(reduced[0]))
	out := make([][]float64, 0, len(reduced)+1)
	out = append(out, energy)
	return append(out, reduced...)
}

func must2(a, b []int, err error) ([]int, []int) {
	if err != nil {
		panic(err)
	}
	return a, b
}

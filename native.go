package dtwalign

import "fmt"

// nativeStripeEngine is the seam a compiled fast-path implementation
// would register itself through. No binding ships by default, so
// nativeStripe is nil unless a caller registers one via
// RegisterNativeStripe.
//
// A native engine is expected to be a drop-in numerical match for the
// portable stripe implementation on well-posed inputs. Any panic or
// error it returns triggers a single, silent fallback to the portable
// engine; only a failure of both paths surfaces ErrNativeComputationFailed.
type nativeStripeEngine func(real, synt *MFCC, delta int) (acm [][]float64, centers []int, path []indexPair, err error)

var nativeStripe nativeStripeEngine

// RegisterNativeStripe installs a native fast-path engine for the
// stripe algorithm. Passing nil removes any previously registered
// engine. This is a package-level seam, not mutable per-call state:
// it is expected to be set once, typically from an init function in
// a build-tag-gated file, before any alignment is performed.
func RegisterNativeStripe(engine nativeStripeEngine) {
	nativeStripe = engine
}

// runStripeWithFallback invokes the registered native engine, if any,
// and falls back to the portable stripeEngine on any failure —
// including a panic, which is recovered and treated as a failure.
// Failure of both paths is terminal.
func runStripeWithFallback(real, synt *MFCC, delta int, parallelism int, logger Logger) ([][]float64, []int, []indexPair, error) {
	nativeAttempted := nativeStripe != nil
	if nativeAttempted {
		acm, centers, path, ok := tryNative(real, synt, delta, logger)
		if ok {
			return acm, centers, path, nil
		}
	}

	if delta <= 0 {
		if nativeAttempted {
			// Both the native and portable paths have now failed.
			return nil, nil, nil, newNativeComputationFailedError(ErrInvalidDelta)
		}
		return nil, nil, nil, ErrInvalidDelta
	}

	engine := newStripeEngine(real, synt, delta, parallelism)
	path := engine.bestPath()
	acm, centers := engine.accumulatedCostMatrix()
	return acm, centers, path, nil
}

// tryNative invokes the registered native engine and recovers from
// any panic, returning ok=false on any failure so the caller falls
// back to the portable path.
func tryNative(real, synt *MFCC, delta int, logger Logger) (acm [][]float64, centers []int, path []indexPair, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			logger.Debugf("native stripe engine panicked: %v, falling back to portable implementation", r)
			ok = false
		}
	}()

	a, c, p, err := nativeStripe(real, synt, delta)
	if err != nil {
		logger.Debugf("native stripe engine failed: %v, falling back to portable implementation", err)
		return nil, nil, nil, false
	}
	return a, c, p, true
}

// newNativeComputationFailedError wraps ErrNativeComputationFailed
// with the portable fallback's own failure.
func newNativeComputationFailedError(cause error) error {
	return fmt.Errorf("%w: %v", ErrNativeComputationFailed, cause)
}

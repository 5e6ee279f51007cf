package nli

import "fmt"

// initFailure marks a fatal startup error: the model, tokenizer or adapter
// could not be loaded or placed on a device. The process must not serve
// traffic after one of these.
type initFailure struct{ err error }

func (e initFailure) Error() string { return "init: " + e.err.Error() }
func (e initFailure) Unwrap() error { return e.err }

// ErrInitFailure wraps err as a fatal initialization failure.
func ErrInitFailure(err error) error { return initFailure{err: err} }

// IsInitFailure reports whether err is a fatal initialization failure.
func IsInitFailure(err error) bool {
	_, ok := err.(initFailure)
	return ok
}

// inferenceFailure marks a single failed predict call. The engine remains
// usable for subsequent calls.
type inferenceFailure struct{ err error }

func (e inferenceFailure) Error() string { return "inference: " + e.err.Error() }
func (e inferenceFailure) Unwrap() error { return e.err }

// ErrInferenceFailure wraps err as a per-call inference failure.
func ErrInferenceFailure(err error) error { return inferenceFailure{err: err} }

// IsInferenceFailure reports whether err indicates a failed predict call
// (maps to 500 at the HTTP boundary).
func IsInferenceFailure(err error) bool {
	_, ok := err.(inferenceFailure)
	return ok
}

// pairFailure records the failing pair's position inside a batch.
type pairFailure struct {
	index int
	err   error
}

func (e pairFailure) Error() string { return fmt.Sprintf("pair %d: %v", e.index, e.err) }
func (e pairFailure) Unwrap() error { return e.err }

// ErrPairFailure wraps err as an isolated failure of the pair at index i.
func ErrPairFailure(i int, err error) error { return pairFailure{index: i, err: err} }

// IsPairFailure reports whether err is an isolated batch pair failure and, if
// so, returns the failing index.
func IsPairFailure(err error) (int, bool) {
	pf, ok := err.(pairFailure)
	if !ok {
		return 0, false
	}
	return pf.index, true
}

// dependencyUnavailableError signals a missing runtime dependency (e.g. the
// onnxruntime backend was not compiled in) so the HTTP layer can return
// 503 Service Unavailable instead of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// runtime dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}

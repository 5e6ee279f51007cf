package nli

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorPredicatesDoNotOverlap(t *testing.T) {
	initErr := ErrInitFailure(errors.New("weights corrupt"))
	infErr := ErrInferenceFailure(errors.New("oom"))
	pairErr := ErrPairFailure(2, infErr)
	depErr := ErrDependencyUnavailable("runtime missing")

	if !IsInitFailure(initErr) || IsInitFailure(infErr) || IsInitFailure(depErr) {
		t.Fatal("init predicate mismatch")
	}
	if !IsInferenceFailure(infErr) || IsInferenceFailure(initErr) {
		t.Fatal("inference predicate mismatch")
	}
	if _, ok := IsPairFailure(pairErr); !ok {
		t.Fatal("pair predicate mismatch")
	}
	if _, ok := IsPairFailure(infErr); ok {
		t.Fatal("pair predicate matched non-pair error")
	}
	if !IsDependencyUnavailable(depErr) || IsDependencyUnavailable(infErr) {
		t.Fatal("dependency predicate mismatch")
	}
}

func TestPairFailureCarriesIndexAndCause(t *testing.T) {
	cause := errors.New("bad token")
	err := ErrPairFailure(4, cause)
	idx, ok := IsPairFailure(err)
	if !ok || idx != 4 {
		t.Fatalf("idx=%d ok=%v", idx, ok)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause not unwrapped")
	}
	want := fmt.Sprintf("pair %d: %v", 4, cause)
	if err.Error() != want {
		t.Fatalf("msg=%q want %q", err.Error(), want)
	}
}

func TestInferenceFailureUnwraps(t *testing.T) {
	cause := errors.New("forward pass exploded")
	err := ErrInferenceFailure(cause)
	if !errors.Is(err, cause) {
		t.Fatal("cause not unwrapped")
	}
}

package anneal

import (
	"errors"
	"fmt"
)

// Sentinel errors a caller can match with errors.Is.
var (
	// ErrInvalidConfig is returned (wrapped with detail) from Run when
	// the supplied Config fails validation. The loop never begins.
	ErrInvalidConfig = errors.New("anneal: invalid configuration")

	// ErrCloneFailed is returned (wrapped with detail) when
	// Config.CloneState panics or otherwise cannot produce a usable
	// copy. This is fatal: the loop aborts and returns whatever
	// best-known state it had assembled so far, with Solution.Status
	// set to StatusError.
	ErrCloneFailed = errors.New("anneal: clone failed")

	// errGeneratorFailed marks a recovered panic from a MoveGenerator,
	// logged at error level and treated as a skipped iteration rather
	// than a fatal run error. It is not exported: callers never see a
	// live generator error, only its effect on counters.
	errGeneratorFailed = errors.New("anneal: move generator panicked")
)

func errCloneRecovered(r any) error {
	return fmt.Errorf("%w: %v", ErrCloneFailed, r)
}

func errGenerateRecovered(r any) error {
	return fmt.Errorf("%w: %v", errGeneratorFailed, r)
}

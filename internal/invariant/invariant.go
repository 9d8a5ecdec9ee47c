// Package invariant implements small contract-assertion helpers in the
// style of core/invariant.go: panics for programming errors that indicate a
// broken internal contract, never for malformed user input. Callers in this
// module reserve these for states the normalizer and simulator construct
// themselves (e.g. "this path element must be a Binary node") where a
// violation can only mean a bug in this package.
package invariant

import "fmt"

// Precondition panics if cond is false, reporting that a function was
// called with an argument that violates its contract.
func Precondition(cond bool, format string, args ...any) {
	if !cond {
		fail("precondition", format, args...)
	}
}

// Invariant panics if cond is false, reporting that state assumed to hold
// throughout an operation has been violated.
func Invariant(cond bool, format string, args ...any) {
	if !cond {
		fail("invariant", format, args...)
	}
}

// Postcondition panics if cond is false, reporting that a function is about
// to return a result that violates its own contract.
func Postcondition(cond bool, format string, args ...any) {
	if !cond {
		fail("postcondition", format, args...)
	}
}

// NotNil panics if v is nil.
func NotNil(v any, format string, args ...any) {
	if v == nil {
		fail("precondition", format, args...)
	}
}

func fail(kind, format string, args ...any) {
	panic(fmt.Sprintf("%s violated: %s", kind, fmt.Sprintf(format, args...)))
}

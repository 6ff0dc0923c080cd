//go:build !mazedebug

package dfsmaze

import "fmt"

// Reports a broken internal invariant as an error. Build with -tags
// mazedebug to turn these into panics.
func invariantViolation(format string, args ...interface{}) error {
	e := fmt.Errorf("%w: "+format, append([]interface{}{ErrInternalInvariant},
		args...)...)
	Logger().Error("internal invariant violated", "error", e)
	return e
}

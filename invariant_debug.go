//go:build mazedebug

package dfsmaze

import "fmt"

// Debug builds treat a broken internal invariant as fatal.
func invariantViolation(format string, args ...interface{}) error {
	panic(fmt.Errorf("%w: "+format, append([]interface{}{ErrInternalInvariant},
		args...)...))
}

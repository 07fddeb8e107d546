//go:build debug

package algo

import "fmt"

// assertf panics with the formatted message if cond is false.
// Only enabled with -tags debug.
func assertf(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

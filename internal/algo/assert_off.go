//go:build !debug

package algo

// assertf is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertf(bool, string, ...any) {}

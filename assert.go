//go:build debug

package bptree

// assertInvariants panics if the tree fails verification.
// Only enabled with -tags debug.
func (t *Tree[K, V]) assertInvariants() {
	if err := t.verify(); err != nil {
		panic(err)
	}
}

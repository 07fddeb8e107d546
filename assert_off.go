//go:build !debug

package bptree

// assertInvariants is a no-op in production.
// Enable with -tags debug to verify the tree after every mutation.
func (t *Tree[K, V]) assertInvariants() {}

package bptree

import (
	"errors"
)

var (
	// ErrEmptyTree is returned by operations that need a root when the tree holds no keys.
	ErrEmptyTree = errors.New("tree is empty")
	// ErrKeyNotFound is returned by lookups and deletes of an absent key.
	ErrKeyNotFound = errors.New("key not found")
	// ErrInvalidConfiguration is returned by constructors given an unusable degree.
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrInvariantViolated is returned by Verify when the node graph is inconsistent.
	ErrInvariantViolated = errors.New("tree invariant violated")
)

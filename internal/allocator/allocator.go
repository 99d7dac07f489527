// Package allocator provides the process-wide buffer allocator hook that
// pathobj.Path uses when it needs to grow its backing storage.
//
// The original SDK exposes this as a pair of function pointers
// (fs::SetAllocator) installed once at process start; this package
// generalizes that to a small interface with a package-level default and a
// one-shot Set, per SPEC_FULL.md §6.3/§9.
package allocator

import (
	"errors"
	"sync"
)

// Allocator allocates and releases byte buffers on behalf of pathobj.Path.
type Allocator interface {
	Alloc(size int) []byte
	Free(buf []byte)
}

type defaultAllocator struct{}

func (defaultAllocator) Alloc(size int) []byte { return make([]byte, size) }
func (defaultAllocator) Free(buf []byte)       {}

var (
	mu      sync.Mutex
	current Allocator = defaultAllocator{}
	isSet   bool
)

// ErrAlreadySet is returned by Set when a non-default allocator has already
// been installed. The original SDK only allows one SetAllocator call per
// process; this package keeps that constraint.
var ErrAlreadySet = errors.New("allocator: already set")

// Set installs a as the process-wide allocator. It may be called at most
// once; subsequent calls return ErrAlreadySet.
func Set(a Allocator) error {
	mu.Lock()
	defer mu.Unlock()
	if isSet {
		return ErrAlreadySet
	}
	current = a
	isSet = true
	return nil
}

// Alloc requests a size-byte buffer from the current allocator.
func Alloc(size int) []byte {
	mu.Lock()
	a := current
	mu.Unlock()
	return a.Alloc(size)
}

// Free releases buf back to the current allocator.
func Free(buf []byte) {
	mu.Lock()
	a := current
	mu.Unlock()
	a.Free(buf)
}

// Package compaction is a declared but intentionally unimplemented part of
// the engine's surface. Merging obsolete
// segments — reclaiming the disk space a key's superseded writes and
// tombstones leave behind — is out of scope for this store; the type exists
// so the engine has somewhere to hang the operation once it is implemented,
// without changing the engine's public shape today.
package compaction

import "github.com/marselester/ignite/pkg/errors"

// Compaction is a placeholder for the background process that would merge
// sealed segments and discard obsolete records.
type Compaction struct{}

// New returns a Compaction placeholder. It performs no work and starts no
// background goroutine.
func New() *Compaction {
	return &Compaction{}
}

// Run would merge obsolete segments into a reclaimed segment set; it
// currently only reports that the operation isn't implemented.
func (c *Compaction) Run() error {
	return errors.ErrNotImplemented
}

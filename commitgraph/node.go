// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package commitgraph is the commit graph core of a content-addressed
// version-control object store: commit parsing, interning, grafts,
// traversal, merge bases, and the pretty-printer.
package commitgraph

import "github.com/antgroup/zeta-graphcore/modules/plumbing"

// Flag bits reserved for the merge-base engine. Bits 0-15 are left for
// traversal callers to repurpose freely; the remaining bits above
// FlagResult are reserved for future use.
const (
	FlagParent1 uint32 = 1 << 16
	FlagParent2 uint32 = 1 << 17
	FlagStale   uint32 = 1 << 18
	FlagResult  uint32 = 1 << 19
)

// Node is a single commit in the DAG. At most one Node exists per hash
// in a process; obtain one through LookupCommit rather than
// constructing a Node directly.
type Node struct {
	// Hash is immutable once the Node is created.
	Hash plumbing.Hash
	// Parsed is false until the parser has populated Tree, Parents, and
	// Date. Parsing is monotonic: these fields never change afterward.
	Parsed bool
	// Tree is the hash of this commit's root tree.
	Tree plumbing.Hash
	// Parents is ordered; the first parent is distinguished. Rewritten
	// wholesale when a registered graft applies to Hash.
	Parents []*Node
	// Date is seconds since the epoch, from the committer line; 0 if
	// unparseable.
	Date uint64
	// Flags is a 32-bit bitset; see the Flag* constants for the bits
	// this package owns.
	Flags uint32
	// Buffer optionally retains the raw commit bytes, so the
	// pretty-printer can re-read headers without a second Backend.Read.
	// Populated by ParseCommit when Config.SaveCommitBuffer is set or
	// when it is given a nil Config.
	Buffer []byte

	// Kind is the object kind registered for Hash in the Backend's
	// table. It starts Unknown on a freshly Create-d Node and is fixed
	// to ObjectCommit the first time LookupCommit succeeds; a Node
	// whose Kind is already something else fails with ErrWrongKind.
	// Real git folds this into "struct object", the common header every
	// object (commit, tree, blob, tag) embeds; Kind is this package's
	// commit-specialised analogue of the same idea.
	Kind ObjectType

	// util is an opaque scratch slot a traversal can use to hang its own
	// bookkeeping off a Node without a side table. Kept unexported with
	// accessors (SetScratch/Scratch) rather than exported so a caller
	// can't accidentally collide with the topological sorter's own use
	// of the slot.
	util any
}

// HasFlag reports whether all bits in mask are set on the Node's Flags.
func (n *Node) HasFlag(mask uint32) bool {
	return n.Flags&mask == mask
}

// NumParents returns the number of parents in a commit.
func (n *Node) NumParents() int {
	return len(n.Parents)
}

// ParentHashes returns the hashes of n's parents, in order.
func (n *Node) ParentHashes() []plumbing.Hash {
	hashes := make([]plumbing.Hash, len(n.Parents))
	for i, p := range n.Parents {
		hashes[i] = p.Hash
	}
	return hashes
}

// SetScratch stores v in n's scratch slot, overwriting whatever a prior
// traversal may have left there.
func (n *Node) SetScratch(v any) {
	n.util = v
}

// Scratch returns whatever was last stored by SetScratch, or nil.
func (n *Node) Scratch() any {
	return n.util
}

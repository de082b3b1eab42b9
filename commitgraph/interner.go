// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import "github.com/antgroup/zeta-graphcore/modules/plumbing"

// ObjectType is the kind of object a hash resolves to in a Backend.
type ObjectType int

const (
	ObjectUnknown ObjectType = iota
	ObjectCommit
	ObjectTree
	ObjectBlob
	ObjectTag
)

func (t ObjectType) String() string {
	switch t {
	case ObjectCommit:
		return "commit"
	case ObjectTree:
		return "tree"
	case ObjectBlob:
		return "blob"
	case ObjectTag:
		return "tag"
	default:
		return "unknown"
	}
}

// Backend is the object store's contract with the commit graph core. It
// owns the process-wide hash-to-Node table; this package never keeps
// one of its own. Implementations must be safe for concurrent use by
// multiple readers; Create races on the same hash are expected to
// resolve to the same Node (the caller that loses the race gets the
// winner's Node back, not a duplicate).
type Backend interface {
	// Lookup returns the interned Node for hash, if one has already
	// been created, and reports whether it found one.
	Lookup(hash plumbing.Hash) (*Node, bool)
	// Create registers and returns a new, empty Node for hash with Kind
	// left at ObjectUnknown. Called only after Lookup reports !ok.
	Create(hash plumbing.Hash) *Node
	// Read fetches the declared kind and raw bytes stored under hash.
	Read(hash plumbing.Hash) (ObjectType, []byte, error)
	// DerefTag follows tag indirection zero or more times and returns
	// the hash of the first non-tag object reached.
	DerefTag(hash plumbing.Hash) (plumbing.Hash, error)
}

// LookupCommit returns the interned Node for hash, creating one if
// necessary. A Node whose Kind is still ObjectUnknown is claimed as a
// commit; a Node already claimed as something else fails with
// ErrWrongKind rather than being silently reused.
func LookupCommit(b Backend, hash plumbing.Hash) (*Node, error) {
	n, ok := b.Lookup(hash)
	if !ok {
		n = b.Create(hash)
	}
	switch n.Kind {
	case ObjectUnknown:
		n.Kind = ObjectCommit
	case ObjectCommit:
	default:
		return nil, NewErrWrongKind(hash)
	}
	return n, nil
}

// LookupCommitReference dereferences hash through any tag indirection
// and interns the commit at the far end.
func LookupCommitReference(b Backend, hash plumbing.Hash) (*Node, error) {
	target, err := b.DerefTag(hash)
	if err != nil {
		return nil, err
	}
	return LookupCommit(b, target)
}

// LookupCommitReferenceGently is LookupCommitReference without the
// error return: failures are suppressed and reported as a nil Node
// rather than propagated or logged, for callers (ref listings, GC
// roots) that would rather silently skip one bad entry than abort.
func LookupCommitReferenceGently(b Backend, hash plumbing.Hash) *Node {
	n, err := LookupCommitReference(b, hash)
	if err != nil {
		return nil
	}
	return n
}

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package memory is a minimal, non-evicting commitgraph.Backend: every
// object handed to Put stays resident for the life of the process. It
// exists for tests and thin callers that don't need a real on-disk
// object store, not as a production backend.
package memory

import (
	"sync"

	"github.com/antgroup/zeta-graphcore/commitgraph"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
)

type object struct {
	kind ObjectType
	body []byte
}

// ObjectType mirrors commitgraph.ObjectType so callers populating a
// Backend don't need to import commitgraph just to describe what
// they're storing.
type ObjectType = commitgraph.ObjectType

const (
	ObjectCommit = commitgraph.ObjectCommit
	ObjectTree   = commitgraph.ObjectTree
	ObjectBlob   = commitgraph.ObjectBlob
	ObjectTag    = commitgraph.ObjectTag
)

// Backend is an in-memory commitgraph.Backend. The zero value is ready
// to use.
type Backend struct {
	mu      sync.Mutex
	nodes   map[plumbing.Hash]*commitgraph.Node
	objects map[plumbing.Hash]object
	// tags maps a tag hash to the hash it points at, for DerefTag.
	tags map[plumbing.Hash]plumbing.Hash
}

// New returns an empty Backend.
func New() *Backend {
	return &Backend{
		nodes:   make(map[plumbing.Hash]*commitgraph.Node),
		objects: make(map[plumbing.Hash]object),
		tags:    make(map[plumbing.Hash]plumbing.Hash),
	}
}

// Put registers the raw bytes for hash under kind, for later Read and
// DerefTag calls. It does not itself create a Node; LookupCommit does
// that lazily on first use.
func (b *Backend) Put(hash plumbing.Hash, kind ObjectType, body []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[hash] = object{kind: kind, body: body}
}

// PutTag registers hash as a tag pointing at target, for DerefTag.
func (b *Backend) PutTag(hash, target plumbing.Hash) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[hash] = object{kind: ObjectTag}
	b.tags[hash] = target
}

func (b *Backend) Lookup(hash plumbing.Hash) (*commitgraph.Node, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.nodes[hash]
	return n, ok
}

func (b *Backend) Create(hash plumbing.Hash) *commitgraph.Node {
	b.mu.Lock()
	defer b.mu.Unlock()
	if n, ok := b.nodes[hash]; ok {
		return n
	}
	n := &commitgraph.Node{Hash: hash}
	b.nodes[hash] = n
	return n
}

func (b *Backend) Read(hash plumbing.Hash) (ObjectType, []byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[hash]
	if !ok {
		return commitgraph.ObjectUnknown, nil, plumbing.NoSuchObject(hash)
	}
	return o.kind, o.body, nil
}

// DerefTag follows tag indirection until it reaches a non-tag hash, or
// returns hash unchanged if it was never registered as a tag.
func (b *Backend) DerefTag(hash plumbing.Hash) (plumbing.Hash, error) {
	seen := map[plumbing.Hash]bool{}
	for {
		b.mu.Lock()
		target, isTag := b.tags[hash]
		b.mu.Unlock()
		if !isTag {
			return hash, nil
		}
		if seen[hash] {
			return plumbing.ZeroHash, plumbing.NoSuchObject(hash)
		}
		seen[hash] = true
		hash = target
	}
}

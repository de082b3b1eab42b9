// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph_test

import (
	"crypto/sha1"
	"fmt"
	"strings"

	"github.com/antgroup/zeta-graphcore/commitgraph/memory"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
)

// fakeHash derives a deterministic Hash from a short seed string, for
// building repeatable fixture hashes in tests.
func fakeHash(seed string) plumbing.Hash {
	sum := sha1.Sum([]byte(seed))
	var h plumbing.Hash
	copy(h[:], sum[:])
	return h
}

// buildCommit renders a minimal, well-formed commit buffer: a tree
// header, one "parent" line per entry in parents, and an
// author/committer pair at the given unix date, followed by a blank
// line and message.
func buildCommit(tree plumbing.Hash, parents []plumbing.Hash, date int64, message string) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "tree %s\n", tree.String())
	for _, p := range parents {
		fmt.Fprintf(&b, "parent %s\n", p.String())
	}
	fmt.Fprintf(&b, "author Test User <test@example.com> %d +0000\n", date)
	fmt.Fprintf(&b, "committer Test User <test@example.com> %d +0000\n", date)
	b.WriteString("\n")
	b.WriteString(message)
	b.WriteString("\n")
	return []byte(b.String())
}

// seedCommit registers a commit object (with a synthetic tree hash
// derived from its own hash, for simplicity) under backend and returns
// its hash.
func seedCommit(backend *memory.Backend, seed string, parents []plumbing.Hash, date int64, message string) plumbing.Hash {
	hash := fakeHash(seed)
	tree := fakeHash(seed + "-tree")
	buf := buildCommit(tree, parents, date, message)
	backend.Put(hash, memory.ObjectCommit, buf)
	return hash
}

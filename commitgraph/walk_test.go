// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph_test

import (
	"fmt"
	"testing"

	"github.com/antgroup/zeta-graphcore/commitgraph"
	"github.com/antgroup/zeta-graphcore/commitgraph/memory"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain seeds a linear history root -> c1 -> c2 -> ... -> cN (tip
// last) with strictly increasing dates, and returns the tip's Node.
func buildChain(t *testing.T, backend *memory.Backend, n int) *commitgraph.Node {
	t.Helper()
	var parent plumbing.Hash
	var parents []plumbing.Hash
	var tipHash plumbing.Hash
	for i := 0; i < n; i++ {
		if i > 0 {
			parents = []plumbing.Hash{parent}
		}
		h := seedCommit(backend, fmt.Sprintf("chain-%d", i), parents, int64((i+1)*100), "commit")
		parent = h
		tipHash = h
		parents = nil
	}
	tip, err := commitgraph.LookupCommit(backend, tipHash)
	require.NoError(t, err)
	require.NoError(t, commitgraph.ParseCommit(backend, tip, nil, nil, nil))
	return tip
}

func TestPopMostRecentEmitsEachCommitOnce(t *testing.T) {
	backend := memory.New()
	tip := buildChain(t, backend, 4)

	w := commitgraph.NewWalker(backend, nil, nil)
	const mark = uint32(1)
	tip.Flags |= mark

	frontier := commitgraph.NewCommitList()
	frontier.InsertByDate(tip)

	var emitted []uint64
	for {
		c := w.PopMostRecent(frontier, mark)
		if c == nil {
			break
		}
		emitted = append(emitted, c.Date)
	}

	assert.Len(t, emitted, 4)
	for i := 1; i < len(emitted); i++ {
		assert.GreaterOrEqual(t, emitted[i-1], emitted[i], "emission order must be non-increasing by date")
	}
}

func TestClearMarksClearsEveryAncestor(t *testing.T) {
	backend := memory.New()
	root := seedCommit(backend, "root", nil, 100, "root")
	left := seedCommit(backend, "left", []plumbing.Hash{root}, 200, "left")
	right := seedCommit(backend, "right", []plumbing.Hash{root}, 200, "right")
	merge := seedCommit(backend, "merge", []plumbing.Hash{left, right}, 300, "merge")

	w := commitgraph.NewWalker(backend, nil, nil)
	mergeNode, err := commitgraph.LookupCommit(backend, merge)
	require.NoError(t, err)
	require.NoError(t, commitgraph.ParseCommit(backend, mergeNode, w.Grafts, w.Config, nil))
	for _, p := range mergeNode.Parents {
		require.NoError(t, commitgraph.ParseCommit(backend, p, w.Grafts, w.Config, nil))
		for _, gp := range p.Parents {
			require.NoError(t, commitgraph.ParseCommit(backend, gp, w.Grafts, w.Config, nil))
		}
	}

	const mask = uint32(1 << 5)
	setAll := func(n *commitgraph.Node) {
		n.Flags |= mask
		for _, p := range n.Parents {
			p.Flags |= mask
		}
	}
	setAll(mergeNode)
	for _, p := range mergeNode.Parents {
		setAll(p)
	}

	commitgraph.ClearMarks(mergeNode, mask)
	assert.Zero(t, mergeNode.Flags&mask)
	for _, p := range mergeNode.Parents {
		assert.Zero(t, p.Flags&mask)
		for _, gp := range p.Parents {
			assert.Zero(t, gp.Flags&mask)
		}
	}
}

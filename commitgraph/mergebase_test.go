// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph_test

import (
	"testing"

	"github.com/antgroup/zeta-graphcore/commitgraph"
	"github.com/antgroup/zeta-graphcore/commitgraph/memory"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lookupAndParse(t *testing.T, w *commitgraph.Walker, backend *memory.Backend, h plumbing.Hash) *commitgraph.Node {
	t.Helper()
	n, err := commitgraph.LookupCommit(backend, h)
	require.NoError(t, err)
	require.NoError(t, commitgraph.ParseCommit(backend, n, w.Grafts, w.Config, nil))
	return n
}

// diamond builds root -> (left, right) -> merge and returns all four
// nodes, parsed.
func diamond(t *testing.T, backend *memory.Backend, w *commitgraph.Walker) (root, left, right, merge *commitgraph.Node) {
	t.Helper()
	rootH := seedCommit(backend, "root", nil, 100, "root")
	leftH := seedCommit(backend, "left", []plumbing.Hash{rootH}, 200, "left")
	rightH := seedCommit(backend, "right", []plumbing.Hash{rootH}, 200, "right")
	mergeH := seedCommit(backend, "merge", []plumbing.Hash{leftH, rightH}, 300, "merge")

	root = lookupAndParse(t, w, backend, rootH)
	left = lookupAndParse(t, w, backend, leftH)
	right = lookupAndParse(t, w, backend, rightH)
	merge = lookupAndParse(t, w, backend, mergeH)
	return
}

func TestMergeBasesIdenticalCommit(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	_, _, _, merge := diamond(t, backend, w)

	bases, err := w.MergeBases(merge, merge)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, merge.Hash, bases[0].Hash)
}

func TestMergeBasesDiamondFindsRoot(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	root, left, right, _ := diamond(t, backend, w)

	bases, err := w.GetMergeBases(left, right, true)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, root.Hash, bases[0].Hash)
}

func TestMergeBasesAncestorIsItsOwnBase(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	root, _, _, merge := diamond(t, backend, w)

	bases, err := w.GetMergeBases(root, merge, true)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, root.Hash, bases[0].Hash)
}

func TestMergeBasesExcludesStaleDominatedAncestor(t *testing.T) {
	// root -> mid -> (left, right) -> merge; the only true merge base of
	// left and right is mid, so root (an ancestor of mid) must not
	// appear in the result even though it is a common ancestor too.
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)

	rootH := seedCommit(backend, "root2", nil, 100, "root")
	midH := seedCommit(backend, "mid2", []plumbing.Hash{rootH}, 200, "mid")
	leftH := seedCommit(backend, "left2", []plumbing.Hash{midH}, 300, "left")
	rightH := seedCommit(backend, "right2", []plumbing.Hash{midH}, 300, "right")

	mid := lookupAndParse(t, w, backend, midH)
	left := lookupAndParse(t, w, backend, leftH)
	right := lookupAndParse(t, w, backend, rightH)
	lookupAndParse(t, w, backend, rootH)

	bases, err := w.GetMergeBases(left, right, true)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	assert.Equal(t, mid.Hash, bases[0].Hash)
}

// crissCross builds two unrelated roots r1, r2 that are both parents of
// two independent merges x and y, returning all four nodes parsed.
func crissCross(t *testing.T, backend *memory.Backend, w *commitgraph.Walker) (r1, r2, x, y *commitgraph.Node) {
	t.Helper()
	r1H := seedCommit(backend, "criss-r1", nil, 100, "r1")
	r2H := seedCommit(backend, "criss-r2", nil, 100, "r2")
	xH := seedCommit(backend, "criss-x", []plumbing.Hash{r1H, r2H}, 200, "x")
	yH := seedCommit(backend, "criss-y", []plumbing.Hash{r1H, r2H}, 200, "y")

	r1 = lookupAndParse(t, w, backend, r1H)
	r2 = lookupAndParse(t, w, backend, r2H)
	x = lookupAndParse(t, w, backend, xH)
	y = lookupAndParse(t, w, backend, yH)
	return
}

func TestMergeBasesCrissCrossReturnsBothIndependentRoots(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	r1, r2, x, y := crissCross(t, backend, w)

	bases, err := w.MergeBases(x, y)
	require.NoError(t, err)
	require.Len(t, bases, 2)
	hashes := []plumbing.Hash{bases[0].Hash, bases[1].Hash}
	assert.ElementsMatch(t, []plumbing.Hash{r1.Hash, r2.Hash}, hashes)
}

func TestGetMergeBasesCrissCrossAgreesWithMergeBasesAndClearsFlags(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	r1, r2, x, y := crissCross(t, backend, w)

	bases, err := w.GetMergeBases(x, y, true)
	require.NoError(t, err)
	require.Len(t, bases, 2, "r1 and r2 are independent: neither dominates the other")
	hashes := []plumbing.Hash{bases[0].Hash, bases[1].Hash}
	assert.ElementsMatch(t, []plumbing.Hash{r1.Hash, r2.Hash}, hashes)

	const reserved = commitgraph.FlagParent1 | commitgraph.FlagParent2 | commitgraph.FlagStale | commitgraph.FlagResult
	for _, n := range []*commitgraph.Node{r1, r2, x, y} {
		assert.False(t, n.HasFlag(reserved), "clear_marks must fully reset %s after cleanup", n.Hash)
	}
}

func TestInMergeBasesReportsAncestry(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	root, _, right, merge := diamond(t, backend, w)

	ok, err := w.InMergeBases(root, []*commitgraph.Node{merge})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = w.InMergeBases(right, []*commitgraph.Node{root})
	require.NoError(t, err)
	assert.False(t, ok, "right is not an ancestor of root")
}

func TestInMergeBasesRejectsMultiReference(t *testing.T) {
	backend := memory.New()
	w := commitgraph.NewWalker(backend, nil, nil)
	root, left, right, _ := diamond(t, backend, w)

	_, err := w.InMergeBases(root, []*commitgraph.Node{left, right})
	assert.True(t, commitgraph.IsErrNotImplemented(err))
}

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"testing"

	"github.com/antgroup/zeta-graphcore/commitgraph/memory"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateIsIdempotent(t *testing.T) {
	b := memory.New()
	h := plumbing.NewHash("0000000000000000000000000000000000000001")
	n1 := b.Create(h)
	n2 := b.Create(h)
	assert.Same(t, n1, n2)

	looked, ok := b.Lookup(h)
	require.True(t, ok)
	assert.Same(t, n1, looked)
}

func TestLookupMissingHash(t *testing.T) {
	b := memory.New()
	_, ok := b.Lookup(plumbing.NewHash("0000000000000000000000000000000000000002"))
	assert.False(t, ok)
}

func TestReadMissingObject(t *testing.T) {
	b := memory.New()
	_, _, err := b.Read(plumbing.NewHash("0000000000000000000000000000000000000003"))
	assert.True(t, plumbing.IsNoSuchObject(err))
}

func TestReadReturnsPutBody(t *testing.T) {
	b := memory.New()
	h := plumbing.NewHash("0000000000000000000000000000000000000004")
	b.Put(h, memory.ObjectBlob, []byte("body bytes"))

	kind, body, err := b.Read(h)
	require.NoError(t, err)
	assert.Equal(t, memory.ObjectBlob, kind)
	assert.Equal(t, []byte("body bytes"), body)
}

func TestDerefTagFollowsChain(t *testing.T) {
	b := memory.New()
	commit := plumbing.NewHash("0000000000000000000000000000000000000005")
	tag1 := plumbing.NewHash("0000000000000000000000000000000000000006")
	tag2 := plumbing.NewHash("0000000000000000000000000000000000000007")
	b.PutTag(tag2, tag1)
	b.PutTag(tag1, commit)

	target, err := b.DerefTag(tag2)
	require.NoError(t, err)
	assert.Equal(t, commit, target)
}

func TestDerefTagNonTagHashIsUnchanged(t *testing.T) {
	b := memory.New()
	h := plumbing.NewHash("0000000000000000000000000000000000000008")
	target, err := b.DerefTag(h)
	require.NoError(t, err)
	assert.Equal(t, h, target)
}

func TestDerefTagDetectsCycle(t *testing.T) {
	b := memory.New()
	a := plumbing.NewHash("0000000000000000000000000000000000000009")
	c := plumbing.NewHash("000000000000000000000000000000000000000a")
	b.PutTag(a, c)
	b.PutTag(c, a)

	_, err := b.DerefTag(a)
	assert.True(t, plumbing.IsNoSuchObject(err))
}

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph_test

import (
	"testing"

	"github.com/antgroup/zeta-graphcore/commitgraph"
	"github.com/stretchr/testify/assert"
)

func nodeWithDate(seed string, date uint64) *commitgraph.Node {
	return &commitgraph.Node{Hash: fakeHash(seed), Date: date}
}

func TestCommitListInsertByDateDescending(t *testing.T) {
	l := commitgraph.NewCommitList()
	l.InsertByDate(nodeWithDate("a", 100))
	l.InsertByDate(nodeWithDate("b", 300))
	l.InsertByDate(nodeWithDate("c", 200))

	var dates []uint64
	for e := l.Front(); e != nil; e = e.Next() {
		dates = append(dates, e.Value.(*commitgraph.Node).Date)
	}
	assert.Equal(t, []uint64{300, 200, 100}, dates)
}

func TestCommitListInsertByDateStableForTies(t *testing.T) {
	l := commitgraph.NewCommitList()
	first := nodeWithDate("first", 100)
	second := nodeWithDate("second", 100)
	l.InsertByDate(first)
	l.InsertByDate(second)

	assert.Same(t, first, l.Front().Value.(*commitgraph.Node), "the first-inserted equal-dated item stays ahead")
	assert.Same(t, second, l.Front().Next().Value.(*commitgraph.Node))
}

func TestCommitListPop(t *testing.T) {
	l := commitgraph.NewCommitList()
	assert.Nil(t, l.Pop())

	l.InsertByDate(nodeWithDate("x", 10))
	n := l.Pop()
	assert.NotNil(t, n)
	assert.Equal(t, 0, l.Len())
}

func TestCommitListSortByDate(t *testing.T) {
	l := commitgraph.NewCommitList()
	l.Insert(nodeWithDate("low", 1))
	l.Insert(nodeWithDate("high", 99))
	l.Insert(nodeWithDate("mid", 50))
	l.SortByDate()

	var dates []uint64
	for e := l.Front(); e != nil; e = e.Next() {
		dates = append(dates, e.Value.(*commitgraph.Node).Date)
	}
	assert.Equal(t, []uint64{99, 50, 1}, dates)
}

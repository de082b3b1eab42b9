// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import "github.com/emirpasic/gods/trees/binaryheap"

// sortNode is the per-commit scratch record the topological sort binds
// to each input commit's scratch slot for the duration of the sort.
type sortNode struct {
	commit   *Node
	indegree int
}

// workQueue is the ready-to-emit queue: either a plain LIFO stack
// (discovery order) or a binary heap ordered by descending date.
type workQueue interface {
	push(*sortNode)
	pop() *sortNode
	size() int
}

type lifoQueue struct {
	items []*sortNode
}

func (q *lifoQueue) push(n *sortNode) { q.items = append(q.items, n) }
func (q *lifoQueue) pop() *sortNode {
	if len(q.items) == 0 {
		return nil
	}
	n := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return n
}
func (q *lifoQueue) size() int { return len(q.items) }

type dateHeap struct {
	h *binaryheap.Heap
}

func newDateHeap() *dateHeap {
	return &dateHeap{h: binaryheap.NewWith(func(a, b any) int {
		na, nb := a.(*sortNode), b.(*sortNode)
		switch {
		case na.commit.Date > nb.commit.Date:
			return -1
		case na.commit.Date < nb.commit.Date:
			return 1
		default:
			return 0
		}
	})}
}

func (q *dateHeap) push(n *sortNode) { q.h.Push(n) }
func (q *dateHeap) pop() *sortNode {
	v, ok := q.h.Pop()
	if !ok {
		return nil
	}
	return v.(*sortNode)
}
func (q *dateHeap) size() int { return q.h.Size() }

// TopoSort orders L so that every commit precedes its parents, using
// get/set as the per-commit scratch-storage accessors (pass nil for
// both to default to Node.Scratch/Node.SetScratch). With lifo=false and
// non-overlapping dates, ties among commits at the same topological
// depth come out date-descending; with lifo=true the ready queue is a
// plain stack in discovery order.
//
// A parent only participates in the sort if it is itself present in L
// — detected by get returning a non-nil *sortNode for it — so commits
// outside L never gain phantom indegree.
func TopoSort(L []*Node, lifo bool, get func(*Node) any, set func(*Node, any)) []*Node {
	if get == nil {
		get = func(n *Node) any { return n.Scratch() }
	}
	if set == nil {
		set = func(n *Node, v any) { n.SetScratch(v) }
	}

	nodes := make([]*sortNode, len(L))
	for i, c := range L {
		nodes[i] = &sortNode{commit: c}
		set(c, nodes[i])
	}

	for _, sn := range nodes {
		for _, p := range sn.commit.Parents {
			if v := get(p); v != nil {
				v.(*sortNode).indegree++
			}
		}
	}

	var q workQueue
	if lifo {
		q = &lifoQueue{}
	} else {
		q = newDateHeap()
	}
	for _, sn := range nodes {
		if sn.indegree == 0 {
			q.push(sn)
		}
	}

	output := make([]*Node, 0, len(L))
	for q.size() > 0 {
		w := q.pop()
		output = append(output, w.commit)
		for _, p := range w.commit.Parents {
			v := get(p)
			if v == nil {
				continue
			}
			psn := v.(*sortNode)
			psn.indegree--
			if psn.indegree == 0 {
				q.push(psn)
			}
		}
	}

	for _, c := range L {
		set(c, nil)
	}
	return output
}

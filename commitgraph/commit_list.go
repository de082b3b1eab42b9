// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import "container/list"

// CommitList is a date-ordered list of *Node, built directly on
// container/list.
type CommitList struct {
	l *list.List
}

// NewCommitList returns an empty CommitList.
func NewCommitList() *CommitList {
	return &CommitList{l: list.New()}
}

// Front returns the head cell, or nil if the list is empty.
func (c *CommitList) Front() *list.Element {
	return c.l.Front()
}

// Len reports the number of cells in the list.
func (c *CommitList) Len() int {
	return c.l.Len()
}

// Insert prepends item as a new head cell.
func (c *CommitList) Insert(item *Node) *list.Element {
	return c.l.PushFront(item)
}

// InsertByDate inserts item before the first cell whose Node has a date
// strictly less than item.Date, keeping the list in descending-date
// order. Insertion is stable: among equal dates, item goes after the
// cells already holding that date.
func (c *CommitList) InsertByDate(item *Node) *list.Element {
	for e := c.l.Front(); e != nil; e = e.Next() {
		if e.Value.(*Node).Date < item.Date {
			return c.l.InsertBefore(item, e)
		}
	}
	return c.l.PushBack(item)
}

// SortByDate rebuilds the list via repeated InsertByDate, yielding
// descending date order regardless of the order items were supplied.
func (c *CommitList) SortByDate() {
	items := make([]*Node, 0, c.l.Len())
	for e := c.l.Front(); e != nil; e = e.Next() {
		items = append(items, e.Value.(*Node))
	}
	c.l.Init()
	for _, item := range items {
		c.InsertByDate(item)
	}
}

// Pop detaches and returns the head item, or nil if the list is empty.
func (c *CommitList) Pop() *Node {
	e := c.l.Front()
	if e == nil {
		return nil
	}
	c.l.Remove(e)
	return e.Value.(*Node)
}

// FreeList releases every cell.
func (c *CommitList) FreeList() {
	c.l.Init()
}

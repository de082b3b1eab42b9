// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import "github.com/antgroup/zeta-graphcore/commitgraph/config"

// Walker bundles the three process-wide collaborators a traversal
// needs: the object interner, the graft table, and the ambient
// configuration. Parsing newly discovered parents during traversal
// goes through ParseCommit with these three, exactly as PopMostRecent
// requires.
type Walker struct {
	Backend Backend
	Grafts  *GraftTable
	Config  *config.Config
}

// NewWalker returns a Walker over b. grafts and cfg may be nil; a nil
// grafts behaves as an empty table, a nil cfg behaves as config.Default().
func NewWalker(b Backend, grafts *GraftTable, cfg *config.Config) *Walker {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Walker{Backend: b, Grafts: graftsOrEmpty(grafts), Config: cfg}
}

// PopMostRecent detaches the head of frontier, parses each of its
// parents, and — for any parent not yet carrying mark in its flags —
// sets mark and reinserts it into frontier by date. It returns the
// detached commit.
//
// Every commit reachable from the frontier's initial contents is
// emitted by repeated calls exactly once per mark bit; emission order
// is descending by date, ties broken by frontier-insertion order.
func (w *Walker) PopMostRecent(frontier *CommitList, mark uint32) *Node {
	c := frontier.Pop()
	if c == nil {
		return nil
	}
	for _, p := range c.Parents {
		if err := ParseCommit(w.Backend, p, w.Grafts, w.Config, nil); err != nil {
			continue
		}
		if !p.HasFlag(mark) {
			p.Flags |= mark
			frontier.InsertByDate(p)
		}
	}
	return c
}

// ClearMarks recursively clears mask from c's flags and every ancestor
// of c, visiting each commit only once. Recursion stops at a parent
// that already has the mask cleared, since that implies its own
// ancestors are clean too.
func ClearMarks(c *Node, mask uint32) {
	if c == nil || c.Flags&mask == 0 {
		return
	}
	c.Flags &^= mask
	for _, p := range c.Parents {
		ClearMarks(p, mask)
	}
}

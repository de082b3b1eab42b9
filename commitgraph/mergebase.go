// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

// MergeBases returns the set of best common ancestors of a and b,
// parsing commits as it discovers them through w. A common ancestor
// that is itself an ancestor of another common ancestor in the result
// ("stale") is excluded — the result holds only the ancestors nearest
// to a and b.
func (w *Walker) MergeBases(a, b *Node) ([]*Node, error) {
	if a.Hash == b.Hash {
		return []*Node{a}, nil
	}
	if err := ParseCommit(w.Backend, a, w.Grafts, w.Config, nil); err != nil {
		return nil, err
	}
	if err := ParseCommit(w.Backend, b, w.Grafts, w.Config, nil); err != nil {
		return nil, err
	}

	a.Flags |= FlagParent1
	b.Flags |= FlagParent2
	frontier := NewCommitList()
	frontier.InsertByDate(a)
	frontier.InsertByDate(b)

	interesting := func() bool {
		for e := frontier.Front(); e != nil; e = e.Next() {
			if !e.Value.(*Node).HasFlag(FlagStale) {
				return true
			}
		}
		return false
	}

	var results []*Node
	for interesting() {
		c := frontier.Pop()
		if c == nil {
			break
		}
		f := c.Flags & (FlagParent1 | FlagParent2 | FlagStale)
		if f == FlagParent1|FlagParent2 {
			if !c.HasFlag(FlagResult) {
				c.Flags |= FlagResult
				results = append(results, c)
			}
			// STALE is folded into f (propagated to ancestors below)
			// but deliberately not written back to c.Flags here: a
			// result commit only becomes stale itself if some other
			// path later re-reaches it with STALE already in the
			// propagated mask, which is exactly what discovers that
			// it's dominated by another result.
			f |= FlagStale
		}
		for _, p := range c.Parents {
			if p.Flags&f == f {
				continue
			}
			if err := ParseCommit(w.Backend, p, w.Grafts, w.Config, nil); err != nil {
				continue
			}
			p.Flags |= f
			frontier.InsertByDate(p)
		}
	}

	survivors := results[:0]
	for _, c := range results {
		if !c.HasFlag(FlagStale) {
			survivors = append(survivors, c)
		}
	}
	sortNodesByDateDesc(survivors)
	return survivors, nil
}

// GetMergeBases returns the independent merge-base set of a and b: the
// survivors of MergeBases with any candidate dominated by another
// candidate removed. When cleanup is set, every flag bit this package
// reserves is cleared from the full ancestor closure before returning.
func (w *Walker) GetMergeBases(a, b *Node, cleanup bool) ([]*Node, error) {
	result, err := w.MergeBases(a, b)
	if err != nil {
		return nil, err
	}
	if cleanup {
		defer func() {
			ClearMarks(a, FlagParent1|FlagParent2|FlagStale|FlagResult)
			ClearMarks(b, FlagParent1|FlagParent2|FlagStale|FlagResult)
		}()
	}
	if len(result) <= 1 {
		return result, nil
	}

	// Each result still carries FlagResult (and whichever of
	// PARENT1/PARENT2/STALE it last accumulated) from the MergeBases(a,
	// b) call above, and so do the ancestors that call painted. Left in
	// place, the first pairwise call below would find HasFlag(FlagResult)
	// already true on its own inputs and never let them back into its
	// local result set, and the painted ancestors would stop its walk at
	// the candidates' parents. Clear every reserved bit across everything
	// the outer call painted before the dominance loop starts.
	ClearMarks(a, FlagParent1|FlagParent2|FlagStale|FlagResult)
	ClearMarks(b, FlagParent1|FlagParent2|FlagStale|FlagResult)

	dominated := make(map[*Node]bool, len(result))
	for i := 0; i < len(result); i++ {
		for j := i + 1; j < len(result); j++ {
			if dominated[result[i]] || dominated[result[j]] {
				continue
			}
			pair, err := w.MergeBases(result[i], result[j])
			ClearMarks(result[i], FlagParent1|FlagParent2|FlagStale|FlagResult)
			ClearMarks(result[j], FlagParent1|FlagParent2|FlagStale|FlagResult)
			if err != nil {
				return nil, err
			}
			for _, c := range pair {
				if c == result[i] || c == result[j] {
					dominated[c] = true
				}
			}
		}
	}

	survivors := make([]*Node, 0, len(result))
	for _, c := range result {
		if !dominated[c] {
			survivors = append(survivors, c)
		}
	}
	sortNodesByDateDesc(survivors)
	return survivors, nil
}

// InMergeBases reports whether c is an ancestor of r — equivalently,
// whether c is itself a merge base of c and r. Multi-reference queries
// (len(refs) != 1) are not implemented.
func (w *Walker) InMergeBases(c *Node, refs []*Node) (bool, error) {
	if len(refs) != 1 {
		return false, NewErrNotImplemented("multi-reference InMergeBases")
	}
	bases, err := w.MergeBases(c, refs[0])
	ClearMarks(c, FlagParent1|FlagParent2|FlagStale|FlagResult)
	ClearMarks(refs[0], FlagParent1|FlagParent2|FlagStale|FlagResult)
	if err != nil {
		return false, err
	}
	for _, b := range bases {
		if b.Hash == c.Hash {
			return true, nil
		}
	}
	return false, nil
}

func sortNodesByDateDesc(nodes []*Node) {
	for i := 1; i < len(nodes); i++ {
		for j := i; j > 0 && nodes[j-1].Date < nodes[j].Date; j-- {
			nodes[j-1], nodes[j] = nodes[j], nodes[j-1]
		}
	}
}

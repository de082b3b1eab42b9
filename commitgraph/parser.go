// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"bytes"

	"github.com/antgroup/zeta-graphcore/commitgraph/config"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
)

var (
	treePrefix      = []byte("tree ")
	parentPrefix    = []byte("parent ")
	authorPrefix    = []byte("author ")
	committerPrefix = []byte("committer ")
	encodingPrefix  = []byte("encoding ")
)

// ParseCommitBuffer populates node's Tree, Parents, and Date from buf,
// the decompressed, header-stripped bytes of a commit object. It is a
// no-op returning success if node.Parsed is already true.
//
// If grafts has an entry registered for node.Hash, the entry's parents
// replace whatever the buffer's own "parent" lines say; the text is
// still walked to find where the parent block ends. trackRef, if
// non-nil, is invoked once per resolved reference (the tree and every
// parent) — a minimal stand-in for a reverse object-refs index.
func ParseCommitBuffer(b Backend, node *Node, buf []byte, grafts *GraftTable, trackRef func(plumbing.Hash)) error {
	if node.Parsed {
		return nil
	}

	if !bytes.HasPrefix(buf, treePrefix) || len(buf) < len(treePrefix)+plumbing.HASH_HEX_SIZE+1 ||
		buf[len(treePrefix)+plumbing.HASH_HEX_SIZE] != '\n' {
		return NewErrBadCommit(node.Hash, "missing or malformed tree header")
	}
	treeHex := string(buf[len(treePrefix) : len(treePrefix)+plumbing.HASH_HEX_SIZE])
	tree, err := plumbing.NewHashEx(treeHex)
	if err != nil {
		return NewErrBadCommit(node.Hash, "malformed tree hash: %v", err)
	}

	graft, grafted := grafts.Lookup(node.Hash)

	pos := len(treePrefix) + plumbing.HASH_HEX_SIZE + 1
	parentLineWidth := len(parentPrefix) + plumbing.HASH_HEX_SIZE + 1
	var parents []*Node
	for bytes.HasPrefix(buf[pos:], parentPrefix) {
		if pos+parentLineWidth > len(buf) || buf[pos+parentLineWidth-1] != '\n' {
			return NewErrBadCommit(node.Hash, "malformed parent header")
		}
		hex := string(buf[pos+len(parentPrefix) : pos+parentLineWidth-1])
		ph, err := plumbing.NewHashEx(hex)
		if err != nil {
			return NewErrBadCommit(node.Hash, "malformed parent hash: %v", err)
		}
		// The graft overrides the parent set, but the text is still
		// walked so pos lands after the last parent line either way.
		if !grafted {
			if pn, err := LookupCommit(b, ph); err == nil {
				parents = append(parents, pn)
			}
		}
		pos += parentLineWidth
	}
	if grafted {
		parents = parents[:0]
		for _, ph := range graft.Parents {
			pn, err := LookupCommit(b, ph)
			if err != nil {
				continue
			}
			parents = append(parents, pn)
		}
	}

	if !bytes.HasPrefix(buf[pos:], authorPrefix) {
		return NewErrBadCommit(node.Hash, "missing author header")
	}
	nl := bytes.IndexByte(buf[pos:], '\n')
	if nl == -1 {
		return NewErrBadCommit(node.Hash, "unterminated author header")
	}
	pos += nl + 1

	if !bytes.HasPrefix(buf[pos:], committerPrefix) {
		return NewErrBadCommit(node.Hash, "missing committer header")
	}
	committerLineEnd := bytes.IndexByte(buf[pos:], '\n')
	if committerLineEnd == -1 {
		return NewErrBadCommit(node.Hash, "unterminated committer header")
	}
	committerLine := buf[pos : pos+committerLineEnd]
	gt := bytes.LastIndexByte(committerLine, '>')
	if gt == -1 {
		return NewErrBadCommit(node.Hash, "malformed committer header")
	}
	date := parseCommitDate(committerLine[gt+1:])
	pos += committerLineEnd + 1

	if !scanHeaderTailOK(buf[pos:]) {
		return NewErrBadCommit(node.Hash, "unterminated encoding header")
	}

	node.Tree = tree
	node.Parents = parents
	node.Date = date
	node.Parsed = true

	if trackRef != nil {
		trackRef(tree)
		for _, p := range node.Parents {
			trackRef(p.Hash)
		}
	}
	return nil
}

// parseCommitDate reads the decimal integer following the closing '>'
// of a committer line's email, skipping the separating space.
// Overflow or a missing value yields 0, never an error.
func parseCommitDate(rest []byte) uint64 {
	i := 0
	for i < len(rest) && rest[i] == ' ' {
		i++
	}
	var date uint64
	saw := false
	for i < len(rest) && rest[i] >= '0' && rest[i] <= '9' {
		saw = true
		d := date*10 + uint64(rest[i]-'0')
		if d < date {
			return 0
		}
		date = d
		i++
	}
	if !saw {
		return 0
	}
	return date
}

// scanHeaderTailOK walks any remaining "KEY value\n" header lines
// looking for the blank line that separates headers from the message
// body. The headers themselves are not parsed here — the
// pretty-printer re-reads them from Node.Buffer — except to catch one
// malformed case: the buffer running out while an "encoding" header was
// the last line seen, with no blank line ever closing the header
// block. Returns false only for that case.
func scanHeaderTailOK(buf []byte) bool {
	sawEncoding := false
	pos := 0
	for {
		if pos >= len(buf) {
			return !sawEncoding
		}
		nl := bytes.IndexByte(buf[pos:], '\n')
		if nl == -1 {
			return !bytes.HasPrefix(buf[pos:], encodingPrefix)
		}
		line := buf[pos : pos+nl]
		if len(line) == 0 {
			return true
		}
		sawEncoding = bytes.HasPrefix(line, encodingPrefix)
		pos += nl + 1
	}
}

// ParseCommit is the convenience wrapper around ParseCommitBuffer: it
// fetches node's bytes from b, verifies they were stored as a commit,
// parses them, and then keeps or discards the buffer according to
// cfg.SaveCommitBuffer. trackRef is forwarded to ParseCommitBuffer only
// when cfg.TrackObjectRefs is set; it is ignored (and may be nil)
// otherwise.
func ParseCommit(b Backend, node *Node, grafts *GraftTable, cfg *config.Config, trackRef func(plumbing.Hash)) error {
	if node.Parsed {
		return nil
	}
	kind, buf, err := b.Read(node.Hash)
	if err != nil {
		return err
	}
	if kind != ObjectCommit {
		return NewErrWrongKind(node.Hash)
	}
	if cfg == nil || !cfg.TrackObjectRefs {
		trackRef = nil
	}
	if err := ParseCommitBuffer(b, node, buf, graftsOrEmpty(grafts), trackRef); err != nil {
		return err
	}
	if cfg == nil || cfg.SaveCommitBuffer {
		node.Buffer = buf
	}
	return nil
}

var emptyGrafts = &GraftTable{}

func graftsOrEmpty(g *GraftTable) *GraftTable {
	if g == nil {
		return emptyGrafts
	}
	return g
}

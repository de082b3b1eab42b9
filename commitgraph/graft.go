// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/antgroup/zeta-graphcore/modules/plumbing"
	"github.com/antgroup/zeta-graphcore/modules/pktline"
	"github.com/antgroup/zeta-graphcore/modules/trace"
)

// maxGraftLineLength rejects any graft record longer than this many
// bytes (excluding the line terminator) before it's even tokenized.
const maxGraftLineLength = 1024

// GraftEntry overrides the parent set of the commit at Hash. A nil or
// empty Parents declares the commit shallow: a history boundary with
// no further ancestors.
type GraftEntry struct {
	Hash    plumbing.Hash
	Parents []plumbing.Hash
}

func (e *GraftEntry) shallow() bool {
	return len(e.Parents) == 0
}

// GraftTable is a sorted-by-hash array of GraftEntry overrides. The
// zero value is an empty table ready to use.
type GraftTable struct {
	once    sync.Once
	prepErr error

	entries []GraftEntry
}

// pos returns the index of hash in t.entries if present, and whether it
// was found, using the same binary search a sorted array supports.
func (t *GraftTable) pos(hash plumbing.Hash) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool {
		return !t.entries[i].Hash.Less(hash)
	})
	if i < len(t.entries) && t.entries[i].Hash == hash {
		return i, true
	}
	return i, false
}

// Lookup returns the graft entry registered for hash, if any.
func (t *GraftTable) Lookup(hash plumbing.Hash) (GraftEntry, bool) {
	i, ok := t.pos(hash)
	if !ok {
		return GraftEntry{}, false
	}
	return t.entries[i], true
}

// Register inserts entry at its sorted position. On collision with an
// existing entry for the same hash, it replaces it unless ignoreDups is
// set, in which case the new entry is discarded; duplicate reports
// which happened.
func (t *GraftTable) Register(entry GraftEntry, ignoreDups bool) (duplicate bool) {
	i, found := t.pos(entry.Hash)
	if found {
		if ignoreDups {
			return true
		}
		t.entries[i] = entry
		return false
	}
	t.entries = append(t.entries, GraftEntry{})
	copy(t.entries[i+1:], t.entries[i:])
	t.entries[i] = entry
	return false
}

// Unregister removes the entry for hash, if any, compacting the array.
func (t *GraftTable) Unregister(hash plumbing.Hash) {
	i, found := t.pos(hash)
	if !found {
		return
	}
	t.entries = append(t.entries[:i], t.entries[i+1:]...)
}

// parseGraftLine tokenizes one non-blank, non-comment graft line into
// an entry. The line must be a whitespace-free sequence of hex hashes
// separated by single spaces, with overall length satisfying
// (len+1) % (HASH_HEX_SIZE+1) == 0 — each token is a fixed-width hash,
// joined by single-space separators, so that identity always holds for
// a well-formed line.
func parseGraftLine(line string) (GraftEntry, error) {
	if len(line) > maxGraftLineLength {
		return GraftEntry{}, NewErrBadGraft(0, "line exceeds %d bytes", maxGraftLineLength)
	}
	if (len(line)+1)%(plumbing.HASH_HEX_SIZE+1) != 0 {
		return GraftEntry{}, NewErrBadGraft(0, "malformed length %d", len(line))
	}
	fields := strings.Split(line, " ")
	hashes := make([]plumbing.Hash, 0, len(fields))
	for _, f := range fields {
		if len(f) != plumbing.HASH_HEX_SIZE {
			return GraftEntry{}, NewErrBadGraft(0, "malformed hash token %q", f)
		}
		h, err := plumbing.NewHashEx(f)
		if err != nil {
			return GraftEntry{}, NewErrBadGraft(0, "%v", err)
		}
		hashes = append(hashes, h)
	}
	return GraftEntry{Hash: hashes[0], Parents: hashes[1:]}, nil
}

// LoadGraftFile reads a UTF-8 graft file and registers every valid
// record with ignoreDups=true. Blank lines and lines starting with "#"
// are skipped. Malformed lines are logged and dropped; loading
// continues with the next line. The only error returned is an I/O
// failure reading path.
func (t *GraftTable) LoadGraftFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	reader := bufio.NewReader(f)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if len(raw) == 0 && readErr == io.EOF {
			return nil
		}
		if readErr != nil && readErr != io.EOF {
			return readErr
		}
		lineNo++
		line := strings.TrimSuffix(strings.TrimSuffix(raw, "\n"), "\r")
		if len(line) == 0 || strings.HasPrefix(line, "#") {
			continue
		}
		entry, err := parseGraftLine(line)
		if err != nil {
			trace.Warnf("graft file %s: line %d: %v", path, lineNo, err)
			continue
		}
		t.Register(entry, true)
	}
}

// Prepare loads the graft file at path exactly once per GraftTable, the
// way the surrounding repository's shallow-state detection is only
// worth running once per process. Subsequent calls return the first
// call's result.
func (t *GraftTable) Prepare(path string) error {
	t.once.Do(func() {
		if len(path) == 0 {
			return
		}
		t.prepErr = t.LoadGraftFile(path)
	})
	return t.prepErr
}

// WriteShallow enumerates every shallow entry (a registered graft with
// no parents) and writes its hash to w, either as a bare 40-hex-digit
// line or, when framed is set, as a pkt-line-wrapped "shallow <hex>"
// record. It returns the number of records written; an I/O failure
// truncates the stream and stops.
func (t *GraftTable) WriteShallow(w io.Writer, framed bool) (int, error) {
	n := 0
	for _, e := range t.entries {
		if !e.shallow() {
			continue
		}
		var err error
		if framed {
			_, err = pktline.EncodeString(w, "shallow "+e.Hash.String())
		} else {
			_, err = io.WriteString(w, e.Hash.String()+"\n")
		}
		if err != nil {
			return n, err
		}
		n++
	}
	if framed && n > 0 {
		if err := pktline.FlushPkt(w); err != nil {
			return n, err
		}
	}
	return n, nil
}

// marshalGraftFile renders entries back to graft-file text in the
// format LoadGraftFile reads. Nothing in this module calls it.
func marshalGraftFile(entries []GraftEntry) []byte {
	var buf bytes.Buffer
	for _, e := range entries {
		buf.WriteString(e.Hash.String())
		for _, p := range e.Parents {
			buf.WriteByte(' ')
			buf.WriteString(p.String())
		}
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"bytes"
	"strings"

	"github.com/antgroup/zeta-graphcore/modules/chardet"
	"github.com/antgroup/zeta-graphcore/modules/plumbing"
)

// Format is one of the catalogue of commit rendering styles.
type Format int

const (
	FormatRaw Format = iota
	FormatMedium
	FormatShort
	FormatEmail
	FormatFull
	FormatFuller
	FormatOneline
	FormatUser
)

// FlagBoundary and FlagSymmetricLeft are two of the caller-owned bits
// (0-15) this package never touches on its own; %m in the user-format
// interpolator reads them to render "-", "<", or ">" the way
// log --left-right marks a symmetric-difference boundary.
const (
	FlagBoundary      uint32 = 1 << 0
	FlagSymmetricLeft uint32 = 1 << 1
)

type formatCandidate struct {
	name   string
	format Format
	min    int
}

var formatCandidates = []formatCandidate{
	{"raw", FormatRaw, 1},
	{"medium", FormatMedium, 1},
	{"short", FormatShort, 1},
	{"email", FormatEmail, 1},
	{"full", FormatFull, 5},
	{"fuller", FormatFuller, 5},
	{"oneline", FormatOneline, 1},
}

// ParseFormat resolves a user-supplied format selector (optionally
// prefixed with "=") against the format catalogue, using the
// shortest-unambiguous-prefix rule: an exact name match always wins;
// otherwise a strict prefix of a single candidate name at least that
// candidate's minimum length wins. "format:<template>" always requires
// the full literal "format:" and returns the remainder as userTemplate.
func ParseFormat(selector string) (format Format, userTemplate string, err error) {
	s := strings.TrimPrefix(selector, "=")
	if strings.HasPrefix(s, "format:") {
		return FormatUser, s[len("format:"):], nil
	}
	for _, c := range formatCandidates {
		if s == c.name {
			return c.format, "", nil
		}
	}
	var matched *formatCandidate
	ambiguous := false
	for i := range formatCandidates {
		c := &formatCandidates[i]
		if len(s) >= c.min && strings.HasPrefix(c.name, s) {
			if matched != nil {
				ambiguous = true
			}
			matched = c
		}
	}
	if matched != nil && !ambiguous {
		return matched.format, "", nil
	}
	return 0, "", NewErrBadFormat(selector)
}

// PrettyOptions configures PrettyPrint.
type PrettyOptions struct {
	Format         Format
	UserTemplate   string
	Abbrev         int
	OutputEncoding string
	DateMode       DateMode
	DateFormatter  DateFormatter
	// SubjectPrefix is written immediately before the subject line in
	// oneline/email mode. Defaults to "" for oneline and "Subject: "
	// for email.
	SubjectPrefix string
	// AfterSubject is appended verbatim after the subject line in
	// oneline/email mode (e.g. a caller's own trailer block).
	AfterSubject string
}

func (o PrettyOptions) subjectPrefix() string {
	if len(o.SubjectPrefix) != 0 {
		return o.SubjectPrefix
	}
	if o.Format == FormatEmail {
		return "Subject: "
	}
	return ""
}

func (o PrettyOptions) abbrev() int {
	if o.Abbrev <= 0 {
		return 7
	}
	return o.Abbrev
}

func (o PrettyOptions) dateFormatter() DateFormatter {
	if o.DateFormatter == nil {
		return DefaultDateFormatter{}
	}
	return o.DateFormatter
}

func (o PrettyOptions) outputEncoding() string {
	if len(o.OutputEncoding) == 0 {
		return "utf-8"
	}
	return o.OutputEncoding
}

// PrettyPrint renders node per opts. node must already be Parsed, and
// should carry a Buffer (see config.SaveCommitBuffer) unless
// opts.Format is FormatUser and the template needs none of %e/%s/%b.
func PrettyPrint(node *Node, opts PrettyOptions) (string, error) {
	if opts.Format == FormatUser {
		return InterpolateUserFormat(node, opts.UserTemplate, opts)
	}

	buf := node.Buffer
	if declared := declaredEncoding(buf); declared != opts.outputEncoding() || len(buf) == 0 {
		if reencoded, ok := logmsgReencode(buf, opts.outputEncoding()); ok {
			buf = reencoded
		}
	}

	headerEnd := bytes.Index(buf, []byte("\n\n"))
	var headerLines, body []byte
	if headerEnd >= 0 {
		headerLines = buf[:headerEnd]
		body = buf[headerEnd+2:]
	} else {
		headerLines = buf
	}

	var out strings.Builder

	if opts.Format == FormatRaw {
		out.Write(headerLines)
		out.WriteString("\n\n")
		writeIndentedBody(&out, body, "    ")
		return out.String(), nil
	}

	if opts.Format != FormatOneline {
		mergeEmitted := false
		for _, line := range bytes.Split(headerLines, []byte("\n")) {
			if bytes.HasPrefix(line, parentPrefix) {
				continue
			}
			if bytes.HasPrefix(line, authorPrefix) || bytes.HasPrefix(line, committerPrefix) {
				if !mergeEmitted {
					writeMergeLine(&out, node, opts)
					mergeEmitted = true
				}
				addUserInfo(&out, node, string(line), opts)
				continue
			}
			// tree, encoding, gpgsig, mergetag, and any other raw
			// header are not part of the rendered output outside raw
			// mode; the pretty-printer only ever surfaces author and
			// committer identity.
		}
		out.WriteString("\n")
	}

	writeBody(&out, node, body, opts)
	return out.String(), nil
}

func writeMergeLine(out *strings.Builder, node *Node, opts PrettyOptions) {
	if len(node.Parents) < 2 || opts.Format == FormatEmail || opts.Format == FormatOneline {
		return
	}
	out.WriteString("Merge:")
	for _, p := range node.Parents {
		out.WriteByte(' ')
		out.WriteString(abbreviateOrFull(p.Hash, opts.abbrev()))
	}
	out.WriteString("\n")
}

func abbreviateOrFull(h plumbing.Hash, n int) string {
	return h.Abbreviate(n)
}

// addUserInfo renders one author/committer header line according to
// opts.Format. line is the raw "author ..." or "committer ..." text
// (no trailing newline).
func addUserInfo(out *strings.Builder, node *Node, line string, opts PrettyOptions) {
	isAuthor := strings.HasPrefix(line, "author ")
	var value string
	if isAuthor {
		value = strings.TrimPrefix(line, "author ")
	} else {
		value = strings.TrimPrefix(line, "committer ")
	}
	name, email, when := splitSignature(value)

	if opts.Format == FormatEmail {
		if isAuthor {
			out.WriteString("From: ")
			addRFC2047(out, name, "utf-8")
			out.WriteString(" <")
			out.WriteString(email)
			out.WriteString(">\n")
		}
		return
	}

	label := "Author:"
	if !isAuthor {
		label = "Commit:"
	}
	out.WriteString(label)
	if opts.Format == FormatFuller {
		out.WriteString(strings.Repeat(" ", 4-len(label)+7))
	} else {
		out.WriteString(" ")
	}
	out.WriteString(name)
	out.WriteString(" <")
	out.WriteString(email)
	out.WriteString(">\n")

	switch opts.Format {
	case FormatMedium:
		if isAuthor {
			writeDateLine(out, "Date:", when, opts)
		}
	case FormatFuller:
		writeDateLine(out, label[:len(label)-1]+"Date:", when, opts)
	}
}

func writeDateLine(out *strings.Builder, label string, when uint64, opts PrettyOptions) {
	out.WriteString(label)
	out.WriteString("   ")
	out.WriteString(opts.dateFormatter().Format(when, opts.DateMode))
	out.WriteString("\n")
}

// splitSignature parses "Name <email> seconds tz" into its parts.
func splitSignature(s string) (name, email string, when uint64) {
	open := strings.IndexByte(s, '<')
	closeIdx := strings.LastIndexByte(s, '>')
	if open == -1 || closeIdx == -1 || closeIdx < open {
		return s, "", 0
	}
	name = strings.TrimSpace(s[:open])
	email = s[open+1 : closeIdx]
	when = parseCommitDate([]byte(s[closeIdx+1:]))
	return name, email, when
}

func writeBody(out *strings.Builder, node *Node, body []byte, opts PrettyOptions) {
	lines := bytes.Split(body, []byte("\n"))
	i := 0
	for i < len(lines) && len(lines[i]) == 0 {
		i++
	}

	if opts.Format == FormatOneline || opts.Format == FormatEmail {
		var subject strings.Builder
		sep := " "
		if opts.Format == FormatEmail {
			sep = "\n "
		}
		first := true
		for ; i < len(lines) && len(lines[i]) != 0; i++ {
			if !first {
				subject.WriteString(sep)
			}
			subject.Write(lines[i])
			first = false
		}
		out.WriteString(opts.subjectPrefix())
		if opts.Format == FormatEmail {
			addRFC2047(out, subject.String(), "utf-8")
		} else {
			out.WriteString(subject.String())
		}
		out.WriteString(opts.AfterSubject)
		out.WriteString("\n")
		if opts.Format == FormatEmail {
			out.WriteString("\n")
			i++
			writeIndentedBody(out, joinLines(lines[min(i, len(lines)):]), "")
		}
		return
	}

	writeIndentedBody(out, joinLines(lines[i:]), "    ")
}

func joinLines(lines [][]byte) []byte {
	return bytes.Join(lines, []byte("\n"))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// writeIndentedBody writes body with each line prefixed by indent,
// trimming trailing whitespace per line and ensuring exactly one
// trailing newline.
func writeIndentedBody(out *strings.Builder, body []byte, indent string) {
	trimmed := strings.TrimRight(string(body), "\n")
	if len(trimmed) == 0 {
		return
	}
	for _, line := range strings.Split(trimmed, "\n") {
		out.WriteString(indent)
		out.WriteString(strings.TrimRight(line, " \t\r"))
		out.WriteString("\n")
	}
}

// declaredEncoding extracts the value of the "encoding" header from a
// raw commit buffer's headers, defaulting to "utf-8" when absent.
func declaredEncoding(buf []byte) string {
	headerEnd := bytes.Index(buf, []byte("\n\n"))
	header := buf
	if headerEnd >= 0 {
		header = buf[:headerEnd]
	}
	for _, line := range bytes.Split(header, []byte("\n")) {
		if bytes.HasPrefix(line, encodingPrefix) {
			return string(bytes.TrimSpace(line[len(encodingPrefix):]))
		}
	}
	return "utf-8"
}

// logmsgReencode transcodes buf from its declared encoding to output,
// rewriting (or removing, for UTF-8) the encoding header in the
// result. ok is false when no transcoding was necessary or possible,
// in which case the caller should keep using the original buffer.
func logmsgReencode(buf []byte, output string) ([]byte, bool) {
	declared := declaredEncoding(buf)
	if strings.EqualFold(declared, output) {
		return nil, false
	}
	headerEnd := bytes.Index(buf, []byte("\n\n"))
	if headerEnd < 0 {
		return nil, false
	}
	header := buf[:headerEnd]
	body := buf[headerEnd:]

	transcoded, err := chardet.DecodeFromCharset(body, declared)
	if err != nil {
		return nil, false
	}
	if !strings.EqualFold(output, "utf-8") {
		if reencoded, err := chardet.EncodeToCharset(transcoded, output); err == nil {
			transcoded = reencoded
		}
	}

	var newHeader bytes.Buffer
	for _, line := range bytes.Split(header, []byte("\n")) {
		if bytes.HasPrefix(line, encodingPrefix) {
			if strings.EqualFold(output, "utf-8") {
				continue
			}
			newHeader.WriteString("encoding ")
			newHeader.WriteString(output)
			newHeader.WriteByte('\n')
			continue
		}
		newHeader.Write(line)
		newHeader.WriteByte('\n')
	}
	result := append(bytes.TrimSuffix(newHeader.Bytes(), []byte("\n")), transcoded...)
	return result, true
}

// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"strings"

	"github.com/mgutz/ansi"
)

const maxParentListBytes = 1024

const unknownToken = "<unknown>"

// InterpolateUserFormat substitutes the %-token vocabulary into
// template against node, writing into a growable buffer the way a
// two-pass measure-then-fill renderer would, though a single pass over
// a strings.Builder already amortizes the reallocation.
func InterpolateUserFormat(node *Node, template string, opts PrettyOptions) (string, error) {
	var out strings.Builder
	out.Grow(len(template) * 2)

	runes := []rune(template)
	for i := 0; i < len(runes); i++ {
		if runes[i] != '%' || i+1 >= len(runes) {
			out.WriteRune(runes[i])
			continue
		}
		token, width := matchToken(runes[i+1:])
		if token == "" {
			out.WriteRune(runes[i])
			continue
		}
		writeToken(&out, node, token, opts)
		i += width
	}
	return out.String(), nil
}

// userFormatTokens is the %-token vocabulary. matchToken picks the
// longest token that matches, so the order of this list does not
// matter: a shorter token never shadows a longer one.
var userFormatTokens = []string{
	"H", "h", "T", "t", "P", "p",
	"an", "ae", "ad", "aD", "ar", "at", "ai",
	"cn", "ce", "cd", "cD", "cr", "ct", "ci",
	"e", "s", "b",
	"Cred", "Cgreen", "Cblue", "Creset",
	"n", "m",
}

func matchToken(rest []rune) (string, int) {
	best := ""
	for _, t := range userFormatTokens {
		tr := []rune(t)
		if len(tr) > len(rest) {
			continue
		}
		if string(rest[:len(tr)]) == t && len(tr) > len(best) {
			best = t
		}
	}
	return best, len(best)
}

func writeToken(out *strings.Builder, node *Node, token string, opts PrettyOptions) {
	switch token {
	case "H":
		out.WriteString(node.Hash.String())
	case "h":
		out.WriteString(node.Hash.Abbreviate(opts.abbrev()))
	case "T":
		out.WriteString(node.Tree.String())
	case "t":
		out.WriteString(node.Tree.Abbreviate(opts.abbrev()))
	case "P":
		out.WriteString(parentList(node, opts.abbrev(), false))
	case "p":
		out.WriteString(parentList(node, opts.abbrev(), true))
	case "an", "ae", "ad", "aD", "ar", "at", "ai",
		"cn", "ce", "cd", "cD", "cr", "ct", "ci":
		writeSignatureToken(out, node, token, opts)
	case "e":
		out.WriteString(orUnknown(declaredEncoding(node.Buffer)))
	case "s":
		out.WriteString(orUnknown(subjectOf(node.Buffer)))
	case "b":
		out.WriteString(orUnknown(bodyOf(node.Buffer)))
	case "Cred":
		out.WriteString(ansi.ColorCode("red"))
	case "Cgreen":
		out.WriteString(ansi.ColorCode("green"))
	case "Cblue":
		out.WriteString(ansi.ColorCode("blue"))
	case "Creset":
		out.WriteString(ansi.Reset)
	case "n":
		out.WriteString("\n")
	case "m":
		out.WriteString(boundaryMarker(node))
	}
}

func boundaryMarker(node *Node) string {
	switch {
	case node.Flags&FlagBoundary != 0:
		return "-"
	case node.Flags&FlagSymmetricLeft != 0:
		return "<"
	default:
		return ">"
	}
}

func orUnknown(s string) string {
	if len(s) == 0 {
		return unknownToken
	}
	return s
}

// parentList space-joins node's parent hashes (abbreviated if abbrev
// is set), truncated to maxParentListBytes.
func parentList(node *Node, abbrevN int, abbrev bool) string {
	var b strings.Builder
	for _, p := range node.Parents {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		if abbrev {
			b.WriteString(p.Hash.Abbreviate(abbrevN))
		} else {
			b.WriteString(p.Hash.String())
		}
		if b.Len() >= maxParentListBytes {
			break
		}
	}
	s := b.String()
	if len(s) > maxParentListBytes {
		s = s[:maxParentListBytes]
	}
	return s
}

func writeSignatureToken(out *strings.Builder, node *Node, token string, opts PrettyOptions) {
	isAuthor := token[0] == 'a'
	line := headerLine(node.Buffer, map[bool]string{true: "author ", false: "committer "}[isAuthor])
	if line == "" {
		out.WriteString(unknownToken)
		return
	}
	name, email, when := splitSignature(line)
	switch token[1:] {
	case "n":
		out.WriteString(orUnknown(name))
	case "e":
		out.WriteString(orUnknown(email))
	case "d":
		out.WriteString(opts.dateFormatter().Format(when, DateNormal))
	case "D":
		out.WriteString(opts.dateFormatter().Format(when, DateRFC2822))
	case "r":
		out.WriteString(opts.dateFormatter().Format(when, DateRelative))
	case "i":
		out.WriteString(opts.dateFormatter().Format(when, DateISO8601))
	case "t":
		out.WriteString(uintToString(when))
	}
}

func uintToString(v uint64) string {
	if v == 0 {
		return "0"
	}
	var digits [20]byte
	i := len(digits)
	for v > 0 {
		i--
		digits[i] = byte('0' + v%10)
		v /= 10
	}
	return string(digits[i:])
}

func headerLine(buf []byte, prefix string) string {
	for _, raw := range splitLinesKeepPrefix(buf) {
		if strings.HasPrefix(raw, prefix) {
			return strings.TrimPrefix(raw, prefix)
		}
		if raw == "" {
			break
		}
	}
	return ""
}

func splitLinesKeepPrefix(buf []byte) []string {
	return strings.Split(string(buf), "\n")
}

func subjectOf(buf []byte) string {
	body := bodyOf(buf)
	var lines []string
	for _, l := range strings.Split(body, "\n") {
		if l == "" {
			break
		}
		lines = append(lines, l)
	}
	return strings.Join(lines, " ")
}

func bodyOf(buf []byte) string {
	idx := strings.Index(string(buf), "\n\n")
	if idx == -1 {
		return ""
	}
	return string(buf[idx+2:])
}

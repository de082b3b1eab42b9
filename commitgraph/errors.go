// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package commitgraph

import (
	"fmt"

	"github.com/antgroup/zeta-graphcore/modules/plumbing"
)

// ErrBadCommit signals a malformed tree or parent header in a commit
// buffer. The Node being parsed is left unparsed; no partial mutation
// is unwound.
type ErrBadCommit struct {
	Hash   plumbing.Hash
	Reason string
}

func (e *ErrBadCommit) Error() string {
	return fmt.Sprintf("commitgraph: bad commit %s: %s", e.Hash, e.Reason)
}

func NewErrBadCommit(hash plumbing.Hash, format string, a ...any) error {
	return &ErrBadCommit{Hash: hash, Reason: fmt.Sprintf(format, a...)}
}

func IsErrBadCommit(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrBadCommit)
	return ok
}

// ErrWrongKind signals that a hash resolved to a non-commit object (or a
// tag pointing at one) where a commit was required.
type ErrWrongKind struct {
	Hash plumbing.Hash
}

func (e *ErrWrongKind) Error() string {
	return fmt.Sprintf("commitgraph: %s is not a commit", e.Hash)
}

func NewErrWrongKind(hash plumbing.Hash) error {
	return &ErrWrongKind{Hash: hash}
}

func IsErrWrongKind(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrWrongKind)
	return ok
}

// ErrBadGraft signals a graft line that failed structural validation.
// The caller logs it and continues with the next line; the bad line is
// dropped.
type ErrBadGraft struct {
	Line   int
	Reason string
}

func (e *ErrBadGraft) Error() string {
	return fmt.Sprintf("commitgraph: bad graft line %d: %s", e.Line, e.Reason)
}

func NewErrBadGraft(line int, format string, a ...any) error {
	return &ErrBadGraft{Line: line, Reason: fmt.Sprintf(format, a...)}
}

func IsErrBadGraft(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrBadGraft)
	return ok
}

// ErrBadFormat signals an unrecognised pretty-format selector. Fatal to
// the current operation.
type ErrBadFormat struct {
	Selector string
}

func (e *ErrBadFormat) Error() string {
	return fmt.Sprintf("commitgraph: unrecognised format %q", e.Selector)
}

func NewErrBadFormat(selector string) error {
	return &ErrBadFormat{Selector: selector}
}

func IsErrBadFormat(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrBadFormat)
	return ok
}

// ErrNotImplemented signals a request this package deliberately leaves
// unimplemented — multi-reference InMergeBases.
type ErrNotImplemented struct {
	What string
}

func (e *ErrNotImplemented) Error() string {
	return fmt.Sprintf("commitgraph: not implemented: %s", e.What)
}

func NewErrNotImplemented(what string) error {
	return &ErrNotImplemented{What: what}
}

func IsErrNotImplemented(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*ErrNotImplemented)
	return ok
}

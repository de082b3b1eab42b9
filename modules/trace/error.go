// Copyright ©️ Ant Group. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package trace is the commit graph core's diagnostics helper: recoverable
// conditions (a malformed graft line) are logged here rather than silently
// dropped, and fatal ones are tagged with their call site.
package trace

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// Location reports the function name and line number of the caller
// `skip` frames up the stack.
func Location(skip int) (string, int) {
	pc, _, line, ok := runtime.Caller(skip)
	if !ok {
		return "?", line
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "?", line
	}
	return fn.Name(), line
}

// Errorf logs a fatal-to-the-current-operation condition with its call
// site and returns it as an error.
func Errorf(format string, a ...any) error {
	fn, line := Location(2)
	msg := fmt.Sprintf(format, a...)
	logrus.WithField("at", fmt.Sprintf("%s:%d", fn, line)).Error(msg)
	return errors.New(msg)
}

// Warnf logs a recoverable condition (a malformed graft line) without
// aborting the caller's operation.
func Warnf(format string, a ...any) {
	fn, line := Location(2)
	logrus.WithField("at", fmt.Sprintf("%s:%d", fn, line)).Warn(fmt.Sprintf(format, a...))
}

package plumbing

import (
	"errors"
	"fmt"
)

// ErrStop is used to stop a ForEach-style callback early without
// surfacing an error to the caller.
var ErrStop = errors.New("stop iter")

// noSuchObject is an error type that occurs when no object with a given
// object ID is available from a Backend.
type noSuchObject struct {
	oid Hash
}

func (e *noSuchObject) Error() string {
	return fmt.Sprintf("commitgraph: no such object: %s", e.oid)
}

// NoSuchObject creates an error representing a missing object with the
// given object ID.
func NoSuchObject(oid Hash) error {
	return &noSuchObject{oid: oid}
}

// IsNoSuchObject indicates whether an error is a noSuchObject.
func IsNoSuchObject(e error) bool {
	if e == nil {
		return false
	}
	err, ok := e.(*noSuchObject)
	return ok && err != nil
}

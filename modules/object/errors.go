package object

import (
	"fmt"

	"github.com/strandvcs/strand/modules/plumbing"
)

// errEntryNotFound is returned by Tree.FindEntry when no entry exists at a
// path.
type errEntryNotFound struct {
	path string
}

func (e *errEntryNotFound) Error() string {
	return fmt.Sprintf("strand: entry not found: %s", e.path)
}

func ErrEntryNotFound(path string) error {
	return &errEntryNotFound{path: path}
}

func IsErrEntryNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*errEntryNotFound)
	return ok
}

// errDirectoryNotFound is returned walking a path when an intermediate
// component is not a directory entry.
type errDirectoryNotFound struct {
	path string
}

func (e *errDirectoryNotFound) Error() string {
	return fmt.Sprintf("strand: directory not found: %s", e.path)
}

func ErrDirectoryNotFound(path string) error {
	return &errDirectoryNotFound{path: path}
}

func IsErrDirectoryNotFound(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*errDirectoryNotFound)
	return ok
}

// errBackend wraps a failure reading from the Backend: the object id could
// not be resolved at all.
type errBackend struct {
	oid plumbing.Hash
	err error
}

func (e *errBackend) Error() string {
	return fmt.Sprintf("strand: backend: resolving %s: %v", e.oid, e.err)
}

func (e *errBackend) Unwrap() error { return e.err }

func ErrBackend(oid plumbing.Hash, err error) error {
	return &errBackend{oid: oid, err: err}
}

func IsErrBackend(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*errBackend)
	return ok
}

// errBackendRead wraps a failure reading a file's content once its tree
// entry was resolved: a blob the Backend cannot hand back, or an entry whose
// blob list cannot be materialised (e.g. a broken conflict encoding). It is
// distinct from errBackend, which covers commits and trees.
type errBackendRead struct {
	oid plumbing.Hash
	err error
}

func (e *errBackendRead) Error() string {
	return fmt.Sprintf("strand: backend read: %s: %v", e.oid, e.err)
}

func (e *errBackendRead) Unwrap() error { return e.err }

func ErrBackendRead(oid plumbing.Hash, err error) error {
	return &errBackendRead{oid: oid, err: err}
}

func IsErrBackendRead(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*errBackendRead)
	return ok
}

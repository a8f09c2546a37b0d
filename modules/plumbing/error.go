package plumbing

import (
	"fmt"
)

// noSuchObject is returned when an object id is not present in a Backend.
type noSuchObject struct {
	oid Hash
}

func (e *noSuchObject) Error() string {
	return fmt.Sprintf("strand: no such object: %s", e.oid)
}

// NoSuchObject creates an error representing a missing object.
func NoSuchObject(oid Hash) error {
	return &noSuchObject{oid: oid}
}

// IsNoSuchObject reports whether err was created by NoSuchObject.
func IsNoSuchObject(err error) bool {
	if err == nil {
		return false
	}
	_, ok := err.(*noSuchObject)
	return ok
}

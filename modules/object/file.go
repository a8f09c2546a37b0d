// Copyright 2018 Sourced Technologies, S.L.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"bytes"
	"context"
	"fmt"

	"github.com/strandvcs/strand/modules/plumbing"
)

// File is a path resolved against a particular tree: its mode and the
// TreeEntry backing it. Contents is lazy, loaded through the Backend.
type File struct {
	Path  string
	Mode  plumbing.FileMode
	Entry *TreeEntry
}

// Contents returns the file's bytes. A regular file is a single blob read
// straight through; a conflicted entry is rendered into canonical conflict
// markers (Hashes holds adds at even indices and removes at odd indices, so
// len(Hashes) is always odd for an unresolved conflict). Materialisation
// lives here since this module has no separate merge subsystem to own it.
func (f *File) Contents(ctx context.Context, b Backend) ([]byte, error) {
	if !f.Mode.IsConflict() {
		if len(f.Entry.Hashes) != 1 {
			return nil, ErrBackendRead(plumbing.ZeroHash, fmt.Errorf("regular file %q has %d blobs, want 1", f.Path, len(f.Entry.Hashes)))
		}
		blob, err := b.Blob(ctx, f.Entry.Hashes[0])
		if err != nil {
			return nil, ErrBackendRead(f.Entry.Hashes[0], err)
		}
		return blob.Content, nil
	}
	return materializeConflict(ctx, b, f.Entry.Hashes)
}

func materializeConflict(ctx context.Context, b Backend, hashes []plumbing.Hash) ([]byte, error) {
	if len(hashes) < 3 || len(hashes)%2 == 0 {
		return nil, ErrBackendRead(plumbing.ZeroHash, fmt.Errorf("malformed conflict: %d sides", len(hashes)))
	}
	// A failed read on any side cites the first conflict term's id, the
	// object a caller would reach for first when debugging the entry.
	content := func(h plumbing.Hash) ([]byte, error) {
		blob, err := b.Blob(ctx, h)
		if err != nil {
			return nil, ErrBackendRead(hashes[0], err)
		}
		return blob.Content, nil
	}

	var out bytes.Buffer
	adds := make([][]byte, 0, (len(hashes)+1)/2)
	removes := make([][]byte, 0, len(hashes)/2)
	for i, h := range hashes {
		c, err := content(h)
		if err != nil {
			return nil, err
		}
		if i%2 == 0 {
			adds = append(adds, c)
		} else {
			removes = append(removes, c)
		}
	}

	fmt.Fprintf(&out, "<<<<<<< add #1\n")
	writeBlock(&out, adds[0])
	for i, rm := range removes {
		fmt.Fprintf(&out, "||||||| remove #%d\n", i+1)
		writeBlock(&out, rm)
		fmt.Fprintf(&out, "======= add #%d\n", i+2)
		writeBlock(&out, adds[i+1])
	}
	fmt.Fprintf(&out, ">>>>>>>\n")
	return out.Bytes(), nil
}

func writeBlock(out *bytes.Buffer, b []byte) {
	out.Write(b)
	if len(b) == 0 || b[len(b)-1] != '\n' {
		out.WriteByte('\n')
	}
}

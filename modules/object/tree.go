// Copyright 2018 Sourced Technologies, S.L.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/strandvcs/strand/modules/plumbing"
)

// TreeEntry is one path component of a Tree. Hashes holds exactly one blob
// id for a regular file; when Mode is FileConflict it holds the conflict's
// alternating add/remove terms, starting and ending with an add, so its
// length is always odd.
type TreeEntry struct {
	Name   string
	Mode   plumbing.FileMode
	Hashes []plumbing.Hash
}

func (e *TreeEntry) IsConflict() bool { return e.Mode.IsConflict() }

// Tree is a directory listing: a flat, sorted slice of entries.
type Tree struct {
	Hash    plumbing.Hash
	Entries []*TreeEntry
}

// SubtreeOrder sorts entries with directories ordered as if their name
// carried a trailing slash, so "foo" and "foo.go" order correctly relative
// to the directory "foo/".
type SubtreeOrder []*TreeEntry

func (a SubtreeOrder) Len() int      { return len(a) }
func (a SubtreeOrder) Swap(i, j int) { a[i], a[j] = a[j], a[i] }
func (a SubtreeOrder) Less(i, j int) bool {
	ni, nj := a[i].Name, a[j].Name
	if a[i].Mode.IsDir() {
		ni += "/"
	}
	if a[j].Mode.IsDir() {
		nj += "/"
	}
	return ni < nj
}

// Entry returns the direct child entry named name, or ErrEntryNotFound.
func (t *Tree) Entry(name string) (*TreeEntry, error) {
	for _, e := range t.Entries {
		if e.Name == name {
			return e, nil
		}
	}
	return nil, ErrEntryNotFound(name)
}

// FindEntry walks relativePath component by component, descending through
// subtrees via b. Trees here are small enough that a plain descent needs no
// per-call directory cache.
func (t *Tree) FindEntry(ctx context.Context, b Backend, relativePath string) (*TreeEntry, error) {
	relativePath = strings.Trim(path.Clean(relativePath), "/")
	if relativePath == "" || relativePath == "." {
		return nil, ErrEntryNotFound(relativePath)
	}
	parts := strings.Split(relativePath, "/")
	cur := t
	for i, name := range parts {
		e, err := cur.Entry(name)
		if err != nil {
			return nil, ErrEntryNotFound(relativePath)
		}
		if i == len(parts)-1 {
			return e, nil
		}
		if !e.Mode.IsDir() {
			return nil, ErrDirectoryNotFound(strings.Join(parts[:i+1], "/"))
		}
		if len(e.Hashes) == 0 {
			return nil, ErrDirectoryNotFound(strings.Join(parts[:i+1], "/"))
		}
		sub, err := b.Tree(ctx, e.Hashes[0])
		if err != nil {
			return nil, ErrBackend(e.Hashes[0], err)
		}
		cur = sub
	}
	return nil, ErrEntryNotFound(relativePath)
}

// Tree descends to the subtree at relativePath.
func (t *Tree) Tree(ctx context.Context, b Backend, relativePath string) (*Tree, error) {
	relativePath = strings.Trim(path.Clean(relativePath), "/")
	if relativePath == "" || relativePath == "." {
		return t, nil
	}
	e, err := t.FindEntry(ctx, b, relativePath)
	if err != nil {
		return nil, err
	}
	if !e.Mode.IsDir() || len(e.Hashes) == 0 {
		return nil, ErrDirectoryNotFound(relativePath)
	}
	sub, err := b.Tree(ctx, e.Hashes[0])
	if err != nil {
		return nil, ErrBackend(e.Hashes[0], err)
	}
	return sub, nil
}

// File resolves relativePath to a File, the entry plus its own path.
func (t *Tree) File(ctx context.Context, b Backend, relativePath string) (*File, error) {
	e, err := t.FindEntry(ctx, b, relativePath)
	if err != nil {
		return nil, err
	}
	if e.Mode.IsDir() {
		return nil, ErrEntryNotFound(relativePath)
	}
	return &File{Path: relativePath, Mode: e.Mode, Entry: e}, nil
}

// Append inserts or replaces an entry, keeping Entries sorted.
func (t *Tree) Append(e *TreeEntry) {
	for i, existing := range t.Entries {
		if existing.Name == e.Name {
			t.Entries[i] = e
			return
		}
	}
	t.Entries = append(t.Entries, e)
	sort.Sort(SubtreeOrder(t.Entries))
}

// Copyright 2018 Sourced Technologies, S.L.
// SPDX-License-Identifier: Apache-2.0

package object

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/strandvcs/strand/modules/plumbing"
)

// Signature is the commit metadata attached to an authorship event. This
// module never parses a commit object off disk, only reads through a
// Backend, so there is no wire-format decoding here.
type Signature struct {
	Name  string
	Email string
	When  time.Time
}

func (s Signature) String() string {
	return fmt.Sprintf("%s <%s>", s.Name, s.Email)
}

// Commit is a single revision: parents, tree, and message. Graph order is
// defined by Parents; "direct" vs "missing" parent classification happens
// one layer up, in the revset walker, since it depends on what the Backend
// can resolve rather than on the Commit value itself.
type Commit struct {
	Hash      plumbing.Hash
	Author    Signature
	Committer Signature
	Parents   []plumbing.Hash
	Tree      plumbing.Hash
	Message   string
}

func (c *Commit) NumParents() int { return len(c.Parents) }

// Less orders commits by committer time, then author time, then hash, so
// that ties between same-generation commits resolve deterministically.
func (c *Commit) Less(other *Commit) bool {
	if !c.Committer.When.Equal(other.Committer.When) {
		return c.Committer.When.Before(other.Committer.When)
	}
	if !c.Author.When.Equal(other.Author.When) {
		return c.Author.When.Before(other.Author.When)
	}
	return string(c.Hash[:]) < string(other.Hash[:])
}

func (c *Commit) Subject() string {
	if i := strings.IndexByte(c.Message, '\n'); i >= 0 {
		return c.Message[:i]
	}
	return c.Message
}

func (c *Commit) String() string {
	return fmt.Sprintf("commit %s\nAuthor: %s\n\n%s\n", c.Hash, c.Author, c.Message)
}

// Root resolves the commit's root tree through b.
func (c *Commit) Root(ctx context.Context, b Backend) (*Tree, error) {
	return b.Tree(ctx, c.Tree)
}

// File resolves path against the commit's root tree.
func (c *Commit) File(ctx context.Context, b Backend, path string) (*File, error) {
	root, err := c.Root(ctx, b)
	if err != nil {
		return nil, err
	}
	return root.File(ctx, b, path)
}

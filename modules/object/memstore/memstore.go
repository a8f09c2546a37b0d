// Package memstore is a content-addressed, in-memory object.Backend used by
// tests and the CLI demo fixture, so the attribution engine can be
// exercised end to end without a real repository on disk.
package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/strandvcs/strand/modules/object"
	"github.com/strandvcs/strand/modules/plumbing"
)

// Store is a minimal content-addressed object database: every Blob and Tree
// is keyed by the BLAKE3 hash of its canonical encoding, and commits are
// keyed by caller-supplied hashes (mirroring a real commit id, which is a
// hash over the parent/tree/author/message tuple; this module never needs
// to reproduce that encoding bit for bit, only to be self-consistent).
type Store struct {
	commits map[plumbing.Hash]*object.Commit
	trees   map[plumbing.Hash]*object.Tree
	blobs   map[plumbing.Hash]*object.Blob
}

func New() *Store {
	return &Store{
		commits: make(map[plumbing.Hash]*object.Commit),
		trees:   make(map[plumbing.Hash]*object.Tree),
		blobs:   make(map[plumbing.Hash]*object.Blob),
	}
}

var _ object.Backend = (*Store)(nil)

func (s *Store) Commit(_ context.Context, h plumbing.Hash) (*object.Commit, error) {
	c, ok := s.commits[h]
	if !ok {
		return nil, plumbing.NoSuchObject(h)
	}
	return c, nil
}

func (s *Store) Tree(_ context.Context, h plumbing.Hash) (*object.Tree, error) {
	t, ok := s.trees[h]
	if !ok {
		return nil, plumbing.NoSuchObject(h)
	}
	return t, nil
}

func (s *Store) Blob(_ context.Context, h plumbing.Hash) (*object.Blob, error) {
	b, ok := s.blobs[h]
	if !ok {
		return nil, plumbing.NoSuchObject(h)
	}
	return b, nil
}

// PutBlob hashes and stores content, returning its id.
func (s *Store) PutBlob(content []byte) plumbing.Hash {
	h := plumbing.HashContent(content)
	if _, ok := s.blobs[h]; !ok {
		s.blobs[h] = &object.Blob{Hash: h, Content: content}
	}
	return h
}

// PutTree hashes and stores a tree built from entries, returning its id.
// The encoding hashed is deliberately simple (name/mode/hashes tuples,
// concatenated in SubtreeOrder); it only has to be stable within one
// Store, not compatible with any on-disk format.
func (s *Store) PutTree(entries ...*object.TreeEntry) plumbing.Hash {
	t := &object.Tree{Entries: append([]*object.TreeEntry(nil), entries...)}
	sort.Sort(object.SubtreeOrder(t.Entries))
	h := plumbing.NewHasher()
	for _, e := range object.SubtreeOrder(t.Entries) {
		_, _ = h.Write([]byte(e.Name))
		_, _ = h.Write([]byte{byte(e.Mode)})
		for _, bh := range e.Hashes {
			_, _ = h.Write(bh[:])
		}
	}
	hash := h.Sum()
	t.Hash = hash
	s.trees[hash] = t
	return hash
}

// CommitSpec is the caller-facing shape for building a fixture commit: a
// literal hash (tests use short readable hex strings) rather than a derived
// one, since this store has no wire encoding to hash over.
type CommitSpec struct {
	Hash        string
	Parents     []string
	Tree        plumbing.Hash
	Message     string
	AuthorName  string
	AuthorEmail string
	When        time.Time
}

// PutCommit registers a commit built from spec and returns its hash.
func (s *Store) PutCommit(spec CommitSpec) plumbing.Hash {
	h := plumbing.NewHash(spec.Hash)
	parents := make([]plumbing.Hash, len(spec.Parents))
	for i, p := range spec.Parents {
		parents[i] = plumbing.NewHash(p)
	}
	name, email := spec.AuthorName, spec.AuthorEmail
	if name == "" {
		name, email = "Test Author", "test@example.com"
	}
	sig := object.Signature{Name: name, Email: email, When: spec.When}
	c := &object.Commit{
		Hash:      h,
		Author:    sig,
		Committer: sig,
		Parents:   parents,
		Tree:      spec.Tree,
		Message:   spec.Message,
	}
	s.commits[h] = c
	return h
}

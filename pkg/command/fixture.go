// Package command holds the CLI surface: command structs, fixture loading,
// and the debug tracing the engine itself never touches.
package command

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/strandvcs/strand/modules/object"
	"github.com/strandvcs/strand/modules/object/memstore"
	"github.com/strandvcs/strand/modules/plumbing"
)

// fixtureCommit is one entry of a JSON repository fixture: a full snapshot
// of every file's content at that commit, keyed by file name. Each key
// becomes one entry of a single flat root tree, so a key containing '/' is
// not resolvable as a nested path by Tree.FindEntry; only top-level names
// can be annotated. Real backends resolve trees incrementally; a fixture
// just restates the whole snapshot each time, which is fine for a CLI demo rig and keeps the
// format trivial to hand-write.
type fixtureCommit struct {
	Hash        string            `json:"hash"`
	Parents     []string          `json:"parents"`
	Message     string            `json:"message"`
	AuthorName  string            `json:"author_name"`
	AuthorEmail string            `json:"author_email"`
	When        time.Time         `json:"when"`
	Files       map[string]string `json:"files"`
}

type fixtureRepo struct {
	Commits []fixtureCommit `json:"commits"`
}

// LoadFixture reads a JSON repository fixture from path and materialises it
// into a memstore.Store, returning the store and the hash named head (or
// the fixture's last commit if head is empty).
func LoadFixture(path, head string) (*memstore.Store, plumbing.Hash, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("strand: reading fixture %q: %w", path, err)
	}
	var repo fixtureRepo
	if err := json.Unmarshal(data, &repo); err != nil {
		return nil, plumbing.ZeroHash, fmt.Errorf("strand: decoding fixture %q: %w", path, err)
	}
	if len(repo.Commits) == 0 {
		return nil, plumbing.ZeroHash, fmt.Errorf("strand: fixture %q has no commits", path)
	}

	store := memstore.New()
	var last plumbing.Hash
	for _, fc := range repo.Commits {
		entries := make([]*object.TreeEntry, 0, len(fc.Files))
		for p, content := range fc.Files {
			blob := store.PutBlob([]byte(content))
			entries = append(entries, &object.TreeEntry{Name: p, Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{blob}})
		}
		tree := store.PutTree(entries...)
		last = store.PutCommit(memstore.CommitSpec{
			Hash:        fc.Hash,
			Parents:     fc.Parents,
			Tree:        tree,
			Message:     fc.Message,
			AuthorName:  fc.AuthorName,
			AuthorEmail: fc.AuthorEmail,
			When:        fc.When,
		})
	}

	headHash := last
	if head != "" {
		headHash, err = resolveHead(head)
		if err != nil {
			return nil, plumbing.ZeroHash, err
		}
	}
	return store, headHash, nil
}

// resolveHead parses a user-supplied commit id. A full-length id is parsed
// strictly so a typo errors out; anything shorter is taken as the same
// zero-padded short form the fixture's own commit hashes use.
func resolveHead(head string) (plumbing.Hash, error) {
	if len(head) == plumbing.HASH_HEX_SIZE {
		return plumbing.NewHashStrict(head)
	}
	return plumbing.NewHash(head), nil
}

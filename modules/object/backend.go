package object

import (
	"context"

	"github.com/strandvcs/strand/modules/plumbing"
)

// Backend is the repository view the engine reads through: commit store,
// tree store, and blob store, kept as one small interface so a caller can
// swap in any object database without the engine knowing the difference.
// memstore is the in-repo implementation used by tests and the CLI demo.
type Backend interface {
	Commit(ctx context.Context, oid plumbing.Hash) (*Commit, error)
	Tree(ctx context.Context, oid plumbing.Hash) (*Tree, error)
	Blob(ctx context.Context, oid plumbing.Hash) (*Blob, error)
}

package annotate

import (
	"context"
	"testing"
	"time"

	"github.com/strandvcs/strand/modules/object"
	"github.com/strandvcs/strand/modules/object/memstore"
	"github.com/strandvcs/strand/modules/plumbing"
	"github.com/stretchr/testify/require"
)

const filePath = "greeting.txt"

// commitWithFile stores content at path in a single-file root tree and
// registers a commit, returning its hash.
func commitWithFile(t *testing.T, store *memstore.Store, hash string, parents []string, content string, at time.Time) string {
	t.Helper()
	blob := store.PutBlob([]byte(content))
	tree := store.PutTree(&object.TreeEntry{Name: filePath, Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{blob}})
	store.PutCommit(memstore.CommitSpec{
		Hash:    hash,
		Parents: parents,
		Tree:    tree,
		Message: hash,
		When:    at,
	})
	return hash
}

func head(t *testing.T, store *memstore.Store, hash string) *object.Commit {
	t.Helper()
	c, err := store.Commit(context.Background(), plumbing.NewHash(hash))
	require.NoError(t, err)
	return c
}

// TestLinearHistoryOwnership walks a 3-commit linear chain, each commit
// adding one line, and checks every line is attributed to the commit that
// introduced it (scenario: straightforward append-only history).
func TestLinearHistoryOwnership(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "hello\n", base)
	h2 := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{h1}, "hello\nworld\n", base.Add(time.Hour))
	h3 := commitWithFile(t, store, "3333333333333333333333333333333333333333", []string{h2}, "hello\nworld\nagain\n", base.Add(2*time.Hour))

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h3), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	require.Equal(t, plumbing.NewHash(h1), result.Lines[0].Commit)
	require.Equal(t, plumbing.NewHash(h2), result.Lines[1].Commit)
	require.Equal(t, plumbing.NewHash(h3), result.Lines[2].Commit)
	require.Equal(t, "hello\n", string(result.Lines[0].Text))
	require.Equal(t, "world\n", string(result.Lines[1].Text))
	require.Equal(t, "again\n", string(result.Lines[2].Text))
}

// TestUnchangedLinePassesThroughMerge checks that a line untouched across a
// merge is attributed to the ancestor that actually introduced it, not the
// merge commit itself (scenario: merge commits never "steal" authorship of
// lines neither side changed).
func TestUnchangedLinePassesThroughMerge(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	root := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "hello\n", base)
	left := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{root}, "hello\nleft\n", base.Add(time.Hour))
	right := commitWithFile(t, store, "3333333333333333333333333333333333333333", []string{root}, "hello\nright\n", base.Add(time.Hour))
	merge := commitWithFile(t, store, "4444444444444444444444444444444444444444", []string{left, right}, "hello\nleft\nright\n", base.Add(2*time.Hour))

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, merge), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	require.Equal(t, plumbing.NewHash(root), result.Lines[0].Commit)
	require.Equal(t, plumbing.NewHash(left), result.Lines[1].Commit)
	require.Equal(t, plumbing.NewHash(right), result.Lines[2].Commit)
}

// TestAbsentPathReturnsEmptyResult checks that annotating a path that never
// exists at the starting commit returns an empty result rather than an
// error (scenario: absent-path identity).
func TestAbsentPathReturnsEmptyResult(t *testing.T) {
	store := memstore.New()
	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "hello\n", time.Now())

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h1), "missing.txt")
	require.NoError(t, err)
	require.Empty(t, result.Lines)
}

// TestIdempotence checks that running the same annotation twice produces
// identical results (scenario: idempotence; the engine holds no state
// across calls).
func TestIdempotence(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "a\nb\nc\n", base)
	h2 := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{h1}, "a\nb\nc\nd\n", base.Add(time.Hour))

	first, err := GetAnnotationForFile(context.Background(), store, head(t, store, h2), filePath)
	require.NoError(t, err)
	second, err := GetAnnotationForFile(context.Background(), store, head(t, store, h2), filePath)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

// TestModifiedMiddleLine checks that rewriting one line reassigns only that
// line, leaving the surrounding lines with their original attribution.
func TestModifiedMiddleLine(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "x\ny\nz\n", base)
	h2 := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{h1}, "x\nY\nz\n", base.Add(time.Hour))

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h2), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	require.Equal(t, plumbing.NewHash(h1), result.Lines[0].Commit)
	require.Equal(t, plumbing.NewHash(h2), result.Lines[1].Commit)
	require.Equal(t, plumbing.NewHash(h1), result.Lines[2].Commit)
	require.Equal(t, "Y\n", string(result.Lines[1].Text))
}

// TestPureInsertion checks that inserting a line between two existing ones
// attributes only the inserted line to the inserting commit, even though
// every line after it shifted position.
func TestPureInsertion(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "x\nz\n", base)
	h2 := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{h1}, "x\ny\nz\n", base.Add(time.Hour))

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h2), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 3)

	require.Equal(t, plumbing.NewHash(h1), result.Lines[0].Commit)
	require.Equal(t, plumbing.NewHash(h2), result.Lines[1].Commit)
	require.Equal(t, plumbing.NewHash(h1), result.Lines[2].Commit)
}

// TestFileAddedAfterRoot checks that a file first appearing in a non-root
// commit attributes every line to that commit. The root, which carries only
// unrelated files, never shows up as an owner.
func TestFileAddedAfterRoot(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	otherBlob := store.PutBlob([]byte("unrelated\n"))
	rootTree := store.PutTree(&object.TreeEntry{Name: "other.txt", Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{otherBlob}})
	root := store.PutCommit(memstore.CommitSpec{Hash: "1111111111111111111111111111111111111111", Tree: rootTree, When: base})

	fileBlob := store.PutBlob([]byte("a\nb\n"))
	childTree := store.PutTree(
		&object.TreeEntry{Name: "other.txt", Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{otherBlob}},
		&object.TreeEntry{Name: filePath, Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{fileBlob}},
	)
	child := store.PutCommit(memstore.CommitSpec{Hash: "2222222222222222222222222222222222222222", Parents: []string{root.String()}, Tree: childTree, When: base.Add(time.Hour)})

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, child.String()), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)
	require.Equal(t, child, result.Lines[0].Commit)
	require.Equal(t, child, result.Lines[1].Commit)
}

// TestNoTrailingNewline checks a final line without a trailing newline still
// counts as a line and carries its attribution, and that a change to that
// line doesn't disturb the line before it.
func TestNoTrailingNewline(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "a\nb", base)
	h2 := commitWithFile(t, store, "2222222222222222222222222222222222222222", []string{h1}, "a\nB", base.Add(time.Hour))

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h2), filePath)
	require.NoError(t, err)
	require.Len(t, result.Lines, 2)

	require.Equal(t, plumbing.NewHash(h1), result.Lines[0].Commit)
	require.Equal(t, "a\n", string(result.Lines[0].Text))
	require.Equal(t, plumbing.NewHash(h2), result.Lines[1].Commit)
	require.Equal(t, "B", string(result.Lines[1].Text))
}

// TestAnnotateConflictedFile checks that a starting commit whose entry is an
// unresolved conflict is annotated over its materialised marker form, every
// marker line included, totalling the materialised content exactly.
func TestAnnotateConflictedFile(t *testing.T) {
	store := memstore.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	root := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, "shared\n", base)

	mine := store.PutBlob([]byte("mine\n"))
	shared := store.PutBlob([]byte("shared\n"))
	theirs := store.PutBlob([]byte("theirs\n"))
	conflictTree := store.PutTree(&object.TreeEntry{
		Name:   filePath,
		Mode:   plumbing.FileConflict,
		Hashes: []plumbing.Hash{mine, shared, theirs},
	})
	merge := store.PutCommit(memstore.CommitSpec{
		Hash:    "2222222222222222222222222222222222222222",
		Parents: []string{root},
		Tree:    conflictTree,
		When:    base.Add(time.Hour),
	})

	ctx := context.Background()
	start, err := store.Commit(ctx, merge)
	require.NoError(t, err)
	f, err := start.File(ctx, store, filePath)
	require.NoError(t, err)
	materialized, err := f.Contents(ctx, store)
	require.NoError(t, err)

	result, err := GetAnnotationForFile(ctx, store, start, filePath)
	require.NoError(t, err)

	var rebuilt []byte
	for _, l := range result.Lines {
		require.False(t, l.Commit.IsZero())
		rebuilt = append(rebuilt, l.Text...)
	}
	require.Equal(t, string(materialized), string(rebuilt))
}

// TestBackendReadErrorSurfaces checks a blob the backend can't hand back
// aborts attribution with a backend-read error rather than partial results.
func TestBackendReadErrorSurfaces(t *testing.T) {
	store := memstore.New()
	bogus := plumbing.NewHash("00000000000000000000000000000000000000ff")
	tree := store.PutTree(&object.TreeEntry{Name: filePath, Mode: plumbing.FileRegular, Hashes: []plumbing.Hash{bogus}})
	h1 := store.PutCommit(memstore.CommitSpec{Hash: "1111111111111111111111111111111111111111", Tree: tree, When: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})

	_, err := GetAnnotationForFile(context.Background(), store, head(t, store, h1.String()), filePath)
	require.Error(t, err)
	require.True(t, IsErrBackendRead(err))
}

// TestContentPreservation checks the projected result's concatenated text
// matches the starting commit's file content exactly (scenario: content
// preservation).
func TestContentPreservation(t *testing.T) {
	store := memstore.New()
	const content = "one\ntwo\nthree\n"
	h1 := commitWithFile(t, store, "1111111111111111111111111111111111111111", nil, content, time.Now())

	result, err := GetAnnotationForFile(context.Background(), store, head(t, store, h1), filePath)
	require.NoError(t, err)

	var rebuilt string
	for _, l := range result.Lines {
		rebuilt += string(l.Text)
	}
	require.Equal(t, content, rebuilt)
}

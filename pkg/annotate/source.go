package annotate

import (
	"context"

	"github.com/strandvcs/strand/modules/linediff"
	"github.com/strandvcs/strand/modules/object"
	"github.com/strandvcs/strand/modules/plumbing"
)

// Source is a commit's view of one file: its content at that commit, and
// the subset of its lines that still carry unresolved provenance (line
// numbers are 0-indexed to match the slice a file's lines get split into).
// A line leaves LineMap the moment it is forwarded to a parent, so LineMap
// never holds a line twice, the move semantics the engine depends on for
// "first writer wins" to fall out for free.
type Source struct {
	LineMap map[int]int // current line index -> original line index
	Text    []byte
}

// CommitSourceMap tracks the Source still pending resolution for each
// commit reachable so far. A commit drops out once every one of its lines
// has been forwarded or attributed.
type CommitSourceMap map[plumbing.Hash]*Source

// OriginalLineMap is the accumulating result: which commit introduced each
// line of the starting file.
type OriginalLineMap map[int]plumbing.Hash

// loadSource reads path's content at commit c. A commit where the path
// doesn't exist (deleted, or not yet created) contributes an empty file.
func loadSource(ctx context.Context, b object.Backend, c *object.Commit, path string) (*Source, error) {
	text, err := loadFileContents(ctx, b, c, path)
	if err != nil {
		return nil, err
	}
	return &Source{LineMap: make(map[int]int), Text: text}, nil
}

func loadFileContents(ctx context.Context, b object.Backend, c *object.Commit, path string) ([]byte, error) {
	f, err := c.File(ctx, b, path)
	if err != nil {
		if object.IsErrEntryNotFound(err) || object.IsErrDirectoryNotFound(err) {
			return nil, nil
		}
		return nil, wrapBackend(err)
	}
	if !f.Mode.IsRegular() && !f.Mode.IsConflict() {
		// Symlinks and other non-file tree values carry no lines to
		// attribute; they read the same as an absent path.
		return nil, nil
	}
	content, err := f.Contents(ctx, b)
	if err != nil {
		return nil, wrapBackendRead(err)
	}
	return content, nil
}

// sameLineMap returns the 0-indexed {current line -> parent line} mapping
// for every line byte-identical between the two sides, delegating the
// reduction to linediff.LineMapWith.
func sameLineMap(algorithm linediff.Algorithm, currentText, parentText []byte) (map[int]int, error) {
	out, err := linediff.LineMapWith(algorithm, string(parentText), string(currentText))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// markLinesFromOriginal records every line left in commitLines as
// originating at commit, called once a commit's parents have all been
// consulted and some lines still weren't forwarded anywhere.
func markLinesFromOriginal(original OriginalLineMap, commit plumbing.Hash, commitLines map[int]int) {
	for _, originalLine := range commitLines {
		original[originalLine] = commit
	}
}

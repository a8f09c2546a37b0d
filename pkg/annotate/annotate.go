// Package annotate attributes each line of a file, as it reads at a given
// commit, to the commit that introduced it. It is a pure function of its
// inputs: no package-level state, no logging, no I/O beyond the Backend it
// is handed. Every call starts fresh and every call is independent of
// every other, matching the engine's single-threaded, synchronous contract.
package annotate

import (
	"bytes"
	"context"
	"fmt"

	"github.com/strandvcs/strand/modules/linediff"
	"github.com/strandvcs/strand/modules/object"
	"github.com/strandvcs/strand/modules/plumbing"
)

// Line is one line of the starting file's content, paired with the commit
// that introduced it.
type Line struct {
	Commit plumbing.Hash
	Text   []byte
}

// Result is the full line-by-line attribution of a file, in file order.
type Result struct {
	Lines []Line
}

// GetAnnotationForFile attributes every line of path as it reads at
// startingCommit, using the Myers line-diff algorithm. If path does not
// exist at startingCommit, it returns an empty Result rather than an error.
func GetAnnotationForFile(ctx context.Context, b object.Backend, startingCommit *object.Commit, path string) (*Result, error) {
	return GetAnnotationForFileWithAlgorithm(ctx, b, startingCommit, path, linediff.Myers)
}

// GetAnnotationForFileWithAlgorithm is GetAnnotationForFile with an
// explicit line-diff Algorithm, the knob a repository's loaded Config
// drives through Diff.Algorithm.
func GetAnnotationForFileWithAlgorithm(ctx context.Context, b object.Backend, startingCommit *object.Commit, path string, algorithm linediff.Algorithm) (*Result, error) {
	if algorithm != linediff.Myers {
		return nil, fmt.Errorf("annotate: unsupported diff algorithm %q", algorithm)
	}

	originalContents, err := loadFileContents(ctx, b, startingCommit, path)
	if err != nil {
		return nil, err
	}
	numLines := countLines(originalContents)
	if numLines == 0 {
		return &Result{}, nil
	}

	source := &Source{LineMap: make(map[int]int), Text: originalContents}
	original, err := processCommits(ctx, b, startingCommit, source, path, numLines, algorithm)
	if err != nil {
		return nil, err
	}
	return convertToResult(original, originalContents), nil
}

func countLines(text []byte) int {
	if len(text) == 0 {
		return 0
	}
	n := bytes.Count(text, []byte{'\n'})
	if text[len(text)-1] != '\n' {
		n++
	}
	return n
}

func splitInclusive(text []byte) [][]byte {
	var lines [][]byte
	start := 0
	for i, b := range text {
		if b == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

func convertToResult(original OriginalLineMap, originalContents []byte) *Result {
	lines := splitInclusive(originalContents)
	result := &Result{Lines: make([]Line, len(lines))}
	for idx, line := range lines {
		result.Lines[idx] = Line{Commit: original[idx], Text: line}
	}
	return result
}

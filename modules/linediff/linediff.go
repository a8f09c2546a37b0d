// Package linediff is the line-pair matcher: given a file's content in a
// commit and the same path's content in one of its parents, it produces the
// set of lines that are identical between the two sides, each paired with
// its line number on both sides. The attribution loop folds these pairs
// into a commit's line map (a line that matches carries its provenance
// across the edge unchanged; a line with no match was introduced here).
//
// Diffing is line-mode: content is first bucketed into thrash-resistant
// "lines as runes" the way git diff and most real implementations do, then
// run through Myers diff, so two files differing in a single inserted line
// produce one Different hunk, not a file-sized rewrite.
package linediff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Algorithm names a line-diff strategy, the knob a repository's config file
// exposes as diff.algorithm.
type Algorithm string

// Myers is the only algorithm implemented: Align and LineMap are both
// backed by go-diff/diffmatchpatch's Myers implementation.
const Myers Algorithm = "myers"

// Kind classifies a hunk of the alignment between parent and current.
type Kind int

const (
	// Matching lines are byte-identical on both sides.
	Matching Kind = iota
	// Different covers everything else: a pure insert, a pure delete, or a
	// replacement. The matcher does not distinguish those at this layer,
	// since the attribution loop only needs to know "unmatched" either way.
	Different
)

// Hunk is one contiguous run of matching or differing lines, with each
// side's starting line number (1-indexed) and line count.
type Hunk struct {
	Kind         Kind
	ParentStart  int
	ParentLen    int
	CurrentStart int
	CurrentLen   int
}

// Align runs the line-mode diff between parentText and currentText and
// returns the hunks in order, current-side line numbers increasing
// monotonically across the result.
func Align(parentText, currentText string) []Hunk {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(parentText, currentText)
	diffs := dmp.DiffMainRunes([]rune(chars1), []rune(chars2), false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	hunks := make([]Hunk, 0, len(diffs))
	pLine, cLine := 1, 1
	for _, d := range diffs {
		n := countLines(d.Text)
		if n == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			hunks = append(hunks, Hunk{Kind: Matching, ParentStart: pLine, ParentLen: n, CurrentStart: cLine, CurrentLen: n})
			pLine += n
			cLine += n
		case diffmatchpatch.DiffDelete:
			hunks = append(hunks, Hunk{Kind: Different, ParentStart: pLine, ParentLen: n, CurrentStart: cLine, CurrentLen: 0})
			pLine += n
		case diffmatchpatch.DiffInsert:
			hunks = append(hunks, Hunk{Kind: Different, ParentStart: pLine, ParentLen: 0, CurrentStart: cLine, CurrentLen: n})
			cLine += n
		}
	}
	return hunks
}

// LineMap reduces Align's hunks to the {current line -> parent line}
// mapping the attribution loop consumes directly: only Matching hunks
// produce entries, expanded pair by pair. Line numbers are 0-indexed,
// matching the slice a file's lines get split into. Hunk's own
// ParentStart/CurrentStart are 1-indexed, so each pair is shifted down by
// one going in.
func LineMap(parentText, currentText string) map[int]int {
	m, _ := LineMapWith(Myers, parentText, currentText)
	return m
}

// LineMapWith is LineMap with an explicit Algorithm, the knob a loaded
// Config's Diff.Algorithm drives. It returns an error for any algorithm
// other than Myers, the only one implemented.
func LineMapWith(algorithm Algorithm, parentText, currentText string) (map[int]int, error) {
	if algorithm != Myers {
		return nil, fmt.Errorf("linediff: unsupported algorithm %q", algorithm)
	}
	hunks := Align(parentText, currentText)
	out := make(map[int]int)
	for _, h := range hunks {
		if h.Kind != Matching {
			continue
		}
		for i := 0; i < h.ParentLen; i++ {
			out[h.CurrentStart-1+i] = h.ParentStart - 1 + i
		}
	}
	return out, nil
}

func countLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

package annotate

import (
	"context"
	"io"

	"github.com/strandvcs/strand/modules/linediff"
	"github.com/strandvcs/strand/modules/object"
)

// processCommits is the attribution loop: walk the
// commit graph in reverse-topological order starting at startingCommit,
// forwarding each commit's still-unresolved lines to whichever direct
// parent shares them, until every line of the starting file has been
// attributed or the graph is exhausted.
func processCommits(
	ctx context.Context,
	b object.Backend,
	startingCommit *object.Commit,
	startingSource *Source,
	path string,
	numLines int,
	algorithm linediff.Algorithm,
) (OriginalLineMap, error) {
	for i := 0; i < numLines; i++ {
		startingSource.LineMap[i] = i
	}
	sourceMap := CommitSourceMap{startingCommit.Hash: startingSource}
	original := make(OriginalLineMap, numLines)

	walker := object.NewRevisionWalker(b, startingCommit, path)
	for {
		c, edges, err := walker.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapRevsetEvaluation(err)
		}
		if err := processCommit(ctx, b, path, algorithm, original, sourceMap, c, edges); err != nil {
			return nil, err
		}
		if len(original) >= numLines {
			break
		}
	}
	return original, nil
}

// processCommit compares current against each direct parent, forwarding
// every line they share, then attributes whatever's left to current.
func processCommit(
	ctx context.Context,
	b object.Backend,
	path string,
	algorithm linediff.Algorithm,
	original OriginalLineMap,
	sourceMap CommitSourceMap,
	current *object.Commit,
	edges []object.Edge,
) error {
	currentSource, ok := sourceMap[current.Hash]
	if !ok {
		// Nothing pending for this commit: it isn't on the line of descent
		// we still care about.
		return nil
	}
	delete(sourceMap, current.Hash)

	for _, edge := range edges {
		if edge.Kind == object.EdgeMissing {
			continue
		}
		parentHash := edge.Parent
		parentSource, ok := sourceMap[parentHash]
		if !ok {
			var err error
			parentSource, err = loadSource(ctx, b, edge.Commit, path)
			if err != nil {
				return err
			}
			sourceMap[parentHash] = parentSource
		}

		same, err := sameLineMap(algorithm, currentSource.Text, parentSource.Text)
		if err != nil {
			return err
		}
		for currentLine, parentLine := range same {
			if originalLine, ok := currentSource.LineMap[currentLine]; ok {
				delete(currentSource.LineMap, currentLine)
				// First writer wins: a parent line already claimed (by an
				// earlier sibling in a diamond) keeps its claim, and the
				// later entry is dropped with the child's.
				if _, claimed := parentSource.LineMap[parentLine]; !claimed {
					parentSource.LineMap[parentLine] = originalLine
				}
			}
		}
		if len(parentSource.LineMap) == 0 {
			delete(sourceMap, parentHash)
		}
	}

	if len(currentSource.LineMap) > 0 {
		markLinesFromOriginal(original, current.Hash, currentSource.LineMap)
	}
	return nil
}

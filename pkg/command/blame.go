package command

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/strandvcs/strand/modules/linediff"
	"github.com/strandvcs/strand/modules/trace"
	"github.com/strandvcs/strand/pkg/annotate"
)

// Blame is the `strand blame` subcommand: attribute every line of a file at
// a revision to the commit that introduced it, and render it git-blame
// style, short hash then line number then the line.
type Blame struct {
	Globals

	Repo string `arg:"" help:"Path to a JSON repository fixture." type:"existingfile"`
	Rev  string `arg:"" help:"Commit hash to start attribution from."`
	Path string `arg:"" help:"Repository-relative file path."`
}

func (b *Blame) Run() error {
	dbg := b.debuger()
	tk := trace.NewTracker(b.Verbose)
	dbg.DbgPrint("loading fixture %s", b.Repo)

	cfg, err := b.loadConfig()
	if err != nil {
		return fmt.Errorf("strand: loading config: %w", err)
	}

	store, head, err := LoadFixture(b.Repo, b.Rev)
	if err != nil {
		return err
	}
	tk.StepNext("load fixture")

	ctx := context.Background()
	startingCommit, err := store.Commit(ctx, head)
	if err != nil {
		return fmt.Errorf("strand: resolving %s: %w", b.Rev, err)
	}

	algorithm := linediff.Algorithm(cfg.Diff.Algorithm)
	dbg.DbgPrint("attributing %s from %s with %s", b.Path, startingCommit.Hash, algorithm)
	result, err := annotate.GetAnnotationForFileWithAlgorithm(ctx, store, startingCommit, b.Path, algorithm)
	if err != nil {
		return err
	}
	tk.StepNext("annotate %s", b.Path)

	return renderBlame(os.Stdout, result)
}

func renderBlame(w *os.File, result *annotate.Result) error {
	var buf bytes.Buffer
	for i, line := range result.Lines {
		short := line.Commit.String()[:8]
		text := strings.TrimSuffix(string(line.Text), "\n")
		fmt.Fprintf(&buf, "%s %5d) %s\n", short, i+1, text)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

package object

import (
	"context"
	"io"

	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/strandvcs/strand/modules/plumbing"
)

// EdgeKind classifies a parent edge as the walker resolves it: Direct means
// the edge leads to a commit that actually touches path: the starting
// commit or one of its ancestors where path's content differs from at least
// one of that ancestor's own parents. Missing means the backend couldn't
// resolve the parent at all (a shallow clone boundary, or a corrupt/partial
// object store). A commit that exists but leaves path unchanged is never
// surfaced as an edge target in the first place: the walker splices
// straight through it to the next ancestor that does touch path. The
// attribution loop treats a Missing edge as a dead end: it cannot keep
// attributing lines past a commit it cannot read.
type EdgeKind int

const (
	EdgeDirect EdgeKind = iota
	EdgeMissing
)

// Edge is one parent link discovered while walking, already resolved (or
// not) against the Backend and filtered against path.
type Edge struct {
	Parent plumbing.Hash
	Kind   EdgeKind
	Commit *Commit // nil when Kind == EdgeMissing
}

func blobAtPath(ctx context.Context, b Backend, c *Commit, path string) (plumbing.Hash, error) {
	root, err := c.Root(ctx, b)
	if err != nil {
		return plumbing.ZeroHash, ErrBackend(c.Tree, err)
	}
	e, err := root.FindEntry(ctx, b, path)
	if err != nil {
		return plumbing.ZeroHash, err
	}
	if len(e.Hashes) == 0 {
		return plumbing.ZeroHash, ErrEntryNotFound(path)
	}
	return e.Hashes[0], nil
}

// pathSnapshot resolves path's blob hash at c, collapsing "doesn't exist"
// into a present/absent flag so absence compares equal to itself.
func pathSnapshot(ctx context.Context, b Backend, c *Commit, path string) (plumbing.Hash, bool, error) {
	h, err := blobAtPath(ctx, b, c, path)
	if err == nil {
		return h, true, nil
	}
	if IsErrEntryNotFound(err) || IsErrDirectoryNotFound(err) {
		return plumbing.ZeroHash, false, nil
	}
	return plumbing.ZeroHash, false, err
}

// commitStacker is the minimal stack/heap interface the walker's explore
// and visit phases share.
type commitStacker interface {
	Push(c *Commit)
	Pop() (*Commit, bool)
	Peek() (*Commit, bool)
	Size() int
}

type commitStack struct {
	stack []*Commit
}

func (cs *commitStack) Push(c *Commit) { cs.stack = append(cs.stack, c) }

func (cs *commitStack) Pop() (*Commit, bool) {
	if len(cs.stack) == 0 {
		return nil, false
	}
	c := cs.stack[len(cs.stack)-1]
	cs.stack = cs.stack[:len(cs.stack)-1]
	return c, true
}

func (cs *commitStack) Peek() (*Commit, bool) {
	if len(cs.stack) == 0 {
		return nil, false
	}
	return cs.stack[len(cs.stack)-1], true
}

func (cs *commitStack) Size() int { return len(cs.stack) }

// commitHeap orders commits newest-first by committer time.
type commitHeap struct {
	*binaryheap.Heap
}

func (h *commitHeap) Push(c *Commit) { h.Heap.Push(c) }

func (h *commitHeap) Pop() (*Commit, bool) {
	c, ok := h.Heap.Pop()
	if !ok {
		return nil, false
	}
	return c.(*Commit), true
}

func (h *commitHeap) Peek() (*Commit, bool) {
	c, ok := h.Heap.Peek()
	if !ok {
		return nil, false
	}
	return c.(*Commit), true
}

// RevisionWalker produces commits in reverse-topological order (a commit
// only appears after every commit that can reach it through a Direct edge
// has appeared), the order the attribution loop requires so it never
// revisits a commit before all its children have contributed their source
// maps to it. It only ever surfaces the starting commit plus the ancestors
// that touch path; everything in between is spliced out transparently by
// resolveEdges, so the walk's cost tracks how many commits touched path,
// not how many commits exist.
type RevisionWalker struct {
	b             Backend
	path          string
	explorerStack commitStacker
	visitStack    commitStacker
	inCounts      map[plumbing.Hash]int

	edgeCache  map[plumbing.Hash][]Edge
	touchCache map[plumbing.Hash]bool
}

// NewRevisionWalker starts a walk at start over path, reachable only
// through Direct edges. A Missing parent simply bounds the walk; it is
// never dereferenced. start is always surfaced regardless of whether it
// touches path; every ancestor after it is surfaced only if it does.
func NewRevisionWalker(b Backend, start *Commit, path string) *RevisionWalker {
	heap := &commitHeap{Heap: binaryheap.NewWith(func(a, c any) int {
		return c.(*Commit).Committer.When.Compare(a.(*Commit).Committer.When)
	})}
	stack := &commitStack{stack: make([]*Commit, 0, 8)}
	heap.Push(start)
	stack.Push(start)
	return &RevisionWalker{
		b:             b,
		path:          path,
		explorerStack: heap,
		visitStack:    stack,
		inCounts:      make(map[plumbing.Hash]int),
		edgeCache:     make(map[plumbing.Hash][]Edge),
		touchCache:    make(map[plumbing.Hash]bool),
	}
}

// Next returns the next commit in the walk order, along with the Direct/
// Missing classification of its path-filtered parent edges, or io.EOF when
// the walk is exhausted.
func (w *RevisionWalker) Next(ctx context.Context) (*Commit, []Edge, error) {
	var next *Commit
	for {
		var ok bool
		next, ok = w.visitStack.Pop()
		if !ok {
			return nil, nil, io.EOF
		}
		if w.inCounts[next.Hash] == 0 {
			break
		}
	}

	edges, err := w.resolveEdges(ctx, next)
	if err != nil {
		return nil, nil, err
	}

	for {
		toExplore, ok := w.explorerStack.Peek()
		if !ok {
			break
		}
		if toExplore.Hash != next.Hash && w.explorerStack.Size() == 1 {
			break
		}
		w.explorerStack.Pop()
		toExploreEdges, err := w.resolveEdges(ctx, toExplore)
		if err != nil {
			return nil, nil, err
		}
		for _, e := range toExploreEdges {
			if e.Kind == EdgeMissing {
				continue
			}
			w.inCounts[e.Parent]++
			if w.inCounts[e.Parent] == 1 {
				w.explorerStack.Push(e.Commit)
			}
		}
	}

	for _, e := range edges {
		if e.Kind == EdgeMissing {
			continue
		}
		w.inCounts[e.Parent]--
		if w.inCounts[e.Parent] == 0 {
			w.visitStack.Push(e.Commit)
		}
	}
	delete(w.inCounts, next.Hash)

	return next, edges, nil
}

// resolveEdges returns c's logical parent edges over path: a real parent
// that touches path becomes a Direct edge, a real parent that was resolved
// but never touches path is spliced out and replaced by its own resolved
// edges (recursively), and a parent the backend can't resolve becomes
// Missing. Results are memoized per commit since diamonds revisit the same
// ancestor from more than one descendant.
func (w *RevisionWalker) resolveEdges(ctx context.Context, c *Commit) ([]Edge, error) {
	if edges, ok := w.edgeCache[c.Hash]; ok {
		return edges, nil
	}

	var out []Edge
	seen := make(map[plumbing.Hash]bool, len(c.Parents))
	frontier := append([]plumbing.Hash(nil), c.Parents...)
	for len(frontier) > 0 {
		h := frontier[0]
		frontier = frontier[1:]
		if seen[h] {
			continue
		}
		seen[h] = true

		p, err := w.b.Commit(ctx, h)
		if plumbing.IsNoSuchObject(err) {
			out = append(out, Edge{Parent: h, Kind: EdgeMissing})
			continue
		}
		if err != nil {
			return nil, ErrBackend(h, err)
		}

		touches, err := w.touchesPath(ctx, p)
		if err != nil {
			return nil, err
		}
		if touches {
			out = append(out, Edge{Parent: h, Kind: EdgeDirect, Commit: p})
			continue
		}

		spliced, err := w.resolveEdges(ctx, p)
		if err != nil {
			return nil, err
		}
		out = append(out, spliced...)
	}

	out = dedupeEdges(out)
	w.edgeCache[c.Hash] = out
	return out, nil
}

func dedupeEdges(edges []Edge) []Edge {
	out := make([]Edge, 0, len(edges))
	seen := make(map[plumbing.Hash]bool, len(edges))
	for _, e := range edges {
		if seen[e.Parent] {
			continue
		}
		seen[e.Parent] = true
		out = append(out, e)
	}
	return out
}

// touchesPath reports whether c introduced path (no parents at all, or
// path's content differs from at least one parent's), the property that
// decides whether c is surfaced as a walk node at all.
func (w *RevisionWalker) touchesPath(ctx context.Context, c *Commit) (bool, error) {
	if touches, ok := w.touchCache[c.Hash]; ok {
		return touches, nil
	}
	touches, err := w.computeTouchesPath(ctx, c)
	if err != nil {
		return false, err
	}
	w.touchCache[c.Hash] = touches
	return touches, nil
}

func (w *RevisionWalker) computeTouchesPath(ctx context.Context, c *Commit) (bool, error) {
	if len(c.Parents) == 0 {
		return true, nil
	}
	cHash, cPresent, err := pathSnapshot(ctx, w.b, c, w.path)
	if err != nil {
		return false, err
	}
	for _, ph := range c.Parents {
		p, err := w.b.Commit(ctx, ph)
		if plumbing.IsNoSuchObject(err) {
			// Can't compare against a parent the backend won't resolve,
			// treat c as touching so the splice chain stops here instead
			// of skipping past a gap it can't verify.
			return true, nil
		}
		if err != nil {
			return false, ErrBackend(ph, err)
		}
		pHash, pPresent, err := pathSnapshot(ctx, w.b, p, w.path)
		if err != nil {
			return false, err
		}
		if cPresent != pPresent || (cPresent && cHash != pHash) {
			return true, nil
		}
	}
	return false, nil
}

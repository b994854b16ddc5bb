// Package catalogue owns the in-memory working set of satellites and the
// identity of every node in it.
package catalogue

import (
	"errors"
	"fmt"

	"tableflip.dev/satcat/pkg/node"
)

var (
	// ErrNotFound is returned when no node carries the requested id.
	ErrNotFound = errors.New("catalogue: node not found")
	// ErrOutOfRange is returned for an index outside the owning sequence.
	ErrOutOfRange = errors.New("catalogue: index out of range")
	// ErrNilNode is returned when a nil node or parent is passed in.
	ErrNilNode = errors.New("catalogue: nil node")
)

// Registry holds the working set. It never persists anything itself; callers
// recompute the overlay after mutating.
type Registry struct {
	roots  []*node.Node
	ids    map[string]struct{}
	source IDSource
}

// Option customises a Registry.
type Option func(*Registry)

// WithIDSource replaces the identifier generator.
func WithIDSource(src IDSource) Option {
	return func(r *Registry) {
		if src != nil {
			r.source = src
		}
	}
}

// New takes ownership of roots. Every node is expected to carry an id
// already, as baseline data and applied overlays do.
func New(roots []*node.Node, opts ...Option) *Registry {
	r := &Registry{source: UUIDSource}
	for _, opt := range opts {
		opt(r)
	}
	r.SetRoots(roots)
	return r
}

// SetRoots replaces the entire working set.
func (r *Registry) SetRoots(roots []*node.Node) {
	if roots == nil {
		roots = []*node.Node{}
	}
	r.roots = roots
	r.ids = node.IDs(roots)
}

// Roots returns the working set. The slice and nodes are live.
func (r *Registry) Roots() []*node.Node {
	return r.roots
}

// Len returns the number of roots.
func (r *Registry) Len() int {
	return len(r.roots)
}

// Root returns the root at index i.
func (r *Registry) Root(i int) (*node.Node, error) {
	if i < 0 || i >= len(r.roots) {
		return nil, fmt.Errorf("%w: root %d of %d", ErrOutOfRange, i, len(r.roots))
	}
	return r.roots[i], nil
}

// Snapshot deep copies the working set.
func (r *Registry) Snapshot() []*node.Node {
	snap := node.CloneAll(r.roots)
	if snap == nil {
		snap = []*node.Node{}
	}
	return snap
}

// Find locates a node by id at any depth.
func (r *Registry) Find(id string) (*node.Node, bool) {
	var found *node.Node
	node.Walk(r.roots, func(n *node.Node, _ int) bool {
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// AddRoot appends n as a new satellite, assigning fresh ids to n and to any
// descendant whose id is missing or already taken.
func (r *Registry) AddRoot(n *node.Node) (*node.Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	r.assignIDs(n, RootPrefix)
	r.roots = append(r.roots, n)
	return n, nil
}

// AddChild appends n to parent's modules.
func (r *Registry) AddChild(parent, n *node.Node) (*node.Node, error) {
	if parent == nil || n == nil {
		return nil, ErrNilNode
	}
	r.assignIDs(n, ModulePrefix)
	parent.Modules = append(parent.Modules, n)
	return n, nil
}

// Replace swaps the node sharing n's id for n, wherever it sits in the tree.
func (r *Registry) Replace(n *node.Node) error {
	if n == nil {
		return ErrNilNode
	}
	if replaceIn(r.roots, n) {
		r.ids = node.IDs(r.roots)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, n.ID)
}

func replaceIn(nodes []*node.Node, n *node.Node) bool {
	for i, cur := range nodes {
		if cur == nil {
			continue
		}
		if cur.ID == n.ID {
			nodes[i] = n
			return true
		}
		if replaceIn(cur.Modules, n) {
			return true
		}
	}
	return false
}

// RemoveRoot splices out the root at index i together with its subtree.
func (r *Registry) RemoveRoot(i int) (*node.Node, error) {
	if i < 0 || i >= len(r.roots) {
		return nil, fmt.Errorf("%w: root %d of %d", ErrOutOfRange, i, len(r.roots))
	}
	removed := r.roots[i]
	r.roots = append(r.roots[:i], r.roots[i+1:]...)
	r.forget(removed)
	return removed, nil
}

// RemoveChild splices out parent.Modules[i] together with its subtree.
func (r *Registry) RemoveChild(parent *node.Node, i int) (*node.Node, error) {
	if parent == nil {
		return nil, ErrNilNode
	}
	if i < 0 || i >= len(parent.Modules) {
		return nil, fmt.Errorf("%w: module %d of %d in %s", ErrOutOfRange, i, len(parent.Modules), parent.ID)
	}
	removed := parent.Modules[i]
	parent.Modules = append(parent.Modules[:i], parent.Modules[i+1:]...)
	r.forget(removed)
	return removed, nil
}

func (r *Registry) forget(n *node.Node) {
	node.Walk([]*node.Node{n}, func(d *node.Node, _ int) bool {
		delete(r.ids, d.ID)
		return true
	})
}

// assignIDs gives n (prefix) and its descendants (ModulePrefix) ids that are
// unique across the whole working set.
func (r *Registry) assignIDs(n *node.Node, prefix string) {
	if n.ID == "" || r.taken(n.ID) {
		n.ID = r.newID(prefix)
	}
	r.ids[n.ID] = struct{}{}
	for _, child := range n.Modules {
		if child != nil {
			r.assignIDs(child, ModulePrefix)
		}
	}
}

func (r *Registry) taken(id string) bool {
	_, ok := r.ids[id]
	return ok
}

func (r *Registry) newID(prefix string) string {
	for {
		id := r.source(prefix)
		if id != "" && !r.taken(id) {
			return id
		}
	}
}

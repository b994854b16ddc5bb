// Package cursor tracks where the user is in the catalogue: which satellite is
// open, the chain of modules drilled through to reach the current depth, and
// which node is selected there.
//
// The cursor stores indices only. Parents are found again by walking from the
// root along the path on every call, so no node ever needs a back-reference
// and a cursor can be serialized as plain data.
package cursor

import (
	"errors"
	"fmt"

	"tableflip.dev/satcat/pkg/node"
)

// NoIndex marks an unset root or selection.
const NoIndex = -1

var (
	// ErrOutOfRange is returned for an index outside the current sequence.
	ErrOutOfRange = errors.New("cursor: index out of range")
	// ErrNoChildren is returned when drilling into a node without modules.
	ErrNoChildren = errors.New("cursor: node has no modules")
	// ErrNoRoot is returned when an operation needs an open satellite.
	ErrNoRoot = errors.New("cursor: no satellite open")
	// ErrNotFound is returned by Locate for an unknown id.
	ErrNotFound = errors.New("cursor: node not found")
)

// State is the coarse navigation state.
type State int

const (
	// Home means no satellite is open.
	Home State = iota
	// RootView shows the modules of the open satellite.
	RootView
	// DrilledView shows the modules of a module below the satellite.
	DrilledView
)

func (s State) String() string {
	switch s {
	case Home:
		return "home"
	case RootView:
		return "root"
	case DrilledView:
		return "drilled"
	default:
		return "unknown"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Step records one drill-down: the index followed within the modules of the
// node at that depth, and the name it had at the time for breadcrumbs.
type Step struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

// Cursor is the navigation state. The zero value is not Home; use New.
type Cursor struct {
	Root int    `json:"root"`
	Path []Step `json:"path,omitempty"`

	// Selected indexes the current effective modules sequence.
	Selected int `json:"selected"`
	// Context is set when the selection is the node last drilled into (the
	// path tail) rather than one of the modules being shown.
	Context bool `json:"context,omitempty"`
}

// New returns a cursor at Home.
func New() *Cursor {
	return &Cursor{Root: NoIndex, Selected: NoIndex}
}

// Clone returns an independent copy.
func (c *Cursor) Clone() *Cursor {
	cp := *c
	cp.Path = append([]Step(nil), c.Path...)
	return &cp
}

// State reports Home, RootView or DrilledView.
func (c *Cursor) State() State {
	switch {
	case c.Root == NoIndex:
		return Home
	case len(c.Path) == 0:
		return RootView
	default:
		return DrilledView
	}
}

// Depth is the number of drill-down steps taken below the root.
func (c *Cursor) Depth() int {
	return len(c.Path)
}

// HasSelection reports whether a node is selected.
func (c *Cursor) HasSelection() bool {
	return c.Context || c.Selected != NoIndex
}

// ClearSelection drops the selection without moving.
func (c *Cursor) ClearSelection() {
	c.Selected = NoIndex
	c.Context = false
}

// Enter opens the satellite at index i with an empty path.
func (c *Cursor) Enter(roots []*node.Node, i int) error {
	if i < 0 || i >= len(roots) || roots[i] == nil {
		return fmt.Errorf("%w: satellite %d of %d", ErrOutOfRange, i, len(roots))
	}
	c.Root = i
	c.Path = nil
	c.ClearSelection()
	return nil
}

// Exit returns Home.
func (c *Cursor) Exit() {
	c.Root = NoIndex
	c.Path = nil
	c.ClearSelection()
}

// DrillInto descends into the module at index i of the current sequence. The
// module must have modules of its own. It stays selected so it can be edited
// from the new depth.
func (c *Cursor) DrillInto(roots []*node.Node, i int) error {
	if c.State() == Home {
		return ErrNoRoot
	}
	modules := c.Modules(roots)
	if i < 0 || i >= len(modules) {
		return fmt.Errorf("%w: module %d of %d", ErrOutOfRange, i, len(modules))
	}
	target := modules[i]
	if !target.HasChildren() {
		return fmt.Errorf("%w: %s", ErrNoChildren, target.Name)
	}
	c.Path = append(c.Path, Step{Index: i, Name: target.Name})
	c.Selected = NoIndex
	c.Context = true
	return nil
}

// Select marks the module at index i of the current sequence, whether or not
// it has children. The path is unchanged.
func (c *Cursor) Select(roots []*node.Node, i int) error {
	if c.State() == Home {
		return ErrNoRoot
	}
	modules := c.Modules(roots)
	if i < 0 || i >= len(modules) {
		return fmt.Errorf("%w: module %d of %d", ErrOutOfRange, i, len(modules))
	}
	c.Selected = i
	c.Context = false
	return nil
}

// NavigateTo jumps to a breadcrumb. Level -1 is the satellite itself; level
// k keeps the first k+1 steps. The selection is always cleared.
func (c *Cursor) NavigateTo(level int) error {
	if c.State() == Home {
		return ErrNoRoot
	}
	if level < -1 || level >= len(c.Path) {
		return fmt.Errorf("%w: breadcrumb %d of %d", ErrOutOfRange, level, len(c.Path))
	}
	c.Path = c.Path[:level+1]
	if len(c.Path) == 0 {
		c.Path = nil
	}
	c.ClearSelection()
	return nil
}

// Up goes one level shallower, or Home from the satellite view.
func (c *Cursor) Up() {
	switch c.State() {
	case Home:
	case RootView:
		c.Exit()
	default:
		_ = c.NavigateTo(len(c.Path) - 2)
	}
}

// PopContext removes the path tail when it is the current selection and
// returns the index it occupied in its parent's modules. It is used before
// deleting the node the user drilled into, so the cursor never points into
// the removed subtree.
func (c *Cursor) PopContext() (int, bool) {
	if !c.Context || len(c.Path) == 0 {
		return NoIndex, false
	}
	tail := c.Path[len(c.Path)-1]
	c.Path = c.Path[:len(c.Path)-1]
	if len(c.Path) == 0 {
		c.Path = nil
	}
	c.ClearSelection()
	return tail.Index, true
}

// Locate moves to the node with the given id: a satellite is entered, a
// module is selected in its parent's view with every ancestor drilled into.
func (c *Cursor) Locate(roots []*node.Node, id string) error {
	for ri, root := range roots {
		if root == nil {
			continue
		}
		if root.ID == id {
			return c.Enter(roots, ri)
		}
		if indices, ok := pathTo(root.Modules, id); ok {
			next := Cursor{Root: ri, Selected: NoIndex}
			parent := root
			for _, i := range indices[:len(indices)-1] {
				parent = parent.Modules[i]
				next.Path = append(next.Path, Step{Index: i, Name: parent.Name})
			}
			next.Selected = indices[len(indices)-1]
			*c = next
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// pathTo returns the child indices leading to id within nodes.
func pathTo(nodes []*node.Node, id string) ([]int, bool) {
	for i, n := range nodes {
		if n == nil {
			continue
		}
		if n.ID == id {
			return []int{i}, true
		}
		if rest, ok := pathTo(n.Modules, id); ok {
			return append([]int{i}, rest...), true
		}
	}
	return nil, false
}

// RootNode returns the open satellite, or nil at Home or when stale.
func (c *Cursor) RootNode(roots []*node.Node) *node.Node {
	if c.Root < 0 || c.Root >= len(roots) {
		return nil
	}
	return roots[c.Root]
}

// Parent walks root → path and returns the node whose modules are on show.
// It returns nil at Home or if any step no longer resolves.
func (c *Cursor) Parent(roots []*node.Node) *node.Node {
	parent := c.RootNode(roots)
	if parent == nil {
		return nil
	}
	for _, step := range c.Path {
		if step.Index < 0 || step.Index >= len(parent.Modules) || parent.Modules[step.Index] == nil {
			return nil
		}
		parent = parent.Modules[step.Index]
	}
	return parent
}

// Modules returns the effective modules sequence, empty (never nil) when the
// cursor is at Home or its path has gone stale.
func (c *Cursor) Modules(roots []*node.Node) []*node.Node {
	parent := c.Parent(roots)
	if parent == nil || parent.Modules == nil {
		return []*node.Node{}
	}
	return parent.Modules
}

// SelectedNode returns the selected node, or nil.
func (c *Cursor) SelectedNode(roots []*node.Node) *node.Node {
	if c.Context {
		if len(c.Path) == 0 {
			return nil
		}
		return c.Parent(roots)
	}
	if c.Selected == NoIndex {
		return nil
	}
	modules := c.Modules(roots)
	if c.Selected < 0 || c.Selected >= len(modules) {
		return nil
	}
	return modules[c.Selected]
}

// Lineage lists the satellite, every node on the path, and the selection when
// it is not already the path tail.
func (c *Cursor) Lineage(roots []*node.Node) []*node.Node {
	cur := c.RootNode(roots)
	if cur == nil {
		return nil
	}
	lineage := []*node.Node{cur}
	for _, step := range c.Path {
		if step.Index < 0 || step.Index >= len(cur.Modules) || cur.Modules[step.Index] == nil {
			return lineage
		}
		cur = cur.Modules[step.Index]
		lineage = append(lineage, cur)
	}
	if !c.Context {
		if sel := c.SelectedNode(roots); sel != nil {
			lineage = append(lineage, sel)
		}
	}
	return lineage
}

// Normalize repairs a cursor restored against a working set that may have
// changed: an invalid root goes Home, the path is cut at the first step that
// no longer resolves, breadcrumb names are refreshed, and a selection that is
// out of range is dropped.
func (c *Cursor) Normalize(roots []*node.Node) {
	cur := c.RootNode(roots)
	if cur == nil {
		c.Exit()
		return
	}
	for i, step := range c.Path {
		if step.Index < 0 || step.Index >= len(cur.Modules) || cur.Modules[step.Index] == nil {
			c.Path = c.Path[:i]
			c.ClearSelection()
			break
		}
		cur = cur.Modules[step.Index]
		c.Path[i].Name = cur.Name
	}
	if len(c.Path) == 0 {
		c.Path = nil
		c.Context = false
	}
	if c.Selected != NoIndex && (c.Context || c.Selected < 0 || c.Selected >= len(c.Modules(roots))) {
		c.Selected = NoIndex
	}
}

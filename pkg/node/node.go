// Package node defines the recursive record shared by satellites and their
// modules.
package node

// DefaultIcon is stored on nodes saved without an icon. SatelliteIcon is only
// shown for satellites that have none.
const (
	DefaultIcon   = "📦"
	SatelliteIcon = "🛰️"
)

// Node is either a satellite (a root of the catalogue) or a module at any
// depth below it. Children are owned, never shared, and hold no reference to
// their parent.
type Node struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Icon        string  `json:"icon,omitempty" yaml:"icon,omitempty"`
	Type        string  `json:"type,omitempty" yaml:"type,omitempty"`
	Image       string  `json:"image,omitempty" yaml:"image,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Modules     []*Node `json:"modules,omitempty" yaml:"modules,omitempty"`
}

// HasChildren reports whether n can be drilled into.
func (n *Node) HasChildren() bool {
	return n != nil && len(n.Modules) > 0
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	cp.Modules = CloneAll(n.Modules)
	return &cp
}

// CloneAll deep copies a sequence of nodes. Nil entries are dropped.
func CloneAll(nodes []*Node) []*Node {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		out = append(out, n.Clone())
	}
	return out
}

// Equal reports structural equality. A nil and an empty Modules sequence are
// the same thing.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.ID != b.ID ||
		a.Name != b.Name ||
		a.Icon != b.Icon ||
		a.Type != b.Type ||
		a.Image != b.Image ||
		a.Description != b.Description {
		return false
	}
	return EqualAll(a.Modules, b.Modules)
}

// EqualAll compares two sequences element by element, in order.
func EqualAll(a, b []*Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Walk visits every node depth first, parents before children. Returning
// false from fn stops the walk.
func Walk(roots []*Node, fn func(n *Node, depth int) bool) {
	walk(roots, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(n *Node, depth int) bool) bool {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !fn(n, depth) {
			return false
		}
		if !walk(n.Modules, depth+1, fn) {
			return false
		}
	}
	return true
}

// IDs collects every id present in the trees, at every depth.
func IDs(roots []*Node) map[string]struct{} {
	ids := make(map[string]struct{})
	Walk(roots, func(n *Node, _ int) bool {
		if n.ID != "" {
			ids[n.ID] = struct{}{}
		}
		return true
	})
	return ids
}

// Count returns the number of nodes in the trees.
func Count(roots []*Node) int {
	total := 0
	Walk(roots, func(*Node, int) bool {
		total++
		return true
	})
	return total
}

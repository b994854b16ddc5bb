package app

import (
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
)

// Crumb is one breadcrumb. Level -1 is the satellite.
type Crumb struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
}

// View is what a renderer needs after any operation. Node pointers are live;
// renderers must not modify them.
type View struct {
	State cursor.State `json:"state"`
	// Roots is the satellite list shown at home.
	Roots []*node.Node `json:"-"`
	// Root is the open satellite.
	Root *node.Node `json:"root,omitempty"`
	// Parent owns Modules.
	Parent  *node.Node   `json:"parent,omitempty"`
	Modules []*node.Node `json:"modules"`
	// Selected is the selected node. When Context is set it is Parent itself
	// and SelectedIndex is cursor.NoIndex.
	Selected      *node.Node   `json:"selected,omitempty"`
	SelectedIndex int          `json:"selectedIndex"`
	Context       bool         `json:"context,omitempty"`
	Crumbs        []Crumb      `json:"crumbs,omitempty"`
	Lineage       []*node.Node `json:"-"`
}

// Focus is the node whose details are on show: the selection, else the
// parent, else nil at home.
func (v View) Focus() *node.Node {
	if v.Selected != nil {
		return v.Selected
	}
	return v.Parent
}

// View resolves the cursor against the working set.
func (s *Session) View() View {
	roots := s.reg.Roots()
	v := View{
		State:         s.cur.State(),
		Roots:         roots,
		Root:          s.cur.RootNode(roots),
		Parent:        s.cur.Parent(roots),
		Modules:       s.cur.Modules(roots),
		Selected:      s.cur.SelectedNode(roots),
		SelectedIndex: s.cur.Selected,
		Context:       s.cur.Context,
		Lineage:       s.cur.Lineage(roots),
	}
	if v.Root != nil {
		v.Crumbs = append(v.Crumbs, Crumb{Level: -1, Name: v.Root.Name})
		for i, step := range s.cur.Path {
			v.Crumbs = append(v.Crumbs, Crumb{Level: i, Name: step.Name})
		}
	}
	return v
}

package app

import (
	"context"
	"fmt"

	"tableflip.dev/satcat/pkg/asset"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
)

// Target names what a Save writes to.
type Target int

const (
	// TargetNewRoot adds a satellite.
	TargetNewRoot Target = iota
	// TargetNewModule adds a module to the node whose modules are on show.
	TargetNewModule
	// TargetNewSubcomponent adds a module below the selected module.
	TargetNewSubcomponent
	// TargetRoot edits the open satellite.
	TargetRoot
	// TargetSelected edits the selected module.
	TargetSelected
)

func (t Target) String() string {
	switch t {
	case TargetNewRoot:
		return "new-satellite"
	case TargetNewModule:
		return "new-module"
	case TargetNewSubcomponent:
		return "new-subcomponent"
	case TargetRoot:
		return "satellite"
	case TargetSelected:
		return "module"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// DeleteTarget names what a Delete removes.
type DeleteTarget int

const (
	// DeleteRoot removes the open satellite and returns home.
	DeleteRoot DeleteTarget = iota
	// DeleteSelected removes the selected module.
	DeleteSelected
)

// Save validates in and writes it to target, then persists.
func (s *Session) Save(ctx context.Context, target Target, in NodeInput) (View, error) {
	in, err := in.clean()
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, func(roots []*node.Node) error {
		switch target {
		case TargetNewRoot:
			n := &node.Node{}
			in.apply(n)
			_, err := s.reg.AddRoot(n)
			return err

		case TargetNewModule:
			parent, err := s.parent(roots)
			if err != nil {
				return err
			}
			n := &node.Node{}
			in.apply(n)
			_, err = s.reg.AddChild(parent, n)
			return err

		case TargetNewSubcomponent:
			sel := s.cur.SelectedNode(roots)
			if sel == nil {
				return ErrNoSelection
			}
			n := &node.Node{}
			in.apply(n)
			_, err := s.reg.AddChild(sel, n)
			return err

		case TargetRoot:
			root := s.cur.RootNode(roots)
			if root == nil {
				return cursor.ErrNoRoot
			}
			updated := root.Clone()
			in.apply(updated)
			return s.reg.Replace(updated)

		case TargetSelected:
			sel := s.cur.SelectedNode(roots)
			if sel == nil {
				return ErrNoSelection
			}
			updated := sel.Clone()
			in.apply(updated)
			return s.reg.Replace(updated)

		default:
			return fmt.Errorf("app: unknown target %s", target)
		}
	})
}

// Delete removes target with its subtree. Deleting the module that was
// drilled into first steps back out of it, so the cursor lands on its parent.
func (s *Session) Delete(ctx context.Context, target DeleteTarget) (View, error) {
	return s.mutate(ctx, func(roots []*node.Node) error {
		switch target {
		case DeleteRoot:
			if s.cur.RootNode(roots) == nil {
				return cursor.ErrNoRoot
			}
			if _, err := s.reg.RemoveRoot(s.cur.Root); err != nil {
				return err
			}
			s.cur.Exit()
			return nil

		case DeleteSelected:
			if s.cur.SelectedNode(roots) == nil {
				return ErrNoSelection
			}
			if idx, ok := s.cur.PopContext(); ok {
				parent, err := s.parent(roots)
				if err != nil {
					return err
				}
				_, err = s.reg.RemoveChild(parent, idx)
				return err
			}
			parent, err := s.parent(roots)
			if err != nil {
				return err
			}
			if _, err := s.reg.RemoveChild(parent, s.cur.Selected); err != nil {
				return err
			}
			// Indices after the splice point have shifted.
			s.cur.ClearSelection()
			return nil

		default:
			return fmt.Errorf("app: unknown delete target %d", int(target))
		}
	})
}

// SetImage stores the image at path on the selected module, or on the open
// satellite when nothing is selected. On failure the previous image stays.
func (s *Session) SetImage(ctx context.Context, path string) (View, error) {
	ref, err := asset.ReadImageReference(path)
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, func(roots []*node.Node) error {
		target := s.cur.SelectedNode(roots)
		if target == nil {
			target = s.cur.RootNode(roots)
		}
		if target == nil {
			return cursor.ErrNoRoot
		}
		updated := target.Clone()
		updated.Image = ref
		return s.reg.Replace(updated)
	})
}

func (s *Session) parent(roots []*node.Node) (*node.Node, error) {
	if s.cur.State() == cursor.Home {
		return nil, cursor.ErrNoRoot
	}
	parent := s.cur.Parent(roots)
	if parent == nil {
		return nil, ErrStaleCursor
	}
	return parent, nil
}

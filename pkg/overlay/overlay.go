// Package overlay diffs a working set of satellites against the read-only
// baseline and re-applies that diff on load.
//
// Reconciliation happens at root granularity: a satellite that changed
// anywhere in its subtree is recorded whole under Modified, never as a nested
// patch.
package overlay

import (
	"tableflip.dev/satcat/pkg/node"
)

// Overlay is the minimal patch that turns the baseline into the working set.
type Overlay struct {
	Modified []*node.Node `json:"modified"`
	Added    []*node.Node `json:"added"`
	Deleted  []string     `json:"deleted"`
}

// Empty returns an overlay with no changes. Its slices are non-nil so it
// serializes as empty arrays.
func Empty() Overlay {
	return Overlay{
		Modified: []*node.Node{},
		Added:    []*node.Node{},
		Deleted:  []string{},
	}
}

// IsEmpty reports whether applying o would leave the baseline untouched.
func (o Overlay) IsEmpty() bool {
	return len(o.Modified) == 0 && len(o.Added) == 0 && len(o.Deleted) == 0
}

// Compute returns the roots of working that are new or differ from baseline,
// and the ids of baseline roots missing from working. Entries are deep
// copies, in working (or baseline) order.
func Compute(baseline, working []*node.Node) Overlay {
	o := Empty()

	original := make(map[string]*node.Node, len(baseline))
	for _, b := range baseline {
		if b != nil {
			original[b.ID] = b
		}
	}

	present := make(map[string]struct{}, len(working))
	for _, w := range working {
		if w == nil {
			continue
		}
		present[w.ID] = struct{}{}
		b, ok := original[w.ID]
		switch {
		case !ok:
			o.Added = append(o.Added, w.Clone())
		case !node.Equal(b, w):
			o.Modified = append(o.Modified, w.Clone())
		}
	}

	for _, b := range baseline {
		if b == nil {
			continue
		}
		if _, ok := present[b.ID]; !ok {
			o.Deleted = append(o.Deleted, b.ID)
		}
	}
	return o
}

// Apply rebuilds a working set from a deep copy of baseline. Modified entries
// replace the baseline root with the same id, added entries are appended
// unless a root with that id already exists, and deleted ids are removed last
// so a deletion always wins over stale modified data. Applying the same
// overlay twice gives the same result.
func Apply(baseline []*node.Node, o Overlay) []*node.Node {
	working := node.CloneAll(baseline)

	for _, mod := range o.Modified {
		if mod == nil {
			continue
		}
		if i := indexOf(working, mod.ID); i >= 0 {
			working[i] = mod.Clone()
		}
	}

	for _, add := range o.Added {
		if add == nil {
			continue
		}
		if indexOf(working, add.ID) < 0 {
			working = append(working, add.Clone())
		}
	}

	for _, id := range o.Deleted {
		if i := indexOf(working, id); i >= 0 {
			working = append(working[:i], working[i+1:]...)
		}
	}

	if working == nil {
		working = []*node.Node{}
	}
	return working
}

func indexOf(roots []*node.Node, id string) int {
	for i, r := range roots {
		if r != nil && r.ID == id {
			return i
		}
	}
	return -1
}

package catalogue

import (
	"errors"
	"fmt"
	"testing"

	"tableflip.dev/satcat/pkg/node"
)

func working() []*node.Node {
	return []*node.Node{
		{ID: "s1", Name: "Sat", Modules: []*node.Node{
			{ID: "m1", Name: "Mod", Modules: []*node.Node{
				{ID: "m2", Name: "Sub"},
			}},
		}},
		{ID: "s2", Name: "Voyager"},
	}
}

func TestAddAssignsUniqueIDs(t *testing.T) {
	r := New(working())
	seen := map[string]struct{}{"s1": {}, "s2": {}, "m1": {}, "m2": {}}
	parent, _ := r.Find("m1")
	for i := 0; i < 200; i++ {
		var n *node.Node
		var err error
		if i%2 == 0 {
			n, err = r.AddRoot(&node.Node{Name: fmt.Sprintf("root %d", i)})
		} else {
			n, err = r.AddChild(parent, &node.Node{Name: fmt.Sprintf("child %d", i)})
		}
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		if n.ID == "" {
			t.Fatalf("add %d: no id assigned", i)
		}
		if _, dup := seen[n.ID]; dup {
			t.Fatalf("add %d: duplicate id %q", i, n.ID)
		}
		seen[n.ID] = struct{}{}
	}
}

func TestAddRetriesOnCollision(t *testing.T) {
	candidates := []string{"m2", "s1", "fresh"}
	src := func(string) string {
		id := candidates[0]
		candidates = candidates[1:]
		return id
	}
	r := New(working(), WithIDSource(src))
	n, err := r.AddRoot(&node.Node{Name: "New"})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if n.ID != "fresh" {
		t.Fatalf("expected colliding candidates to be skipped, got %q", n.ID)
	}
}

func TestAddReassignsTakenIDs(t *testing.T) {
	r := New(working())
	n, _ := r.AddRoot(&node.Node{ID: "m1", Name: "Copy", Modules: []*node.Node{{ID: "m2", Name: "Copy child"}}})
	if n.ID == "m1" || n.Modules[0].ID == "m2" {
		t.Fatalf("ids already used deeper in the tree must be replaced: %q %q", n.ID, n.Modules[0].ID)
	}
}

func TestAddChildCreatesModules(t *testing.T) {
	r := New(working())
	parent, _ := r.Find("s2")
	if parent.Modules != nil {
		t.Fatalf("precondition: s2 has no modules")
	}
	child, err := r.AddChild(parent, &node.Node{Name: "Antenna"})
	if err != nil {
		t.Fatalf("add child: %v", err)
	}
	if len(parent.Modules) != 1 || parent.Modules[0] != child {
		t.Fatalf("child not appended")
	}
	if child.ID[:len(ModulePrefix)] != ModulePrefix {
		t.Fatalf("expected module prefix, got %q", child.ID)
	}
}

func TestReplaceAtDepth(t *testing.T) {
	r := New(working())
	updated := &node.Node{ID: "m2", Name: "Renamed"}
	if err := r.Replace(updated); err != nil {
		t.Fatalf("replace: %v", err)
	}
	got, ok := r.Find("m2")
	if !ok || got.Name != "Renamed" {
		t.Fatalf("expected replacement at depth 2, got %+v", got)
	}
	if err := r.Replace(&node.Node{ID: "nope", Name: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemoveDiscardsSubtree(t *testing.T) {
	r := New(working())
	s1, _ := r.Root(0)
	removed, err := r.RemoveChild(s1, 0)
	if err != nil {
		t.Fatalf("remove child: %v", err)
	}
	if removed.ID != "m1" || len(s1.Modules) != 0 {
		t.Fatalf("unexpected removal %+v", removed)
	}
	if _, ok := r.Find("m2"); ok {
		t.Fatalf("descendant should be gone with its parent")
	}

	// Freed ids may be handed out again without violating uniqueness.
	src := func(string) string { return "m2" }
	r.source = src
	n, _ := r.AddRoot(&node.Node{Name: "Reuse"})
	if n.ID != "m2" {
		t.Fatalf("expected freed id to be reusable, got %q", n.ID)
	}

	if _, err := r.RemoveRoot(5); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := r.RemoveChild(s1, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	if _, err := r.RemoveRoot(0); err != nil {
		t.Fatalf("remove root: %v", err)
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 roots, got %d", r.Len())
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	r := New(working())
	snap := r.Snapshot()
	s1, _ := r.Root(0)
	s1.Name = "changed"
	if snap[0].Name != "Sat" {
		t.Fatalf("snapshot must not follow later mutations")
	}
}

func TestNilArguments(t *testing.T) {
	r := New(nil)
	if r.Roots() == nil {
		t.Fatalf("roots should never be nil")
	}
	if _, err := r.AddRoot(nil); !errors.Is(err, ErrNilNode) {
		t.Fatalf("expected ErrNilNode, got %v", err)
	}
	if _, err := r.AddChild(nil, &node.Node{Name: "x"}); !errors.Is(err, ErrNilNode) {
		t.Fatalf("expected ErrNilNode, got %v", err)
	}
	if _, err := r.Root(0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/satcat/pkg/asset"
	"tableflip.dev/satcat/pkg/catalogue"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/overlay"
	"tableflip.dev/satcat/pkg/store"
)

func counterSource() catalogue.IDSource {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// R -> [A -> [B], C]
func nested() []*node.Node {
	return []*node.Node{{
		ID: "r", Name: "R", Modules: []*node.Node{
			{ID: "a", Name: "A", Modules: []*node.Node{{ID: "b", Name: "B"}}},
			{ID: "c", Name: "C"},
		},
	}}
}

func open(t *testing.T, kv store.KV, baseline []*node.Node) *Session {
	t.Helper()
	s, err := Open(context.Background(), Options{Baseline: baseline, KV: kv, IDSource: counterSource()})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s
}

func moduleNames(v View) string {
	var names []string
	for _, m := range v.Modules {
		names = append(names, m.Name)
	}
	return strings.Join(names, ",")
}

func TestOpenRequiresStore(t *testing.T) {
	if _, err := Open(context.Background(), Options{}); !errors.Is(err, ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestEditWalkthrough(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	baseline := []*node.Node{{ID: "s1", Name: "Sat", Modules: []*node.Node{{ID: "m1", Name: "Mod"}}}}

	s := open(t, kv, baseline)
	if _, err := s.EnterRoot(ctx, 0); err != nil {
		t.Fatalf("enter: %v", err)
	}
	if _, err := s.Select(ctx, 0); err != nil {
		t.Fatalf("select: %v", err)
	}
	if _, err := s.Save(ctx, TargetNewSubcomponent, NodeInput{Name: "Sub"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	m1, _ := s.Find("m1")
	if len(m1.Modules) != 1 || m1.Modules[0].Name != "Sub" || m1.Modules[0].ID == "" {
		t.Fatalf("unexpected modules %+v", m1.Modules)
	}
	o := s.Overlay()
	if len(o.Modified) != 1 || o.Modified[0].ID != "s1" || len(o.Added) != 0 || len(o.Deleted) != 0 {
		t.Fatalf("unexpected overlay %+v", o)
	}

	reloaded := open(t, kv, baseline)
	if _, err := reloaded.Exit(ctx); err != nil {
		t.Fatalf("exit: %v", err)
	}
	if _, err := reloaded.EnterRoot(ctx, 0); err != nil {
		t.Fatalf("enter: %v", err)
	}
	v, err := reloaded.DrillInto(ctx, 0)
	if err != nil {
		t.Fatalf("drill: %v", err)
	}
	if moduleNames(v) != "Sub" {
		t.Fatalf("expected [Sub], got [%s]", moduleNames(v))
	}
	if !node.EqualAll(baseline, reloaded.Baseline()) {
		t.Fatalf("the baseline must not change")
	}
}

func TestDeleteDrilledContextRepointsCursor(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	_, _ = s.EnterRoot(ctx, 0)
	if _, err := s.DrillInto(ctx, 0); err != nil {
		t.Fatalf("drill: %v", err)
	}

	v, err := s.Delete(ctx, DeleteSelected)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v.State != cursor.RootView {
		t.Fatalf("expected RootView, got %s", v.State)
	}
	if v.Parent == nil || v.Parent.ID != "r" {
		t.Fatalf("expected parent R, got %+v", v.Parent)
	}
	if moduleNames(v) != "C" {
		t.Fatalf("expected A removed, got [%s]", moduleNames(v))
	}
	if v.Selected != nil {
		t.Fatalf("selection should be cleared")
	}
	if _, ok := s.Find("b"); ok {
		t.Fatalf("the subtree should be gone")
	}
}

func TestDeleteSiblingClearsSelection(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.Select(ctx, 1)

	v, err := s.Delete(ctx, DeleteSelected)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v.State != cursor.RootView || moduleNames(v) != "A" {
		t.Fatalf("unexpected view %s [%s]", v.State, moduleNames(v))
	}
	if v.Selected != nil || v.SelectedIndex != cursor.NoIndex {
		t.Fatalf("selection should be cleared")
	}

	if _, err := s.Delete(ctx, DeleteSelected); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
}

func TestDeleteRoot(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	if _, err := s.Delete(ctx, DeleteRoot); !errors.Is(err, cursor.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot at home, got %v", err)
	}
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.DrillInto(ctx, 0)
	v, err := s.Delete(ctx, DeleteRoot)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if v.State != cursor.Home || len(v.Roots) != 0 {
		t.Fatalf("expected home with no satellites, got %s with %d", v.State, len(v.Roots))
	}
	if o := s.Overlay(); len(o.Deleted) != 1 || o.Deleted[0] != "r" {
		t.Fatalf("unexpected overlay %+v", o)
	}
}

func TestSaveTargets(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())

	v, err := s.Save(ctx, TargetNewRoot, NodeInput{Name: "  Voyager  "})
	if err != nil {
		t.Fatalf("new root: %v", err)
	}
	voyager := v.Roots[1]
	if voyager.Name != "Voyager" || voyager.Icon != node.DefaultIcon || voyager.ID != "sat-1" {
		t.Fatalf("unexpected satellite %+v", voyager)
	}

	_, _ = s.EnterRoot(ctx, 0)
	v, err = s.Save(ctx, TargetNewModule, NodeInput{Name: "D", Icon: "🔧"})
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if moduleNames(v) != "A,C,D" || v.Modules[2].Icon != "🔧" || v.Modules[2].ID != "mod-2" {
		t.Fatalf("unexpected modules [%s]", moduleNames(v))
	}

	_, _ = s.DrillInto(ctx, 0)
	v, err = s.Save(ctx, TargetSelected, NodeInput{Name: "Alpha", Type: "Bus", Description: "  kept as is "})
	if err != nil {
		t.Fatalf("edit selected: %v", err)
	}
	if v.Selected.Name != "Alpha" || v.Selected.Icon != node.DefaultIcon || v.Selected.Description != "  kept as is " {
		t.Fatalf("unexpected edit %+v", v.Selected)
	}
	if v.Selected.ID != "a" || len(v.Selected.Modules) != 1 {
		t.Fatalf("edit must keep id and modules")
	}
	if v.Crumbs[1].Name != "Alpha" {
		t.Fatalf("breadcrumb should follow the rename, got %+v", v.Crumbs)
	}

	v, err = s.Save(ctx, TargetRoot, NodeInput{Name: "Renamed"})
	if err != nil {
		t.Fatalf("edit root: %v", err)
	}
	if v.Root.Name != "Renamed" || v.Crumbs[0].Name != "Renamed" || v.State != cursor.DrilledView {
		t.Fatalf("unexpected root edit %+v", v.Root)
	}
}

func TestSaveSubcomponentUnderLeaf(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.Select(ctx, 1)

	v, err := s.Save(ctx, TargetNewSubcomponent, NodeInput{Name: "C1"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !v.Modules[1].HasChildren() || v.Modules[1].Modules[0].Name != "C1" {
		t.Fatalf("expected C to gain a module")
	}
	if v.Selected == nil || v.Selected.ID != "c" {
		t.Fatalf("selection should stay on C")
	}
	if _, err := s.DrillInto(ctx, 1); err != nil {
		t.Fatalf("C should now be drillable: %v", err)
	}
}

func TestSaveRejectsBlankName(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := open(t, kv, nested())
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.Select(ctx, 0)
	before := s.Cursor()

	for _, target := range []Target{TargetNewRoot, TargetNewModule, TargetSelected} {
		_, err := s.Save(ctx, target, NodeInput{Name: " \t ", Icon: "x"})
		var verr *ValidationError
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Fatalf("%s: expected name ValidationError, got %v", target, err)
		}
	}
	if !node.EqualAll(s.Roots(), nested()) {
		t.Fatalf("working set changed")
	}
	if after := s.Cursor(); after.Selected != before.Selected || after.Root != before.Root {
		t.Fatalf("cursor changed")
	}
	if _, err := kv.Read(store.DefaultOverlayKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("nothing should be stored, got %v", err)
	}
}

func TestSaveNeedsTarget(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	if _, err := s.Save(ctx, TargetNewModule, NodeInput{Name: "x"}); !errors.Is(err, cursor.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
	if _, err := s.Save(ctx, TargetRoot, NodeInput{Name: "x"}); !errors.Is(err, cursor.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot, got %v", err)
	}
	_, _ = s.EnterRoot(ctx, 0)
	for _, target := range []Target{TargetSelected, TargetNewSubcomponent} {
		if _, err := s.Save(ctx, target, NodeInput{Name: "x"}); !errors.Is(err, ErrNoSelection) {
			t.Fatalf("%s: expected ErrNoSelection, got %v", target, err)
		}
	}
}

func TestFailedWriteRollsBack(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := open(t, kv, nested())
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.DrillInto(ctx, 0)

	kv.FailWrites = errors.New("disk full")
	if _, err := s.Delete(ctx, DeleteSelected); err == nil {
		t.Fatalf("expected the write failure")
	}
	if !node.EqualAll(s.Roots(), nested()) {
		t.Fatalf("working set should be restored")
	}
	v := s.View()
	if v.State != cursor.DrilledView || v.Selected == nil || v.Selected.ID != "a" {
		t.Fatalf("cursor should be restored, got %s", v.State)
	}
	if _, err := s.Select(ctx, 0); err == nil {
		t.Fatalf("cursor moves are persisted too")
	}
	if !s.View().Context {
		t.Fatalf("a failed move keeps the previous cursor")
	}

	kv.FailWrites = nil
	if _, err := s.Delete(ctx, DeleteSelected); err != nil {
		t.Fatalf("delete after recovery: %v", err)
	}
}

func TestCorruptRecordsWarn(t *testing.T) {
	kv := store.NewMemory()
	_ = kv.Write(store.DefaultOverlayKey, []byte("garbage"))
	_ = kv.Write(CursorKey, []byte("{"))

	s := open(t, kv, nested())
	if len(s.Warnings()) != 2 {
		t.Fatalf("expected two warnings, got %v", s.Warnings())
	}
	var corrupt *overlay.StorageCorruptError
	if !errors.As(s.Warnings()[0], &corrupt) {
		t.Fatalf("expected StorageCorruptError, got %v", s.Warnings()[0])
	}
	if !node.EqualAll(s.Roots(), nested()) || s.View().State != cursor.Home {
		t.Fatalf("corrupt records should fall back to the baseline at home")
	}
}

func TestFailedEditLeavesRecordsAlone(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	corrupt := []byte(`{"modified": [`)
	_ = kv.Write(store.DefaultOverlayKey, corrupt)
	_ = kv.Write(CursorKey, []byte(`{"root":0,"selected":-1}`))

	s := open(t, kv, nested())
	if len(s.Warnings()) != 1 {
		t.Fatalf("expected the corrupt overlay to be reported, got %v", s.Warnings())
	}

	if _, err := s.Delete(ctx, DeleteSelected); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}
	if _, err := s.Save(ctx, TargetSelected, NodeInput{Name: "X"}); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("expected ErrNoSelection, got %v", err)
	}

	got, err := kv.Read(store.DefaultOverlayKey)
	if err != nil {
		t.Fatalf("overlay record should still exist: %v", err)
	}
	if string(got) != string(corrupt) {
		t.Fatalf("overlay record rewritten to %q", got)
	}
	cur, err := kv.Read(CursorKey)
	if err != nil || string(cur) != `{"root":0,"selected":-1}` {
		t.Fatalf("cursor record rewritten to %q (%v)", cur, err)
	}
}

func TestReloadSeesOtherDiskvWriter(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	writerKV, err := store.OpenDiskv(dir)
	if err != nil {
		t.Fatalf("open writer: %v", err)
	}
	readerKV, err := store.OpenDiskv(dir)
	if err != nil {
		t.Fatalf("open reader: %v", err)
	}

	writer := open(t, writerKV, nested())
	if _, err := writer.Save(ctx, TargetNewRoot, NodeInput{Name: "First"}); err != nil {
		t.Fatalf("first: %v", err)
	}
	reader := open(t, readerKV, nested())
	if len(reader.Roots()) != 2 {
		t.Fatalf("reader should open with 2 roots, got %d", len(reader.Roots()))
	}

	if _, err := writer.Save(ctx, TargetNewRoot, NodeInput{Name: "Second"}); err != nil {
		t.Fatalf("second: %v", err)
	}
	if err := reader.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reader.Roots()); got != 3 {
		t.Fatalf("expected 3 roots after reload, got %d", got)
	}
}

func TestCursorSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := open(t, kv, nested())
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.DrillInto(ctx, 0)
	_, _ = s.Select(ctx, 0)

	v := open(t, kv, nested()).View()
	if v.State != cursor.DrilledView || v.Selected == nil || v.Selected.ID != "b" {
		t.Fatalf("cursor was not restored: %s %+v", v.State, v.Selected)
	}

	// The stored path no longer resolves against a smaller baseline.
	v = open(t, kv, []*node.Node{{ID: "r", Name: "R"}}).View()
	if v.State != cursor.RootView || v.Selected != nil {
		t.Fatalf("stale cursor should be cut back, got %s", v.State)
	}
}

func TestNavigationPassthroughs(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	if _, err := s.EnterRoot(ctx, 3); !errors.Is(err, cursor.ErrOutOfRange) {
		t.Fatalf("expected ErrOutOfRange, got %v", err)
	}
	_, _ = s.EnterRoot(ctx, 0)
	_, _ = s.DrillInto(ctx, 0)
	v, err := s.NavigateTo(ctx, -1)
	if err != nil || v.State != cursor.RootView || v.Selected != nil {
		t.Fatalf("navigate: %v %s", err, v.State)
	}
	_, _ = s.Select(ctx, 0)
	v, _ = s.Deselect(ctx)
	if v.Selected != nil {
		t.Fatalf("deselect left a selection")
	}
	v, _ = s.Up(ctx)
	if v.State != cursor.Home {
		t.Fatalf("up from the satellite should go home")
	}
	_, _ = s.EnterRoot(ctx, 0)
	v, _ = s.Exit(ctx)
	if v.State != cursor.Home || v.Crumbs != nil {
		t.Fatalf("exit should go home")
	}
}

func TestImportExportReset(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	s := open(t, kv, nested())
	_, _ = s.EnterRoot(ctx, 0)

	data := []byte(`[{"id":"r","name":"R"},{"name":"Fresh","modules":[{"name":"Part"}]}]`)
	v, err := s.Import(ctx, data)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if v.State != cursor.Home || len(v.Roots) != 2 {
		t.Fatalf("unexpected view after import")
	}
	o := s.Overlay()
	if len(o.Modified) != 1 || len(o.Added) != 1 || len(o.Deleted) != 0 {
		t.Fatalf("import should become an overlay, got %+v", o)
	}
	if v.Roots[1].ID == "" || v.Roots[1].Modules[0].ID == "" {
		t.Fatalf("missing ids should be filled in")
	}

	out, err := s.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	back, err := catalogue.Import(out, nil)
	if err != nil || !node.EqualAll(back, s.Roots()) {
		t.Fatalf("export does not round trip: %v", err)
	}

	if _, err := s.Import(ctx, []byte(`{"name":"not a list"}`)); err == nil {
		t.Fatalf("expected an import error")
	}
	if len(s.Roots()) != 2 {
		t.Fatalf("a failed import must leave the working set alone")
	}

	if _, err := s.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if !node.EqualAll(s.Roots(), nested()) || !s.Overlay().IsEmpty() {
		t.Fatalf("reset should return to the baseline")
	}
	if _, err := kv.Read(store.DefaultOverlayKey); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("reset should remove the stored overlay, got %v", err)
	}
}

func TestReload(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemory()
	a := open(t, kv, nested())
	b := open(t, kv, nested())

	if _, err := a.Save(ctx, TargetNewRoot, NodeInput{Name: "Other"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if len(b.Roots()) != 1 {
		t.Fatalf("b has not reloaded yet")
	}
	if err := b.Reload(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(b.Roots()) != 2 {
		t.Fatalf("reload should pick up the other session's edit")
	}
}

func TestSetImage(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())
	dir := t.TempDir()
	png := filepath.Join(dir, "a.png")
	if err := os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := s.SetImage(ctx, png); !errors.Is(err, cursor.ErrNoRoot) {
		t.Fatalf("expected ErrNoRoot at home, got %v", err)
	}
	_, _ = s.EnterRoot(ctx, 0)
	v, err := s.SetImage(ctx, png)
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if !asset.IsDataURI(v.Root.Image) {
		t.Fatalf("satellite image not set: %q", v.Root.Image)
	}

	_, _ = s.Select(ctx, 1)
	v, _ = s.SetImage(ctx, png)
	prior := v.Selected.Image
	if !strings.HasPrefix(prior, "data:image/png") {
		t.Fatalf("module image not set: %q", prior)
	}

	txt := filepath.Join(dir, "notes.txt")
	_ = os.WriteFile(txt, []byte("hello"), 0o644)
	_, err = s.SetImage(ctx, txt)
	var readErr *asset.AssetReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected AssetReadError, got %v", err)
	}
	if s.View().Selected.Image != prior {
		t.Fatalf("a failed read must keep the previous image")
	}
}

func TestLocateThenEdit(t *testing.T) {
	ctx := context.Background()
	s := open(t, store.NewMemory(), nested())

	v, err := s.Locate(ctx, "b")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if v.State != cursor.DrilledView || v.Selected == nil || v.Selected.ID != "b" {
		t.Fatalf("unexpected view %s %+v", v.State, v.Selected)
	}
	if _, err := s.Save(ctx, TargetSelected, NodeInput{Name: "Bee"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if b, _ := s.Find("b"); b.Name != "Bee" {
		t.Fatalf("rename did not land on b")
	}
	if _, err := s.Locate(ctx, "missing"); !errors.Is(err, cursor.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

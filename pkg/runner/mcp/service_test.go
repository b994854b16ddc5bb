package mcp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/store"
)

func newService(t *testing.T) (*Service, *app.Session) {
	t.Helper()
	s, err := app.Open(context.Background(), app.Options{
		KV: store.NewMemory(),
		Baseline: []*node.Node{
			{ID: "r", Name: "Voyager", Modules: []*node.Node{
				{ID: "a", Name: "Bus", Modules: []*node.Node{{ID: "b", Name: "Battery"}}},
				{ID: "c", Name: "Camera"},
			}},
			{ID: "q", Name: "Relay"},
		},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return NewService(s), s
}

func strp(s string) *string { return &s }

func TestServiceListAndGet(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	list, err := svc.ListSatellites(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].NodeCount != 4 || list[0].ModuleCount != 2 {
		t.Fatalf("unexpected summaries %+v", list)
	}

	dto, err := svc.GetNode(ctx, "b")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got := strings.Join(dto.Path, "/"); got != "Voyager/Bus/Battery" {
		t.Fatalf("unexpected path %q", got)
	}
	if dto.IsSatellite {
		t.Fatalf("Battery is not a satellite")
	}

	if _, err := svc.GetNode(ctx, "nope"); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
}

func TestServiceAdd(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()

	sat, err := svc.AddSatellite(ctx, app.NodeInput{Name: "Tug"})
	if err != nil {
		t.Fatalf("add satellite: %v", err)
	}
	if !sat.IsSatellite || sat.Icon != node.DefaultIcon {
		t.Fatalf("unexpected satellite %+v", sat)
	}

	mod, err := svc.AddModule(ctx, "r", app.NodeInput{Name: "Radio"})
	if err != nil {
		t.Fatalf("add module to satellite: %v", err)
	}
	if got := strings.Join(mod.Path, "/"); got != "Voyager/Radio" {
		t.Fatalf("unexpected path %q", got)
	}

	sub, err := svc.AddModule(ctx, "c", app.NodeInput{Name: "Lens"})
	if err != nil {
		t.Fatalf("add module to module: %v", err)
	}
	if got := strings.Join(sub.Path, "/"); got != "Voyager/Camera/Lens" {
		t.Fatalf("unexpected path %q", got)
	}
	if s.Overlay().IsEmpty() {
		t.Fatalf("edits should be in the overlay")
	}

	if _, err := svc.AddModule(ctx, "missing", app.NodeInput{Name: "x"}); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected ErrNodeNotFound, got %v", err)
	}
	var verr *app.ValidationError
	if _, err := svc.AddSatellite(ctx, app.NodeInput{}); !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestServiceUpdateKeepsUnsetFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.UpdateNode(ctx, "a", NodeFields{Description: strp("Primary structure")}); err != nil {
		t.Fatalf("update: %v", err)
	}
	dto, err := svc.UpdateNode(ctx, "a", NodeFields{Name: strp("Bus v2")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != "Bus v2" || dto.Description != "Primary structure" {
		t.Fatalf("unexpected node %+v", dto)
	}
	if len(dto.Modules) != 1 {
		t.Fatalf("modules must survive an update")
	}

	root, err := svc.UpdateNode(ctx, "q", NodeFields{Type: strp("relay")})
	if err != nil {
		t.Fatalf("update satellite: %v", err)
	}
	if root.Type != "relay" || root.Name != "Relay" {
		t.Fatalf("unexpected satellite %+v", root)
	}
}

func TestServiceDelete(t *testing.T) {
	svc, s := newService(t)
	ctx := context.Background()

	if _, err := svc.DeleteNode(ctx, "a"); err != nil {
		t.Fatalf("delete module: %v", err)
	}
	if _, ok := s.Find("b"); ok {
		t.Fatalf("subtree should be gone")
	}
	if _, err := svc.DeleteNode(ctx, "q"); err != nil {
		t.Fatalf("delete satellite: %v", err)
	}
	if len(s.Roots()) != 1 {
		t.Fatalf("expected one satellite left")
	}
	o, err := svc.Overlay(ctx)
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if len(o.Modified) != 1 || len(o.Deleted) != 1 {
		t.Fatalf("unexpected overlay %+v", o)
	}
}

func TestServiceSetImage(t *testing.T) {
	svc, _ := newService(t)
	path := filepath.Join(t.TempDir(), "dot.png")
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}
	if err := os.WriteFile(path, png, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	dto, err := svc.SetImage(context.Background(), "c", path)
	if err != nil {
		t.Fatalf("set image: %v", err)
	}
	if !strings.HasPrefix(dto.Image, "embedded image/png") {
		t.Fatalf("unexpected image summary %q", dto.Image)
	}
}

func TestServiceRequiresSession(t *testing.T) {
	var svc *Service
	if _, err := svc.ListSatellites(context.Background()); err == nil {
		t.Fatalf("expected an error without a session")
	}
}

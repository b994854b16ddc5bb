package info

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/store"
)

func TestInfo(t *testing.T) {
	color.NoColor = true
	t.Setenv("SATCAT_CONFIG_PATH", "")

	kv := store.NewMemory()
	_ = kv.Write(store.DefaultOverlayKey, []byte("{not json"))
	s, err := app.Open(context.Background(), app.Options{
		KV:       kv,
		Baseline: []*node.Node{{ID: "r", Name: "Voyager", Modules: []*node.Node{{ID: "a", Name: "Bus"}}}},
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	var out bytes.Buffer
	i := Info{
		Config:  store.StaticConfig("/tmp/satcat", store.DriverSQLite, "", ""),
		Session: s,
		Out:     &out,
	}
	if err := i.Do(context.Background()); err != nil {
		t.Fatalf("info: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"SATCAT_CONFIG_PATH env var not set",
		"/tmp/satcat",
		"built-in",
		store.DefaultOverlayKey,
		"1 (2 nodes)",
		"0 modified, 0 added, 0 deleted",
		"home",
		"Warnings:",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in:\n%s", want, got)
		}
	}
}

func TestInfoWithoutSession(t *testing.T) {
	color.NoColor = true
	i := Info{Config: store.StaticConfig("/tmp/satcat", "", "", ""), Out: &bytes.Buffer{}}
	if err := i.Do(context.Background()); err == nil {
		t.Fatalf("expected an error without a session")
	}
}

// Package info reports where satcat keeps its data.
package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/printers"
	"tableflip.dev/satcat/pkg/store"
)

type Info struct {
	Config  store.Config
	Session *app.Session
	// OpenErr is why Session is missing, if it is.
	OpenErr error
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	pp := printers.PrettyPrint{Out: n.Out}
	w := pp.Writer()

	if override := os.Getenv("SATCAT_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "SATCAT_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(w, "SATCAT_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	baseline := n.Config.BaselinePath()
	if baseline == "" {
		baseline = "built-in"
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Path:", n.Config.BasePath())
	tbl.AddRow("Driver:", n.Config.Driver())
	tbl.AddRow("Baseline:", baseline)
	tbl.AddRow("Overlay key:", n.Config.OverlayKey())

	if n.Session == nil {
		_, _ = fmt.Fprintln(w, tbl)
		if n.OpenErr != nil {
			return fmt.Errorf("failed to open the catalogue: %w", n.OpenErr)
		}
		return fmt.Errorf("failed to open the catalogue")
	}

	roots := n.Session.Roots()
	ov := n.Session.Overlay()
	tbl.AddRow("Satellites:", fmt.Sprintf("%d (%d nodes)", len(roots), node.Count(roots)))
	tbl.AddRow("Edits:", fmt.Sprintf("%d modified, %d added, %d deleted", len(ov.Modified), len(ov.Added), len(ov.Deleted)))
	tbl.AddRow("Cursor:", n.Session.View().State)
	_, _ = fmt.Fprintln(w, tbl)

	if warnings := n.Session.Warnings(); len(warnings) > 0 {
		yellow := color.New(color.FgYellow)
		_, _ = fmt.Fprintln(w, "Warnings:")
		for _, err := range warnings {
			_, _ = yellow.Fprintf(w, "  %v\n", err)
		}
	}
	return nil
}

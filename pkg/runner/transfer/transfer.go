// Package transfer moves whole catalogues in and out of satcat as JSON.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/printers"
)

// Export writes the working set. An empty Path or "-" writes to Out.
type Export struct {
	Session *app.Session
	Path    string
	Out     io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Session == nil {
		return errors.New("can not export, no session")
	}
	data, err := e.Session.Export()
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: e.Out}
	if e.Path == "" || e.Path == "-" {
		_, err = pp.Writer().Write(data)
		return err
	}
	if err := os.WriteFile(e.Path, data, 0o644); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	_, _ = fmt.Fprintf(pp.Writer(), "Exported %s to %s\n",
		plural(len(e.Session.Roots()), "satellite"), color.New(color.Bold).Sprint(e.Path))
	return nil
}

// Import replaces the working set with a catalogue read from Path, or from
// In when Path is "-".
type Import struct {
	Session *app.Session
	Path    string
	In      io.Reader
	Out     io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Session == nil {
		return errors.New("can not import, no session")
	}
	var (
		data []byte
		err  error
	)
	switch i.Path {
	case "":
		return errors.New("import: a file or - is required")
	case "-":
		in := i.In
		if in == nil {
			in = os.Stdin
		}
		data, err = io.ReadAll(in)
	default:
		data, err = os.ReadFile(i.Path)
	}
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	v, err := i.Session.Import(ctx, data)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: i.Out}
	_, _ = fmt.Fprintf(pp.Writer(), "Imported %s (%s)\n",
		plural(len(v.Roots), "satellite"), plural(node.Count(v.Roots), "node"))
	return nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

// Package edit adds, changes and removes satellites and modules.
package edit

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/printers"
	"tableflip.dev/satcat/pkg/runner/show"
)

// Save writes Input to Target.
type Save struct {
	Session *app.Session
	Target  app.Target
	Input   app.NodeInput
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (s *Save) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not save, no session")
	}
	v, err := s.Session.Save(ctx, s.Target, s.Input)
	if err != nil {
		return err
	}
	return show.Render(printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}, v, s.JSON)
}

// Delete removes Target after asking on In, unless Yes is set.
type Delete struct {
	Session *app.Session
	Target  app.DeleteTarget
	Yes     bool
	JSON    bool
	In      io.Reader
	Out     io.Writer
}

func (d *Delete) Do(ctx context.Context) error {
	if d.Session == nil {
		return errors.New("can not delete, no session")
	}
	pp := printers.PrettyPrint{Out: d.Out}

	v := d.Session.View()
	var victim string
	switch d.Target {
	case app.DeleteRoot:
		if v.Root != nil {
			victim = fmt.Sprintf("Delete %q and all its modules?", v.Root.Name)
		}
	case app.DeleteSelected:
		if v.Selected != nil {
			victim = fmt.Sprintf("Delete %q and all sub-modules?", v.Selected.Name)
		}
	}
	if victim != "" && !d.Yes {
		ok, err := Confirm(d.In, pp.Writer(), victim)
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(pp.Writer(), "Nothing deleted.")
			return nil
		}
	}

	v, err := d.Session.Delete(ctx, d.Target)
	if err != nil {
		return err
	}
	return show.Render(pp, v, d.JSON)
}

// Image embeds the image at Path on the selected module or open satellite.
type Image struct {
	Session *app.Session
	Path    string
	JSON    bool
	Out     io.Writer
}

func (i *Image) Do(ctx context.Context) error {
	if i.Session == nil {
		return errors.New("can not set image, no session")
	}
	v, err := i.Session.SetImage(ctx, i.Path)
	if err != nil {
		return err
	}
	return show.Render(printers.PrettyPrint{Out: i.Out}, v, i.JSON)
}

// Confirm asks a yes/no question. Anything but y or yes is a no.
func Confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	if in == nil {
		in = os.Stdin
	}
	_, _ = fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

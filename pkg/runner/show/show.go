// Package show prints the catalogue at the cursor.
package show

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/printers"
)

// Show prints the current view, the whole tree, or the lineage of the
// focused node.
type Show struct {
	Session *app.Session
	ShowID  bool
	JSON    bool
	Tree    bool
	Lineage bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("can not show, no session")
	}
	pp := printers.PrettyPrint{ShowID: s.ShowID, Out: s.Out}
	v := s.Session.View()

	switch {
	case s.Tree:
		if s.JSON {
			return printers.JSON(pp.Writer(), v.Roots)
		}
		pp.Tree(v.Roots)
	case s.Lineage:
		if s.JSON {
			return printers.JSON(pp.Writer(), v.Lineage)
		}
		pp.Lineage(v.Lineage)
		if focus := v.Focus(); focus != nil {
			pp.NewLine()
			pp.Detail(focus)
		}
	default:
		return Render(pp, v, s.JSON)
	}
	return nil
}

// Render prints v as text or JSON. Other runners use it after moving or
// editing.
func Render(pp printers.PrettyPrint, v app.View, asJSON bool) error {
	if asJSON {
		return printers.JSON(pp.Writer(), v)
	}
	pp.View(v)
	return nil
}

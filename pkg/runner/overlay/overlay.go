// Package overlay reports and discards the stored edits.
package overlay

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/printers"
	"tableflip.dev/satcat/pkg/runner/edit"
)

// Overlay prints what differs from the baseline.
type Overlay struct {
	Session *app.Session
	JSON    bool
	Out     io.Writer
}

func (o *Overlay) Do(ctx context.Context) error {
	if o.Session == nil {
		return errors.New("can not show overlay, no session")
	}
	pp := printers.PrettyPrint{Out: o.Out}
	ov := o.Session.Overlay()
	if o.JSON {
		return printers.JSON(pp.Writer(), ov)
	}
	pp.TitleWithCount("Edits", len(ov.Modified)+len(ov.Added)+len(ov.Deleted), "change")
	pp.Overlay(ov, o.Session.Baseline())
	return nil
}

// Reset drops every edit after asking on In, unless Yes is set.
type Reset struct {
	Session *app.Session
	Yes     bool
	In      io.Reader
	Out     io.Writer
}

func (r *Reset) Do(ctx context.Context) error {
	if r.Session == nil {
		return errors.New("can not reset, no session")
	}
	pp := printers.PrettyPrint{Out: r.Out}
	if r.Session.Overlay().IsEmpty() {
		_, _ = fmt.Fprintln(pp.Writer(), "Nothing to reset.")
		return nil
	}
	if !r.Yes {
		ok, err := edit.Confirm(r.In, pp.Writer(), "Discard all edits and restore the baseline?")
		if err != nil {
			return err
		}
		if !ok {
			_, _ = fmt.Fprintln(pp.Writer(), "Kept edits.")
			return nil
		}
	}
	if _, err := r.Session.Reset(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(pp.Writer(), "Restored the baseline.")
	return nil
}

// Package watch follows the store and reprints the catalogue whenever
// another satcat process changes it.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/printers"
	"tableflip.dev/satcat/pkg/runner/show"
	"tableflip.dev/satcat/pkg/store"
)

// Source streams storage events for a base path.
type Source func(ctx context.Context, basePath string) (<-chan store.Event, error)

type Watch struct {
	Session  *app.Session
	BasePath string
	// Keys limits record events to these records. Invalidations always
	// reload.
	Keys   []string
	ShowID bool
	Out    io.Writer
	// Source defaults to store.Watch.
	Source Source
}

func (w *Watch) Do(ctx context.Context) error {
	if w.Session == nil {
		return errors.New("can not watch, no session")
	}
	source := w.Source
	if source == nil {
		source = store.Watch
	}
	events, err := source(ctx, w.BasePath)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: w.ShowID, Out: w.Out}
	if err := show.Render(pp, w.Session.View(), false); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !w.wants(ev) {
				continue
			}
			if err := w.Session.Reload(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			faint := color.New(color.Faint)
			pp.NewLine()
			_, _ = faint.Fprintf(pp.Writer(), "-- reloaded %s --\n", time.Now().Format(time.Kitchen))
			if err := show.Render(pp, w.Session.View(), false); err != nil {
				return err
			}
			for _, warn := range w.Session.Warnings() {
				_, _ = fmt.Fprintf(pp.Writer(), "warning: %v\n", warn)
			}
		}
	}
}

func (w *Watch) wants(ev store.Event) bool {
	if ev.Type != store.EventRecordChanged || len(w.Keys) == 0 {
		return true
	}
	for _, k := range w.Keys {
		if k == ev.Key {
			return true
		}
	}
	return false
}

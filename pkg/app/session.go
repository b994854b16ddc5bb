// Package app is the editing surface shared by the CLI and the interactive
// browser. A Session owns the working set, the navigation cursor and their
// persistence; every operation either applies completely or leaves all three
// as they were.
package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tableflip.dev/satcat/pkg/catalogue"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/overlay"
	"tableflip.dev/satcat/pkg/store"
)

// CursorKey is the record the navigation cursor is kept under.
const CursorKey = "satellite-catalogue-cursor"

var (
	// ErrNoStore is returned by Open without a KV.
	ErrNoStore = errors.New("app: no store configured")
	// ErrNoSelection is returned when an operation needs a selected module.
	ErrNoSelection = errors.New("app: no module selected")
	// ErrStaleCursor is returned when the cursor no longer resolves.
	ErrStaleCursor = errors.New("app: cursor does not resolve")
)

// Options configures Open.
type Options struct {
	// Baseline is the read-only dataset, ids already assigned. It is copied.
	Baseline []*node.Node
	KV       store.KV
	// OverlayKey defaults to store.DefaultOverlayKey.
	OverlayKey string
	Logger     *slog.Logger
	IDSource   catalogue.IDSource
}

// Session is a single editing session. It is not safe for concurrent use.
type Session struct {
	baseline []*node.Node
	reg      *catalogue.Registry
	cur      *cursor.Cursor
	overlays *overlay.Store
	kv       store.KV
	source   catalogue.IDSource
	logger   *slog.Logger
	warnings []error
}

// Open builds the working set from the baseline and the stored overlay and
// restores the cursor. A corrupt overlay or cursor record is not fatal; it
// is logged and reported by Warnings.
func Open(ctx context.Context, opts Options) (*Session, error) {
	if opts.KV == nil {
		return nil, ErrNoStore
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	key := opts.OverlayKey
	if key == "" {
		key = store.DefaultOverlayKey
	}
	source := opts.IDSource
	if source == nil {
		source = catalogue.UUIDSource
	}
	s := &Session{
		baseline: node.CloneAll(opts.Baseline),
		overlays: overlay.NewStore(opts.KV, key, logger),
		kv:       opts.KV,
		source:   source,
		logger:   logger,
	}
	if s.baseline == nil {
		s.baseline = []*node.Node{}
	}
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload discards in-memory state and reads the overlay and cursor again,
// for when another process has written them.
func (s *Session) Reload(ctx context.Context) error {
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.warnings = nil

	o, err := s.overlays.Load()
	var corrupt *overlay.StorageCorruptError
	switch {
	case errors.As(err, &corrupt):
		s.warnings = append(s.warnings, err)
	case err != nil:
		return err
	}
	roots := overlay.Apply(s.baseline, o)
	if s.reg == nil {
		s.reg = catalogue.New(roots, catalogue.WithIDSource(s.source))
	} else {
		s.reg.SetRoots(roots)
	}

	cur, err := s.loadCursor()
	if err != nil {
		return err
	}
	cur.Normalize(s.reg.Roots())
	s.cur = cur
	return nil
}

func (s *Session) loadCursor() (*cursor.Cursor, error) {
	data, err := s.kv.Read(CursorKey)
	if errors.Is(err, store.ErrNotFound) {
		return cursor.New(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("app: reading cursor: %w", err)
	}
	cur := cursor.New()
	if err := json.Unmarshal(data, cur); err != nil {
		s.logger.Warn("discarding unreadable cursor", "key", CursorKey, "error", err)
		s.warnings = append(s.warnings, fmt.Errorf("app: cursor record: %w", err))
		return cursor.New(), nil
	}
	return cur, nil
}

// Warnings lists recoverable problems found while loading.
func (s *Session) Warnings() []error {
	return s.warnings
}

// Roots returns the live working set.
func (s *Session) Roots() []*node.Node {
	return s.reg.Roots()
}

// Baseline returns a copy of the read-only dataset.
func (s *Session) Baseline() []*node.Node {
	return node.CloneAll(s.baseline)
}

// Cursor returns a copy of the navigation state.
func (s *Session) Cursor() *cursor.Cursor {
	return s.cur.Clone()
}

// Overlay returns the patch between the baseline and the working set.
func (s *Session) Overlay() overlay.Overlay {
	return overlay.Compute(s.baseline, s.reg.Roots())
}

// Find looks a node up by id anywhere in the working set.
func (s *Session) Find(id string) (*node.Node, bool) {
	return s.reg.Find(id)
}

// mutate runs fn against the working set and persists the result. If fn
// fails nothing is written. If persistence fails, the working set and cursor
// are restored and written back.
func (s *Session) mutate(ctx context.Context, fn func(roots []*node.Node) error) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	roots := s.reg.Snapshot()
	cur := s.cur.Clone()

	if err := fn(s.reg.Roots()); err != nil {
		s.reg.SetRoots(roots)
		s.cur = cur
		return View{}, err
	}
	s.cur.Normalize(s.reg.Roots())
	if err := s.persist(); err != nil {
		s.reg.SetRoots(roots)
		s.cur = cur
		// A partial write may have landed; put the stored records back in
		// line with memory.
		if perr := s.persist(); perr != nil {
			s.logger.Error("restoring stored state", "error", perr)
		}
		return View{}, err
	}
	return s.View(), nil
}

// move applies a cursor-only change and persists the cursor.
func (s *Session) move(ctx context.Context, fn func(c *cursor.Cursor) error) (View, error) {
	if err := ctx.Err(); err != nil {
		return View{}, err
	}
	prev := s.cur.Clone()
	if err := fn(s.cur); err != nil {
		s.cur = prev
		return View{}, err
	}
	if err := s.saveCursor(); err != nil {
		s.cur = prev
		return View{}, err
	}
	return s.View(), nil
}

// persist writes the overlay, or removes the record when there is nothing
// to keep, and then the cursor.
func (s *Session) persist() error {
	o := s.Overlay()
	var err error
	if o.IsEmpty() {
		err = s.overlays.Clear()
	} else {
		err = s.overlays.Save(o)
	}
	if err != nil {
		return err
	}
	return s.saveCursor()
}

func (s *Session) saveCursor() error {
	data, err := json.Marshal(s.cur)
	if err != nil {
		return fmt.Errorf("app: encoding cursor: %w", err)
	}
	if err := s.kv.Write(CursorKey, data); err != nil {
		return fmt.Errorf("app: writing cursor: %w", err)
	}
	return nil
}

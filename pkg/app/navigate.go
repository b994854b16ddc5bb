package app

import (
	"context"

	"tableflip.dev/satcat/pkg/cursor"
)

// EnterRoot opens the satellite at index i.
func (s *Session) EnterRoot(ctx context.Context, i int) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error { return c.Enter(s.reg.Roots(), i) })
}

// DrillInto descends into the module at index i of the current view.
func (s *Session) DrillInto(ctx context.Context, i int) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error { return c.DrillInto(s.reg.Roots(), i) })
}

// Select marks the module at index i of the current view.
func (s *Session) Select(ctx context.Context, i int) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error { return c.Select(s.reg.Roots(), i) })
}

// NavigateTo jumps to a breadcrumb level; -1 is the satellite.
func (s *Session) NavigateTo(ctx context.Context, level int) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error { return c.NavigateTo(level) })
}

// Up goes one level shallower.
func (s *Session) Up(ctx context.Context) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error {
		c.Up()
		return nil
	})
}

// Exit returns to the satellite list.
func (s *Session) Exit(ctx context.Context) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error {
		c.Exit()
		return nil
	})
}

// Deselect clears the selection without moving.
func (s *Session) Deselect(ctx context.Context) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error {
		c.ClearSelection()
		return nil
	})
}

// Locate moves to the node with the given id. A satellite is entered; a
// module ends up selected with its ancestors drilled into.
func (s *Session) Locate(ctx context.Context, id string) (View, error) {
	return s.move(ctx, func(c *cursor.Cursor) error { return c.Locate(s.reg.Roots(), id) })
}

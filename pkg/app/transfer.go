package app

import (
	"context"

	"tableflip.dev/satcat/pkg/catalogue"
	"tableflip.dev/satcat/pkg/node"
)

// Export serializes the working set.
func (s *Session) Export() ([]byte, error) {
	return catalogue.Export(s.reg.Roots())
}

// Import replaces the working set with data. The baseline is untouched, so
// the difference is stored as an overlay like any other edit. The cursor
// returns home.
func (s *Session) Import(ctx context.Context, data []byte) (View, error) {
	roots, err := catalogue.Import(data, s.source)
	if err != nil {
		return View{}, err
	}
	return s.mutate(ctx, func([]*node.Node) error {
		s.reg.SetRoots(roots)
		s.cur.Exit()
		return nil
	})
}

// Reset drops every edit and returns to the baseline.
func (s *Session) Reset(ctx context.Context) (View, error) {
	return s.mutate(ctx, func([]*node.Node) error {
		s.reg.SetRoots(node.CloneAll(s.baseline))
		s.cur.Exit()
		return nil
	})
}

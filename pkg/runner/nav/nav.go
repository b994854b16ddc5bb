// Package nav moves the persisted cursor.
package nav

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/printers"
	"tableflip.dev/satcat/pkg/runner/show"
)

// Move is one cursor movement.
type Move int

const (
	Enter Move = iota
	Drill
	Select
	Crumb
	Up
	Home
	Deselect
	Goto
)

func (m Move) String() string {
	switch m {
	case Enter:
		return "enter"
	case Drill:
		return "drill"
	case Select:
		return "select"
	case Crumb:
		return "crumb"
	case Up:
		return "up"
	case Home:
		return "home"
	case Deselect:
		return "deselect"
	case Goto:
		return "goto"
	default:
		return fmt.Sprintf("move(%d)", int(m))
	}
}

// Nav applies Move and prints where the cursor ends up.
type Nav struct {
	Session *app.Session
	Move    Move
	// Index is the satellite, module or breadcrumb level for moves that take
	// one.
	Index  int
	ID     string
	ShowID bool
	JSON   bool
	Quiet  bool
	Out    io.Writer
}

func (n *Nav) Do(ctx context.Context) error {
	if n.Session == nil {
		return errors.New("can not move, no session")
	}

	var (
		v   app.View
		err error
	)
	switch n.Move {
	case Enter:
		v, err = n.Session.EnterRoot(ctx, n.Index)
	case Drill:
		v, err = n.Session.DrillInto(ctx, n.Index)
	case Select:
		v, err = n.Session.Select(ctx, n.Index)
	case Crumb:
		v, err = n.Session.NavigateTo(ctx, n.Index)
	case Up:
		v, err = n.Session.Up(ctx)
	case Home:
		v, err = n.Session.Exit(ctx)
	case Deselect:
		v, err = n.Session.Deselect(ctx)
	case Goto:
		v, err = n.Session.Locate(ctx, n.ID)
	default:
		err = fmt.Errorf("unknown move %s", n.Move)
	}
	if err != nil {
		return err
	}
	if n.Quiet {
		return nil
	}
	return show.Render(printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}, v, n.JSON)
}

package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/overlay"
)

// Overlay lists the satellites that differ from the baseline. baseline is
// used to name deleted satellites.
func (pp *PrettyPrint) Overlay(o overlay.Overlay, baseline []*node.Node) {
	if o.IsEmpty() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintln(pp.Writer(), " no edits, showing the baseline")
		return
	}

	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	names := map[string]string{}
	for _, n := range baseline {
		names[n.ID] = n.Name
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Change"), bold.Sprint("Satellite"), bold.Sprint("Nodes"), bold.Sprint("ID"))
	for _, n := range o.Modified {
		tbl.AddRow(yellow.Sprint("modified"), n.Name, node.Count([]*node.Node{n}), n.ID)
	}
	for _, n := range o.Added {
		tbl.AddRow(green.Sprint("added"), n.Name, node.Count([]*node.Node{n}), n.ID)
	}
	for _, id := range o.Deleted {
		tbl.AddRow(red.Sprint("deleted"), names[id], "", id)
	}
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
}

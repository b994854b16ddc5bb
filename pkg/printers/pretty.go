package printers

import (
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/asset"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
)

// DefaultWidth is used when PrettyPrint.Width is unset.
const DefaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	Width  int
	Out    io.Writer
}

var (
	boldMarkup   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarkup = regexp.MustCompile(`\*([^*\s][^*]*)\*`)
)

// Writer is where output goes: Out, or color.Output when unset.
func (pp *PrettyPrint) Writer() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.Writer(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.Writer(), title)
	_, _ = c.Fprintf(pp.Writer(), " - %d %s", count, noun)
	if count != 1 {
		_, _ = c.Fprint(pp.Writer(), "s")
	}
	_, _ = fmt.Fprintln(pp.Writer(), "")
}

// Crumbs prints the breadcrumb trail with its levels, the numbers that
// `crumb` accepts.
func (pp *PrettyPrint) Crumbs(crumbs []app.Crumb) {
	if len(crumbs) == 0 {
		return
	}
	f := color.New(color.Faint)
	parts := make([]string, 0, len(crumbs))
	for _, c := range crumbs {
		parts = append(parts, fmt.Sprintf("%s %s", f.Sprintf("[%d]", c.Level), c.Name))
	}
	_, _ = fmt.Fprintln(pp.Writer(), strings.Join(parts, f.Sprint(" › ")))
}

// Nodes prints a numbered listing. selected is highlighted unless it is
// cursor.NoIndex.
func (pp *PrettyPrint) Nodes(nodes []*node.Node, selected int, fallbackIcon string) {
	if len(nodes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.Writer(), " none\n\n")
		return
	}

	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	faint := color.New(color.Faint)
	hi := color.New(color.Bold, color.FgHiCyan)

	tbl := uitable.New()
	tbl.Separator = "  "
	for i, n := range nodes {
		marker := " "
		name := n.Name
		if i == selected {
			marker = hi.Sprint("»")
			name = hi.Sprint(n.Name)
		}
		icon := n.Icon
		if icon == "" {
			icon = fallbackIcon
		}
		children := ""
		if n.HasChildren() {
			children = faint.Sprintf("▸ %d", len(n.Modules))
		}
		row := []interface{}{marker + strconv.Itoa(i), icon, name, faint.Sprint(n.Type), children}
		if pp.ShowID {
			row = append(row, y.Sprint(n.ID))
		}
		tbl.AddRow(row...)
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.Writer(), tbl)
	pp.NewLine()
}

// Detail prints one node with its description rendered and wrapped.
func (pp *PrettyPrint) Detail(n *node.Node) {
	if n == nil {
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	icon := n.Icon
	if icon == "" {
		icon = node.DefaultIcon
	}
	_, _ = fmt.Fprintf(pp.Writer(), "%s %s", icon, bold.Sprint(n.Name))
	if n.Type != "" {
		_, _ = faint.Fprintf(pp.Writer(), " (%s)", n.Type)
	}
	if pp.ShowID {
		_, _ = faint.Fprintf(pp.Writer(), " %s", n.ID)
	}
	pp.NewLine()

	if img := ImageSummary(n.Image); img != "" {
		_, _ = faint.Fprintln(pp.Writer(), "image: "+img)
	}
	if desc := strings.TrimSpace(n.Description); desc != "" {
		_, _ = fmt.Fprintln(pp.Writer(), wordwrap.String(Markup(desc), pp.width()))
	}
	pp.NewLine()
}

// View prints what the cursor is looking at.
func (pp *PrettyPrint) View(v app.View) {
	if v.State == cursor.Home {
		pp.TitleWithCount("Satellites", len(v.Roots), "satellite")
		pp.Nodes(v.Roots, cursor.NoIndex, node.SatelliteIcon)
		return
	}
	if v.Parent == nil {
		return
	}
	pp.Crumbs(v.Crumbs)
	pp.NewLine()
	pp.Detail(v.Focus())
	pp.TitleWithCount(v.Parent.Name, len(v.Modules), "module")
	selected := v.SelectedIndex
	if v.Context {
		selected = cursor.NoIndex
	}
	pp.Nodes(v.Modules, selected, node.DefaultIcon)
}

// Tree prints roots and every module below them, indented by depth.
func (pp *PrettyPrint) Tree(roots []*node.Node) {
	faint := color.New(color.Faint)
	node.Walk(roots, func(n *node.Node, depth int) bool {
		icon := n.Icon
		if icon == "" {
			icon = node.DefaultIcon
			if depth == 0 {
				icon = node.SatelliteIcon
			}
		}
		line := strings.Repeat("  ", depth) + icon + " " + n.Name
		if pp.ShowID {
			line += " " + faint.Sprint(n.ID)
		}
		_, _ = fmt.Fprintln(pp.Writer(), line)
		return true
	})
}

// Lineage prints the chain from the satellite down to the selection.
func (pp *PrettyPrint) Lineage(nodes []*node.Node) {
	for i, n := range nodes {
		prefix := ""
		if i > 0 {
			prefix = strings.Repeat("  ", i-1) + "└ "
		}
		_, _ = fmt.Fprintf(pp.Writer(), "%s%s %s\n", prefix, n.Icon, n.Name)
	}
}

// Markup turns the light markup used in descriptions (**bold**, *italic*,
// "- " bullets) into terminal styling.
func Markup(text string) string {
	bold := color.New(color.Bold)
	italic := color.New(color.Italic)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(strings.TrimLeft(line, " "), "- "); ok {
			line = "  • " + rest
		}
		line = boldMarkup.ReplaceAllStringFunc(line, func(m string) string {
			return bold.Sprint(boldMarkup.FindStringSubmatch(m)[1])
		})
		line = italicMarkup.ReplaceAllStringFunc(line, func(m string) string {
			return italic.Sprint(italicMarkup.FindStringSubmatch(m)[1])
		})
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// ImageSummary describes an image reference without printing its payload.
func ImageSummary(ref string) string {
	if ref == "" {
		return ""
	}
	if !asset.IsDataURI(ref) {
		return ref
	}
	head, payload, _ := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	kind, _, _ := strings.Cut(head, ";")
	size := len(payload) * 3 / 4
	return fmt.Sprintf("embedded %s, %s", kind, humanBytes(size))
}

func humanBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MiB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KiB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

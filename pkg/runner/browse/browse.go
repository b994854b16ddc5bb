// Package browse is the interactive catalogue browser.
package browse

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mattn/go-isatty"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/satcat/pkg/app"
	"tableflip.dev/satcat/pkg/cursor"
	"tableflip.dev/satcat/pkg/node"
	"tableflip.dev/satcat/pkg/printers"
)

// ErrNoTerminal is returned by Run when stdout is not a terminal.
var ErrNoTerminal = errors.New("browse: stdout is not a terminal")

type mode int

const (
	modeNormal mode = iota
	modeInput
	modeConfirm
	modeHelp
)

const listWidth = 36

// Model is the bubbletea model over a Session.
type Model struct {
	s     *app.Session
	ctx   context.Context
	theme Theme

	mode   mode
	target app.Target
	edit   app.NodeInput
	del    app.DeleteTarget
	prompt string

	// row is the highlighted line of the list on show.
	row   int
	input textinput.Model

	status string
	failed bool

	width  int
	height int
}

// New builds a model. The highlighted row starts on the persisted selection.
func New(ctx context.Context, s *app.Session) Model {
	ti := textinput.New()
	ti.Placeholder = "name"
	ti.CharLimit = 120
	ti.Prompt = "> "

	m := Model{s: s, ctx: ctx, theme: DefaultTheme(), input: ti, width: 100, height: 30}
	if v := s.View(); v.SelectedIndex != cursor.NoIndex {
		m.row = v.SelectedIndex
	}
	return m
}

// Run starts the browser on the terminal.
func Run(ctx context.Context, s *app.Session) error {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return ErrNoTerminal
	}
	p := tea.NewProgram(New(ctx, s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

// rows is the list on show: satellites at home, modules otherwise.
func (m Model) rows() []*node.Node {
	v := m.s.View()
	if v.State == cursor.Home {
		return v.Roots
	}
	return v.Modules
}

func (m Model) highlighted() *node.Node {
	rows := m.rows()
	if m.row < 0 || m.row >= len(rows) {
		return nil
	}
	return rows[m.row]
}

func (m *Model) clamp() {
	n := len(m.rows())
	if m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m *Model) result(ok string, err error) {
	if err != nil {
		m.status = err.Error()
		m.failed = true
		return
	}
	m.status = ok
	m.failed = false
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		case modeHelp:
			m.mode = modeNormal
			return m, nil
		default:
			return m.updateNormal(msg)
		}
	}
	return m, nil
}

func (m Model) updateNormal(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	v := m.s.View()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
	case "j", "down":
		if m.row < len(m.rows())-1 {
			m.row++
		}
	case "k", "up":
		if m.row > 0 {
			m.row--
		}
	case "g":
		m.row = 0
	case "G":
		m.row = len(m.rows()) - 1
		m.clamp()
	case "enter", "l", "right":
		m.open(v)
	case " ", "space", "s":
		if v.State == cursor.Home {
			m.open(v)
			break
		}
		_, err := m.s.Select(m.ctx, m.row)
		m.result("", err)
	case "h", "left", "esc", "backspace":
		_, err := m.s.Up(m.ctx)
		m.result("", err)
		m.row = 0
		if after := m.s.View(); after.SelectedIndex != cursor.NoIndex {
			m.row = after.SelectedIndex
		}
		m.clamp()
	case "a":
		if v.State == cursor.Home {
			return m.ask(app.TargetNewRoot, app.NodeInput{}, "New satellite")
		}
		return m.ask(app.TargetNewModule, app.NodeInput{}, "New module")
	case "A":
		if v.Selected == nil {
			m.result("", app.ErrNoSelection)
			break
		}
		return m.ask(app.TargetNewSubcomponent, app.NodeInput{}, fmt.Sprintf("New sub-component of %s", v.Selected.Name))
	case "e":
		switch {
		case v.Selected != nil:
			return m.ask(app.TargetSelected, app.InputFrom(v.Selected), fmt.Sprintf("Rename %s", v.Selected.Name))
		case v.Root != nil:
			return m.ask(app.TargetRoot, app.InputFrom(v.Root), fmt.Sprintf("Rename %s", v.Root.Name))
		default:
			m.result("", cursor.ErrNoRoot)
		}
	case "d", "x":
		switch {
		case v.Selected != nil:
			m.del = app.DeleteSelected
			m.prompt = fmt.Sprintf("Delete %q and all sub-modules? [y/N]", v.Selected.Name)
			m.mode = modeConfirm
		case v.Root != nil:
			m.del = app.DeleteRoot
			m.prompt = fmt.Sprintf("Delete %q and all its modules? [y/N]", v.Root.Name)
			m.mode = modeConfirm
		default:
			m.result("", cursor.ErrNoRoot)
		}
	case "u":
		_, err := m.s.Deselect(m.ctx)
		m.result("", err)
	case "r":
		m.result("Reloaded", m.s.Reload(m.ctx))
		m.clamp()
	}
	return m, nil
}

// open enters the highlighted satellite, drills into a module with modules,
// or selects a leaf.
func (m *Model) open(v app.View) {
	target := m.highlighted()
	if target == nil {
		return
	}
	var err error
	switch {
	case v.State == cursor.Home:
		_, err = m.s.EnterRoot(m.ctx, m.row)
		m.row = 0
	case target.HasChildren():
		_, err = m.s.DrillInto(m.ctx, m.row)
		m.row = 0
	default:
		_, err = m.s.Select(m.ctx, m.row)
	}
	m.result("", err)
}

func (m Model) ask(target app.Target, current app.NodeInput, prompt string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.target = target
	m.edit = current
	m.prompt = prompt
	m.input.Reset()
	m.input.SetValue(current.Name)
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) updateInput(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		in := m.edit
		in.Name = strings.TrimSpace(m.input.Value())
		v, err := m.s.Save(m.ctx, m.target, in)
		if err != nil {
			m.result("", err)
			return m, nil
		}
		m.result(fmt.Sprintf("Saved %s", m.target), nil)
		m.leaveInput()
		switch m.target {
		case app.TargetNewRoot:
			m.row = len(v.Roots) - 1
		case app.TargetNewModule:
			m.row = len(v.Modules) - 1
		}
		m.clamp()
		return m, nil
	case "esc":
		m.leaveInput()
		m.result("Cancelled", nil)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) leaveInput() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

func (m Model) updateConfirm(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	m.mode = modeNormal
	switch msg.String() {
	case "y", "Y":
		_, err := m.s.Delete(m.ctx, m.del)
		m.result("Deleted", err)
		m.clamp()
	default:
		m.result("Nothing deleted", nil)
	}
	return m, nil
}

func (m Model) View() string {
	v := m.s.View()

	var header string
	if v.State == cursor.Home {
		header = m.theme.Crumb.Render("Satellites")
	} else {
		names := make([]string, 0, len(v.Crumbs))
		for _, c := range v.Crumbs {
			names = append(names, c.Name)
		}
		header = m.theme.Crumb.Render(strings.Join(names, " › "))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.theme.Panel.Width(listWidth).Render(m.list(v)),
		m.theme.Panel.Width(m.detailWidth()).Render(m.detail()),
	)

	var footer string
	switch m.mode {
	case modeInput:
		footer = m.prompt + "\n" + m.input.View()
	case modeConfirm:
		footer = m.prompt
	case modeHelp:
		footer = m.theme.Help.Render(helpText)
	default:
		style := m.theme.Status
		if m.failed {
			style = m.theme.Error
		}
		status := m.status
		if status == "" {
			status = "? for help"
		}
		footer = style.Render(fmt.Sprintf("[%s] %s", v.State, status))
	}
	return header + "\n" + body + "\n" + footer
}

func (m Model) detailWidth() int {
	w := m.width - listWidth - 8
	if w < 20 {
		w = 20
	}
	return w
}

func (m Model) list(v app.View) string {
	rows := m.rows()
	if len(rows) == 0 {
		return m.theme.Status.Render("(empty)")
	}
	fallback := node.DefaultIcon
	if v.State == cursor.Home {
		fallback = node.SatelliteIcon
	}
	var b strings.Builder
	for i, n := range rows {
		marker := "  "
		if !v.Context && i == v.SelectedIndex {
			marker = "* "
		}
		icon := n.Icon
		if icon == "" {
			icon = fallback
		}
		line := fmt.Sprintf("%s%s %s", marker, icon, n.Name)
		if n.HasChildren() {
			line += fmt.Sprintf(" ▸ %d", len(n.Modules))
		}
		line = truncate.StringWithTail(line, listWidth-2, "…")
		if i == m.row {
			b.WriteString(m.theme.Highlight.Render(line))
		} else {
			b.WriteString(m.theme.Row.Render(line))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) detail() string {
	n := m.highlighted()
	if n == nil {
		n = m.s.View().Focus()
	}
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	pp := printers.PrettyPrint{Width: m.detailWidth() - 2, Out: &buf}
	pp.Detail(n)
	return strings.TrimRight(buf.String(), "\n")
}

const helpText = `j/k move  enter open  space select  h back  u deselect
a add  A add sub-component  e rename  d delete  r reload  q quit`

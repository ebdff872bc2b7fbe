package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/iw2rmb/chisel/editor"
	"github.com/iw2rmb/chisel/expr"
	"github.com/iw2rmb/chisel/internal/grapheme"
	"github.com/iw2rmb/chisel/token"
)

type keyMap struct {
	Quit     key.Binding
	Copy     key.Binding
	Cut      key.Binding
	Paste    key.Binding
	RowAbove key.Binding
	RowBelow key.Binding
	Select   key.Binding
	AcNext   key.Binding
	AcPrev   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Copy:     key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
		Cut:      key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "cut")),
		Paste:    key.NewBinding(key.WithKeys("ctrl+v"), key.WithHelp("ctrl+v", "paste")),
		RowAbove: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "row above")),
		RowBelow: key.NewBinding(key.WithKeys("ctrl+j"), key.WithHelp("ctrl+j", "row below")),
		Select:   key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "select node")),
		AcNext:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "next suggestion")),
		AcPrev:   key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "prev suggestion")),
	}
}

// systemClipboard adapts the OS clipboard to the editor's interface.
type systemClipboard struct{}

func (systemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (systemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

type model struct {
	engine  *editor.Engine
	tree    expr.Expr
	cs      editor.CursorState
	payload editor.Payload
	clip    editor.Clipboard

	keys   keyMap
	styles styleSet
	width  int
	status string
}

func newModel(theme Theme) model {
	g := expr.NewGen()
	e := editor.NewEngine(editor.Config{
		IDs:      g,
		Provider: catalogProvider{},
		Params:   catalogParams,
	})
	return model{
		engine: e,
		tree:   sampleTree(g),
		clip:   systemClipboard{},
		keys:   defaultKeyMap(),
		styles: newStyles(theme),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Copy):
			if p, ok := m.engine.Copy(m.tree, m.cs); ok {
				m.payload = p
				_ = m.clip.WriteText(p.Text)
				m.status = "copied"
			}

		case key.Matches(msg, m.keys.Cut):
			var p editor.Payload
			p, m.tree, m.cs = m.engine.Cut(m.tree, m.cs)
			if p.Expr != nil {
				m.payload = p
				_ = m.clip.WriteText(p.Text)
				m.status = "cut"
			}

		case key.Matches(msg, m.keys.Paste):
			p := m.payload
			if text, err := m.clip.ReadText(); err == nil && text != p.Text {
				// Clipboard changed since our copy: treat as foreign text.
				p = editor.Payload{Text: text}
			}
			m.tree, m.cs = m.engine.PasteInto(m.tree, m.cs, p)
			m.status = "pasted"

		case key.Matches(msg, m.keys.RowAbove):
			m.tree, m.cs = m.engine.InsertRowAbove(m.tree, m.cs)

		case key.Matches(msg, m.keys.RowBelow):
			m.tree, m.cs = m.engine.InsertRowBelow(m.tree, m.cs)

		case key.Matches(msg, m.keys.Select):
			m.cs = m.engine.SelectNode(m.tree, m.cs)

		case key.Matches(msg, m.keys.AcNext):
			m.cs = m.engine.MoveAutocomplete(m.tree, m.cs, 1)

		case key.Matches(msg, m.keys.AcPrev):
			m.cs = m.engine.MoveAutocomplete(m.tree, m.cs, -1)

		default:
			for _, ev := range eventsFor(msg) {
				m.tree, m.cs = m.engine.Dispatch(m.tree, m.cs, ev)
			}
			m.status = ""
		}
	}
	return m, nil
}

// eventsFor maps a terminal key to edit-engine events.
func eventsFor(msg tea.KeyMsg) []editor.Event {
	ext := func(k editor.EventKind) []editor.Event {
		return []editor.Event{{Kind: k, Extend: true}}
	}
	switch msg.String() {
	case "left":
		return []editor.Event{editor.Key(editor.EventLeft)}
	case "right":
		return []editor.Event{editor.Key(editor.EventRight)}
	case "up":
		return []editor.Event{editor.Key(editor.EventUp)}
	case "down":
		return []editor.Event{editor.Key(editor.EventDown)}
	case "shift+left":
		return ext(editor.EventLeft)
	case "shift+right":
		return ext(editor.EventRight)
	case "shift+up":
		return ext(editor.EventUp)
	case "shift+down":
		return ext(editor.EventDown)
	case "home":
		return []editor.Event{editor.Key(editor.EventHome)}
	case "end":
		return []editor.Event{editor.Key(editor.EventEnd)}
	case "backspace":
		return []editor.Event{editor.Key(editor.EventBackspace)}
	case "delete":
		return []editor.Event{editor.Key(editor.EventDelete)}
	case "enter":
		return []editor.Event{editor.Key(editor.EventEnter)}
	case "tab":
		return []editor.Event{editor.Key(editor.EventTab)}
	case "shift+tab":
		return []editor.Event{editor.Key(editor.EventShiftTab)}
	}
	var evs []editor.Event
	for _, r := range msg.Runes {
		evs = append(evs, editor.Insert(r))
	}
	return evs
}

func (m model) View() string {
	s := m.engine.Stream(m.tree)
	var b strings.Builder
	b.WriteString(m.renderStream(s))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine(s))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m model) renderStream(s token.Stream) string {
	selStart, selEnd, hasSel := m.cs.Selection()
	var b strings.Builder
	off := 0
	for _, t := range s {
		if t.Kind == token.KindNewline {
			if off == m.cs.Caret {
				b.WriteString(m.styles.cursor.Render(" "))
			}
			b.WriteByte('\n')
			off++
			continue
		}
		st := m.styleFor(t)
		for _, g := range grapheme.Split(t.Text) {
			gs := st
			if hasSel && off >= selStart && off < selEnd {
				gs = m.styles.selection
			}
			if off == m.cs.Caret {
				gs = m.styles.cursor
			}
			b.WriteString(gs.Render(g))
			off++
		}
	}
	if m.cs.Caret >= off {
		b.WriteString(m.styles.cursor.Render(" "))
	}
	return b.String()
}

func (m model) styleFor(t token.Info) lipgloss.Style {
	switch {
	case t.IsBlank():
		return m.styles.blank
	case t.Kind == token.KindPartial || t.Kind == token.KindRightPartial:
		return m.styles.partial
	case t.Kind.IsStringFragment() || t.Kind == token.KindPatternString:
		return m.styles.str
	case t.Kind.IsAtomic():
		return m.styles.keyword
	default:
		return m.styles.literal
	}
}

func (m model) statusLine(s token.Stream) string {
	grid := s.GridFor(m.cs.Caret)
	line := fmt.Sprintf("%d:%d", grid.Row+1, grid.Col+1)
	if m.status != "" {
		line += "  " + m.status
	}
	if diags := m.engine.Diagnostics(); len(diags) > 0 {
		line += fmt.Sprintf("  %d diagnostic(s)", len(diags))
	}
	if m.width > 0 {
		pad := m.width - runewidth.StringWidth(line)
		if pad > 0 {
			line += strings.Repeat(" ", pad)
		}
	}
	return m.styles.status.Render(line)
}

func (m model) helpLine() string {
	help := "type to edit  tab: next blank / commit  enter: commit / new row  " +
		"ctrl+y copy  ctrl+x cut  ctrl+v paste  ctrl+a select  ctrl+n/p suggestions  ctrl+c quit"
	if m.width > 0 {
		help = wordwrap.String(help, m.width)
	}
	return m.styles.status.Render(help)
}

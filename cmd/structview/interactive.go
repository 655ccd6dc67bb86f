package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rawview/rawview/bind"
	"github.com/rawview/rawview/memsource"
	"github.com/rawview/rawview/view"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type editorState int

const (
	stateSelectField editorState = iota
	stateEditField
)

type fieldRow struct {
	field    *bind.Field
	editable bool
}

type editorModel struct {
	err      error
	filename string
	base     uint64
	src      *memsource.BufferSource
	player   *Player
	rows     []fieldRow
	input    textinput.Model
	selected int
	state    editorState
	status   string
	dirty    bool
}

func newEditorModel(filename string, base uint64) *editorModel {
	return &editorModel{filename: filename, base: base, state: stateSelectField}
}

type loadedMsg struct {
	err    error
	src    *memsource.BufferSource
	player *Player
}

func (m *editorModel) Init() tea.Cmd {
	return m.loadSnapshot
}

func (m *editorModel) loadSnapshot() tea.Msg {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	src := memsource.NewBufferSource(0, data)

	snapshot, err := memsource.Fetch(src, m.base, nil, playerLayout.Size)
	if err != nil {
		return loadedMsg{err: err}
	}

	p := &Player{}
	if err := view.Attach(p, view.WithSource(src), view.WithBase(m.base)); err != nil {
		return loadedMsg{err: err}
	}
	if err := p.SetModel(snapshot); err != nil {
		return loadedMsg{err: err}
	}

	return loadedMsg{src: src, player: p}
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state == stateSelectField {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectField && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectField && m.selected < len(m.rows)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectField:
				row := m.rows[m.selected]
				if !row.editable {
					m.status = "field is not directly editable"
					return m, nil
				}
				m.prepareInput(row)
				m.state = stateEditField

			case stateEditField:
				if err := m.applyInput(); err != nil {
					m.status = errorStyle.Render(err.Error())
				} else {
					m.status = "edited " + m.rows[m.selected].field.Name
					m.dirty = true
				}
				m.state = stateSelectField
			}

		case "s":
			if m.state == stateSelectField {
				m.save()
			}

		case "esc":
			if m.state == stateEditField {
				m.state = stateSelectField
				m.status = ""
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.src = msg.src
		m.player = msg.player
		for _, f := range playerLayout.Fields() {
			m.rows = append(m.rows, fieldRow{
				field:    f,
				editable: f.Nested == nil && len(f.Steps) == 0,
			})
		}
	}

	if m.state == stateEditField {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *editorModel) prepareInput(row fieldRow) {
	window := m.player.ModelBytes()[row.field.Offset : row.field.Offset+row.field.WireSize()]
	ti := textinput.New()
	ti.Prompt = row.field.Name + ": "
	ti.Placeholder = row.field.Kind.String()
	ti.SetValue(strings.Trim(formatValue(row.field.Marshaler.Decode(window)), `"`))
	ti.Width = 40
	ti.Focus()
	m.input = ti
	m.status = ""
}

func (m *editorModel) applyInput() error {
	return applyEdit(m.player, m.rows[m.selected].field.Name, m.input.Value())
}

func (m *editorModel) save() {
	if err := memsource.Commit(m.src, m.base, nil, m.player.ModelBytes()); err != nil {
		m.status = errorStyle.Render("commit: " + err.Error())
		return
	}
	if err := os.WriteFile(m.filename, m.src.Bytes(), 0644); err != nil {
		m.status = errorStyle.Render("save: " + err.Error())
		return
	}
	m.status = "saved " + m.filename
	m.dirty = false
}

func (m *editorModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if m.player == nil {
		return "Loading snapshot..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Struct Viewer"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	if m.dirty {
		b.WriteString(" *")
	}
	b.WriteString("\n\n")

	model := m.player.ModelBytes()
	for i, row := range m.rows {
		line := m.formatRow(row, model)
		if i == m.selected && m.state == stateSelectField {
			b.WriteString(selectedStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if m.state == stateEditField {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter apply • esc cancel"))
	} else {
		if m.status != "" {
			b.WriteString("\n")
			b.WriteString(m.status)
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter edit • s save • q quit"))
	}

	return b.String()
}

func (m *editorModel) formatRow(row fieldRow, model []byte) string {
	f := row.field
	head := fmt.Sprintf("%s @%#04x ", fieldStyle.Render(fmt.Sprintf("%-8s", f.Name)), f.Offset)
	switch {
	case f.Nested != nil:
		return head + typeStyle.Render(f.Nested.Name)
	case len(f.Steps) > 0:
		return head + typeStyle.Render(f.Kind.String()) + helpStyle.Render(fmt.Sprintf(" indirect %v", f.Steps))
	default:
		window := model[f.Offset : f.Offset+f.WireSize()]
		return head + typeStyle.Render(fmt.Sprintf("%-6s", f.Kind)) +
			" = " + valueStyle.Render(formatValue(f.Marshaler.Decode(window)))
	}
}

func runInteractive(filename string, base uint64) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("interactive mode requires a terminal")
	}
	p := tea.NewProgram(newEditorModel(filename, base), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

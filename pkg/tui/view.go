package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"scout/pkg/websearch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212")).
			MarginBottom(1)

	labelStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	focusedLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	valueStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	selectedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("84"))
	optCursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Underline(true)
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View renders the settings panel.
func (p Panel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Web Search Settings"))
	b.WriteString("\n")

	if p.err != nil {
		b.WriteString(errStyle.Render("error: " + p.err.Error()))
		b.WriteString("\n\n")
	}

	if p.snap == nil {
		b.WriteString(valueStyle.Render("Loading settings..."))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	for i, r := range p.rows {
		focused := i == p.cursor
		b.WriteString(p.renderRow(r, focused))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(p.helpLine()))
	return b.String()
}

func (p Panel) renderRow(r row, focused bool) string {
	marker := "  "
	label := labelStyle.Render(r.label)
	if focused {
		marker = "> "
		label = focusedLabelStyle.Render(r.label)
	}

	switch r.kind {
	case rowRadio:
		return marker + label + "  " + p.renderRadio(r, focused)

	case rowMulti:
		line := marker + label + "  " + valueStyle.Render(p.multiSummary(r))
		if focused {
			line += "\n" + p.renderMultiOptions(r)
		}
		return line

	case rowText:
		value := p.fieldValue(r.key)
		if focused && p.editing {
			return marker + label + "  " + p.input.View()
		}
		display := "(not set)"
		if value != "" {
			display = value
			if r.secret {
				display = maskSecret(value)
			}
		}
		return marker + label + "  " + valueStyle.Render(display)

	case rowNumber:
		if focused && p.editing {
			return marker + label + "  " + p.input.View()
		}
		return marker + label + "  " + valueStyle.Render(p.fieldValue(r.key))
	}

	return marker + label
}

func (p Panel) renderRadio(r row, focused bool) string {
	current := p.fieldValue(r.key)
	parts := make([]string, 0, len(r.options))
	for _, opt := range r.options {
		text := opt.Label
		if opt.Value == current {
			text = selectedStyle.Render("(*) " + text)
		} else {
			text = valueStyle.Render("( ) " + text)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "  ")
}

func (p Panel) renderMultiOptions(r row) string {
	selected := websearch.DecodeSelection(p.fieldValue(r.key), r.defs)

	var b strings.Builder
	for i, opt := range r.options {
		box := "[ ]"
		style := valueStyle
		if websearch.Selected(selected, opt.Value) {
			box = "[x]"
			style = selectedStyle
		}
		text := style.Render(box + " " + opt.Label)
		if i == p.optCursor {
			text = optCursorStyle.Render(box + " " + opt.Label)
		}
		b.WriteString("      " + text + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (p Panel) multiSummary(r row) string {
	selected := websearch.DecodeSelection(p.fieldValue(r.key), r.defs)
	return websearch.SelectionLabel(selected, r.options, "None selected")
}

func (p Panel) helpLine() string {
	if p.editing {
		return "enter save  esc cancel"
	}
	if len(p.rows) > 0 {
		switch p.rows[p.cursor].kind {
		case rowMulti:
			return "j/k move  h/l option  space toggle  q quit"
		case rowText, rowNumber:
			return "j/k move  enter edit  q quit"
		}
	}
	return "j/k move  h/l change  q quit"
}

func maskSecret(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return v[:4] + strings.Repeat("*", 4)
}

package configeditor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

const (
	screenBoxW  = 70
	labelWidth  = 22
	fieldIndent = 2
)

// inputCell renders the active text input padded to width cells.
func (m Model) inputCell(width int) string {
	v := m.textInput.View()
	return v + fieldEditStyle.Render(strings.Repeat(" ", max(0, width-lipgloss.Width(v))))
}

// viewSettings renders a General or gametype rules screen.
func (m Model) viewSettings() string {
	valueW := screenBoxW - fieldIndent - labelWidth - 3
	blank := menuItemStyle.Render(strings.Repeat(" ", screenBoxW))

	rows := []string{blank}
	end := min(len(m.fields), m.fieldScroll+m.fieldsVisible())
	for i := m.fieldScroll; i < end; i++ {
		f := m.fields[i]
		label := fieldLabelStyle.Render(strings.Repeat(" ", fieldIndent) + padLeft(f.Label, labelWidth) + " : ")
		var value string
		switch {
		case i == m.editField && m.mode == modeFieldInput:
			value = m.inputCell(valueW)
		case i == m.editField:
			value = fieldEditStyle.Render(padRight(f.Get(), valueW))
		default:
			value = fieldDisplayStyle.Render(padRight(f.Get(), valueW))
		}
		rows = append(rows, label+value)
	}
	if len(m.fields) == 0 {
		rows = append(rows, menuDimStyle.Render(centerText("No settings for this gametype", screenBoxW)))
	}
	rows = append(rows, blank)

	var status string
	if m.editField < len(m.fields) {
		f := m.fields[m.editField]
		status = f.Help
		if f.Key != "" {
			status = fmt.Sprintf("%s  [%s]", f.Help, f.Key)
		}
	}
	help := "Enter Edit  |  PgUp/PgDn Prev/Next Screen  |  ESC Back"
	if m.mode == modeFieldInput {
		help = "Enter Accept  |  ESC Cancel"
	}
	return m.renderScreen(m.screenTitle, screenBoxW, rows, status, help)
}

// listRows renders rows [listScroll, listScroll+visible) of n list items
// via render, highlighting the cursor.
func (m Model) listRows(n int, render func(i int) string) []string {
	var rows []string
	end := min(n, m.listScroll+m.listVisible())
	for i := m.listScroll; i < end; i++ {
		content := padRight(render(i), screenBoxW)
		if i == m.listCursor {
			rows = append(rows, menuHighlightStyle.Render(content))
		} else {
			rows = append(rows, menuItemStyle.Render(content))
		}
	}
	return rows
}

// promptRow renders a label followed by the active text input.
func (m Model) promptRow(label string) string {
	label = "  " + label + " "
	return fieldLabelStyle.Render(label) + m.inputCell(screenBoxW-lipgloss.Width(label))
}

// viewCustomList renders the custom dvar list.
func (m Model) viewCustomList() string {
	custom := m.sess.Custom()
	header := menuHeaderStyle.Render(padRight(fmt.Sprintf("  %-28s %s", "Name", "Value"), screenBoxW))
	rows := []string{header}
	rows = append(rows, m.listRows(len(custom), func(i int) string {
		return fmt.Sprintf("  %-28s %s", custom[i].Key, custom[i].Value)
	})...)
	if len(custom) == 0 {
		rows = append(rows, menuDimStyle.Render(centerText("No custom dvars (I to add)", screenBoxW)))
	}

	if m.mode == modeCustomInput {
		rows = append(rows, menuBorderStyle.Render(strings.Repeat("─", screenBoxW)))
		if m.customStage == 0 {
			rows = append(rows, m.promptRow("DVar name :"))
		} else {
			rows = append(rows, m.promptRow(fmt.Sprintf("Value for %s :", m.customKey)))
		}
	}

	help := "I Insert  |  Enter/E Edit  |  D Delete  |  ESC Back"
	if m.mode == modeCustomInput {
		help = "Enter Accept  |  ESC Cancel"
	}
	title := fmt.Sprintf("Custom DVars (%d)", len(custom))
	return m.renderScreen(title, screenBoxW, rows, "Written after the generated settings block", help)
}

// viewRotationList renders the map rotation.
func (m Model) viewRotationList() string {
	rot := m.sess.Rotation()
	header := menuHeaderStyle.Render(padRight(fmt.Sprintf("  %3s  %-5s %-30s %s", "#", "Mode", "Map", "Code"), screenBoxW))
	rows := []string{header}
	rows = append(rows, m.listRows(len(rot), func(i int) string {
		e := rot[i]
		return fmt.Sprintf("  %3d. %-5s %-30s %s", i+1, rotation.GametypeLabel(e.Gametype), m.sess.DisplayName(e.Map), e.Map)
	})...)
	if len(rot) == 0 {
		rows = append(rows, menuDimStyle.Render(centerText("Rotation is empty (A to add, R to randomize)", screenBoxW)))
	}

	if m.mode == modeRandomCount {
		rows = append(rows, menuBorderStyle.Render(strings.Repeat("─", screenBoxW)))
		rows = append(rows, m.promptRow(fmt.Sprintf("Number of %s maps (1-%d) :",
			rotation.GametypeLabel(m.pendingGametype), m.randomBound())))
	}

	var status string
	if m.sess.RotationPreserved() {
		status = "Stored rotation could not be read; it is kept until you edit it"
	} else if len(rot) > 0 && m.listCursor < len(rot) {
		status = fmt.Sprintf("%s on %s", rotation.GametypeLabel(rot[m.listCursor].Gametype), m.sess.DisplayName(rot[m.listCursor].Map))
	}

	help := "A Add  |  D Delete  |  -/+ Move  |  R Randomize  |  ESC Back"
	if m.mode == modeRandomCount {
		help = "Enter Accept  |  ESC Cancel"
	}
	title := fmt.Sprintf("Map Rotation - Maps in rotation: %d", len(rot))
	return m.renderScreen(title, screenBoxW, rows, status, help)
}

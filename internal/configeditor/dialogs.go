package configeditor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// overlay draws the dialog lines centered over background, preserving the
// background on both sides of each line.
func (m Model) overlay(background string, dialog []string) string {
	lines := strings.Split(background, "\n")

	dialogW := 0
	for _, dl := range dialog {
		dialogW = max(dialogW, ansi.StringWidth(dl))
	}
	startRow := max(0, (len(lines)-len(dialog))/2)
	startCol := max(0, (m.width-dialogW)/2)

	for i, dl := range dialog {
		row := startRow + i
		if row >= len(lines) {
			break
		}
		left := ansi.Truncate(lines[row], startCol, "")
		if w := ansi.StringWidth(left); w < startCol {
			left += strings.Repeat(" ", startCol-w)
		}
		right := ansi.TruncateLeft(lines[row], startCol+dialogW, "")
		lines[row] = left + dl + right
	}
	return strings.Join(lines, "\n")
}

// boxLines frames body lines of width w with a single-line border.
func boxLines(style lipgloss.Style, w int, body []string) []string {
	side := style.Render("│")
	out := []string{style.Render("┌" + strings.Repeat("─", w) + "┐")}
	for _, b := range body {
		out = append(out, side+b+side)
	}
	return append(out, style.Render("└"+strings.Repeat("─", w)+"┘"))
}

// overlayConfirmDialog renders a Yes/No dialog centered over the background.
func (m Model) overlayConfirmDialog(background, title, question string) string {
	const w = 56

	var yesBtn, noBtn string
	if m.confirmYes {
		yesBtn = buttonActiveStyle.Render(" Yes ")
		noBtn = buttonInactiveStyle.Render(" No ")
	} else {
		yesBtn = buttonInactiveStyle.Render(" Yes ")
		noBtn = buttonActiveStyle.Render(" No ")
	}
	buttons := yesBtn + dialogTextStyle.Render("  ") + noBtn
	btnW := lipgloss.Width(buttons)
	btnPad := (w - btnW) / 2

	empty := dialogTextStyle.Render(strings.Repeat(" ", w))
	body := []string{
		dialogTitleStyle.Render(centerText(title, w)),
		empty,
		dialogTextStyle.Render(centerText(padRight(question, min(w, lipgloss.Width(question))), w)),
		empty,
		dialogTextStyle.Render(strings.Repeat(" ", btnPad)) + buttons +
			dialogTextStyle.Render(strings.Repeat(" ", max(0, w-btnPad-btnW))),
	}
	return m.overlay(background, boxLines(dialogBorderStyle, w, body))
}

// overlayHelpScreen renders the key reference over the background.
func (m Model) overlayHelpScreen(background string) string {
	const w = 52
	text := []string{
		"Enter - Select / Edit",
		"Up/Down - Navigate",
		"PgUp/PgDn - Previous/Next Settings Screen",
		"ESC - Go Back / Cancel Edit",
		"",
		"Custom DVars: I Insert  E Edit  D Delete",
		"Rotation: A Add  D Delete  -/+ Move",
		"          R Randomize",
		"",
		"1-9 Quick Select  S Save  Q Quit",
	}

	body := []string{
		helpTitleStyle.Render(centerText("H2M Configuration Editor Help", w)),
		helpBoxStyle.Render(strings.Repeat(" ", w)),
	}
	for _, t := range text {
		body = append(body, helpBoxStyle.Render(centerText(t, w)))
	}
	body = append(body,
		helpBoxStyle.Render(strings.Repeat(" ", w)),
		helpTitleStyle.Render(centerText("HIT A KEY.", w)),
	)
	return m.overlay(background, boxLines(helpBoxStyle, w, body))
}

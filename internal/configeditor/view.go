package configeditor

import (
	"fmt"
	"path/filepath"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	switch m.mode {
	case modeFieldEdit, modeFieldInput:
		return m.viewSettings()
	case modeCustomList, modeCustomInput:
		return m.viewCustomList()
	case modeRotationList, modeRandomCount:
		return m.viewRotationList()
	case modeLookupPicker:
		return m.viewLookupPicker()
	case modeExitConfirm:
		return m.overlayConfirmDialog(m.viewTopMenu(), "-- Unsaved Changes --",
			"Save changes before exit?")
	case modeSaveConfirm:
		return m.overlayConfirmDialog(m.viewTopMenu(), "-- Save Configuration --",
			"Write changes to "+filepath.Base(m.sess.ConfigPath())+"?")
	case modeDeleteConfirm:
		return m.overlayConfirmDialog(m.viewCustomList(), "-- Delete DVar --",
			"Delete this custom dvar?")
	case modeReloadConfirm:
		return m.overlayConfirmDialog(m.viewMode(m.returnMode), "-- File Changed --",
			"Reload from disk and discard your changes?")
	case modeHelp:
		return m.overlayHelpScreen(m.viewTopMenu())
	}
	return m.viewTopMenu()
}

// viewMode renders the plain screen of mode, used behind overlays.
func (m Model) viewMode(mode editorMode) string {
	m.mode = mode
	switch mode {
	case modeFieldEdit, modeFieldInput:
		return m.viewSettings()
	case modeCustomList, modeCustomInput:
		return m.viewCustomList()
	case modeRotationList, modeRandomCount:
		return m.viewRotationList()
	}
	return m.viewTopMenu()
}

// globalHeaderLine returns the persistent global header shown on every screen.
func (m Model) globalHeaderLine() string {
	title := "-- H2M Server Configuration Editor --"
	if m.sess.Dirty() {
		title = "-- H2M Server Configuration Editor [modified] --"
	}
	return globalHeaderBarStyle.Render(centerText(title, m.width))
}

// renderScreen draws the global header, a box of rows centered on the
// background fill, the flash or status line, and the bottom help bar. Every
// row must already be boxW cells wide.
func (m Model) renderScreen(title string, boxW int, rows []string, status, help string) string {
	var b strings.Builder

	b.WriteString(m.globalHeaderLine())
	b.WriteByte('\n')

	bgLine := bgFillStyle.Render(strings.Repeat(bgFillChar, m.width))

	// Box: top border + title + separator + rows + bottom border.
	// Fixed rows: global header + box + status line + help bar.
	boxH := len(rows) + 4
	extraV := max(0, m.height-boxH-3)
	topPad := extraV / 2
	bottomPad := extraV - topPad

	padL := max(0, (m.width-boxW-2)/2)
	padR := max(0, m.width-padL-boxW-2)
	left := bgFillStyle.Render(strings.Repeat(bgFillChar, padL))
	right := bgFillStyle.Render(strings.Repeat(bgFillChar, padR))
	side := menuBorderStyle.Render("│")

	line := func(s string) {
		b.WriteString(left + s + right)
		b.WriteByte('\n')
	}

	for i := 0; i < topPad; i++ {
		b.WriteString(bgLine)
		b.WriteByte('\n')
	}
	line(menuBorderStyle.Render("┌" + strings.Repeat("─", boxW) + "┐"))
	line(side + menuHeaderStyle.Render(centerText(title, boxW)) + side)
	line(menuBorderStyle.Render("├" + strings.Repeat("─", boxW) + "┤"))
	for _, r := range rows {
		line(side + r + side)
	}
	line(menuBorderStyle.Render("└" + strings.Repeat("─", boxW) + "┘"))

	switch {
	case m.message != "":
		line(flashMessageStyle.Render(padRight(" "+m.message, boxW+2)))
	case status != "":
		line(fieldHelpStyle.Render(padRight(" "+status, boxW+2)))
	default:
		b.WriteString(bgLine)
		b.WriteByte('\n')
	}

	for i := 0; i < bottomPad; i++ {
		b.WriteString(bgLine)
		b.WriteByte('\n')
	}

	b.WriteString(helpBarStyle.Render(centerText(help, m.width)))
	return b.String()
}

// viewTopMenu renders the top-level menu.
func (m Model) viewTopMenu() string {
	const boxW = 42
	blank := menuItemStyle.Render(strings.Repeat(" ", boxW))

	rows := []string{blank}
	for i, item := range m.topItems {
		content := padRight(fmt.Sprintf("  %s. %s", item.Key, item.Label), boxW)
		if i == m.topCursor {
			rows = append(rows, menuHighlightStyle.Render(content))
		} else {
			rows = append(rows, menuItemStyle.Render(content))
		}
	}
	rows = append(rows, blank)

	status := fmt.Sprintf("%s  |  %d maps in rotation  |  %d custom dvars",
		filepath.Base(m.sess.ConfigPath()), m.sess.MapCount(), len(m.sess.Custom()))
	return m.renderScreen("H2M Server Configuration", boxW, rows, status,
		"F1/? Help  |  S Save  |  ESC/Q Quit")
}

package configeditor

import (
	"fmt"
	"strings"
)

// viewLookupPicker renders the lookup picker popup over the screen it was
// opened from.
func (m Model) viewLookupPicker() string {
	background := m.viewMode(m.pickerReturnMode)

	const w = 50
	total := len(m.pickerItems)
	body := []string{menuHeaderStyle.Render(centerText(m.pickerTitle, w))}
	body = append(body, menuBorderStyle.Render(strings.Repeat("─", w)))

	end := min(total, m.pickerScroll+pickerVisibleRows)
	for i := m.pickerScroll; i < end; i++ {
		content := padRight(" "+m.pickerItems[i].Display, w)
		if i == m.pickerCursor {
			body = append(body, menuHighlightStyle.Render(content))
		} else {
			body = append(body, menuItemStyle.Render(content))
		}
	}
	if total == 0 {
		body = append(body, menuDimStyle.Render(centerText("Nothing to choose", w)))
	}

	footer := "Enter Select  |  ESC Cancel"
	if total > pickerVisibleRows {
		footer = fmt.Sprintf("%d/%d  |  %s", m.pickerCursor+1, total, footer)
	}
	body = append(body, menuDimStyle.Render(centerText(footer, w)))

	return m.overlay(background, boxLines(menuBorderStyle, w, body))
}

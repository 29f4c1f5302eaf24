package configeditor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// fieldType defines the edit behavior for a field.
type fieldType int

const (
	ftString fieldType = iota // Free-text string input
	ftNumber                  // Numeric input (integer or decimal)
	ftLookup                  // Lookup picker (select from list)
)

// LookupItem represents a selectable item in a lookup picker.
type LookupItem struct {
	Value   string // value handed to the selection handler
	Display string // shown in the picker list
}

// fieldDef defines a single editable field on a settings screen.
type fieldDef struct {
	Label       string    // Display label
	Key         string    // dvar name, empty for derived fields
	Help        string    // 1-line help text shown when field is active
	Type        fieldType // Edit type
	Width       int       // Input field width
	Get         func() string
	Set         func(val string) error
	LookupItems func() []LookupItem // provider for ftLookup
}

// padRight pads s with spaces to width cells, truncating if longer.
func padRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// padLeft pads s on the left to width cells.
func padLeft(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return truncate(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}

// truncate cuts plain text to width cells.
func truncate(s string, width int) string {
	var b strings.Builder
	n := 0
	for _, r := range s {
		rw := lipgloss.Width(string(r))
		if n+rw > width {
			break
		}
		b.WriteRune(r)
		n += rw
	}
	return b.String()
}

// centerText centers s within width cells.
func centerText(s string, width int) string {
	vis := lipgloss.Width(s)
	if vis >= width {
		return s
	}
	pad := (width - vis) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-pad-vis)
}

// isNumberRune reports whether r may appear in a numeric field.
func isNumberRune(r rune) bool {
	return (r >= '0' && r <= '9') || r == '.' || r == '-'
}

package configeditor

import (
	"github.com/charmbracelet/lipgloss"
)

// DOS CGA color palette mapped to ANSI 256-color indices.
var dosColors = [16]string{
	"0",  // 0:  Black
	"4",  // 1:  Blue
	"2",  // 2:  Green
	"6",  // 3:  Cyan
	"1",  // 4:  Red
	"5",  // 5:  Magenta
	"3",  // 6:  Brown
	"7",  // 7:  Light Gray
	"8",  // 8:  Dark Gray
	"12", // 9:  Light Blue
	"10", // 10: Light Green
	"14", // 11: Light Cyan
	"9",  // 12: Light Red
	"13", // 13: Light Magenta
	"11", // 14: Yellow
	"15", // 15: White
}

// dosColor creates a lipgloss style from a DOS background (0-7) and
// foreground (0-15) pair.
func dosColor(bg, fg int) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(dosColors[fg&0x0F])).
		Background(lipgloss.Color(dosColors[bg&0x07]))
}

var (
	globalHeaderBarStyle = dosColor(0, 15).Bold(true).Background(lipgloss.Color("8"))
	helpBarStyle         = dosColor(0, 15).Bold(true).Background(lipgloss.Color("8"))

	bgFillStyle = dosColor(1, 7)

	menuBorderStyle    = dosColor(1, 9)
	menuHeaderStyle    = dosColor(1, 14)
	menuItemStyle      = dosColor(1, 15)
	menuHighlightStyle = dosColor(0, 14)
	menuDimStyle       = dosColor(1, 7)

	fieldLabelStyle   = dosColor(1, 15)
	fieldDisplayStyle = dosColor(1, 14)
	fieldEditStyle    = dosColor(0, 14)

	flashMessageStyle = dosColor(1, 14).Bold(true)
	fieldHelpStyle    = dosColor(1, 11)

	dialogBorderStyle = dosColor(5, 15)
	dialogTitleStyle  = dosColor(5, 15).Bold(true)
	dialogTextStyle   = dosColor(5, 14)

	buttonActiveStyle   = dosColor(0, 15).Bold(true)
	buttonInactiveStyle = dosColor(5, 15)

	helpBoxStyle   = dosColor(4, 15)
	helpTitleStyle = dosColor(4, 14)
)

// bgFillChar fills the desktop behind the boxes.
const bgFillChar = "░"

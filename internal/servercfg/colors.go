package servercfg

import "regexp"

// HostColor is a colour prefix for sv_hostname.
type HostColor struct {
	Name string
	Code string
}

// HostColors lists the colour codes the engine understands.
var HostColors = []HostColor{
	{"No Color", ""},
	{"Red", "^1"},
	{"Green", "^2"},
	{"Yellow", "^3"},
	{"Blue", "^4"},
	{"Cyan", "^5"},
	{"Pink", "^6"},
	{"White", "^7"},
	{"Team Color", "^8"},
	{"Dark Red", "^9"},
	{"Black", "^0"},
	{"Rainbow", "^:"},
}

var colorCodeRe = regexp.MustCompile(`\^[0-9:]`)

// StripColors removes every colour code from name.
func StripColors(name string) string {
	return colorCodeRe.ReplaceAllString(name, "")
}

// ApplyHostColor strips existing colour codes from name and prefixes the
// code of the named colour. Unknown colour names behave like "No Color".
func ApplyHostColor(name, color string) string {
	clean := StripColors(name)
	for _, c := range HostColors {
		if c.Name == color {
			return c.Code + clean
		}
	}
	return clean
}

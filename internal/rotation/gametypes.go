package rotation

// Gametype describes one of the engine's stock game modes.
type Gametype struct {
	Code  string // token used in sv_maprotation and scr_<code>_* keys
	Label string // short name shown in the editor
}

// Gametypes lists the supported modes in menu order.
var Gametypes = []Gametype{
	{"dm", "FFA"},
	{"war", "TDM"},
	{"conf", "KC"},
	{"dom", "DOM"},
	{"sd", "S&D"},
	{"sab", "SAB"},
}

// IsGametype reports whether code is one of Gametypes.
func IsGametype(code string) bool {
	for _, g := range Gametypes {
		if g.Code == code {
			return true
		}
	}
	return false
}

// GametypeLabel returns the label for code, or code when it is unknown.
func GametypeLabel(code string) string {
	for _, g := range Gametypes {
		if g.Code == code {
			return g.Label
		}
	}
	return code
}

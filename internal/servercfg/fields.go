package servercfg

import (
	"fmt"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

// Field is a recognized setting exposed as a form field.
type Field struct {
	Label string
	Key   string
	Help  string
}

// GeneralFields are the server-wide settings on the General screen.
var GeneralFields = []Field{
	{"Server Name", "sv_hostname", "Name shown in the server browser (^N colour codes allowed)"},
	{"Password", "g_password", "Join password, empty for a public server"},
	{"Max Clients", "sv_maxclients", "Maximum number of connected players"},
	{"Timeout", "sv_timeout", "Seconds before a silent client is dropped"},
	{"Inactivity Kick", "g_inactivity", "Seconds of inactivity before a player is kicked"},
	{"RCON Password", "rcon_password", "Remote console password"},
}

// GametypeFields returns the rule fields for one gametype. Rules the
// template has no line for are left out since they could not be saved.
func GametypeFields(gametype string) []Field {
	key := func(s string) string { return fmt.Sprintf("scr_%s_%s", gametype, s) }
	label := rotation.GametypeLabel(gametype)
	all := []Field{
		{"Score Limit", key("scorelimit"), label + " score needed to win (0 = none)"},
		{"Time Limit", key("timelimit"), label + " minutes per round (0 = none)"},
		{"Player Respawn Delay", key("playerrespawndelay"), "Seconds before a player respawns"},
		{"Number of Lives", key("numlives"), "Lives per player per round (0 = unlimited)"},
		{"Round Limit", key("roundlimit"), "Rounds per match"},
		{"Win Limit", key("winlimit"), "Round wins needed to take the match"},
	}
	out := all[:0]
	for _, f := range all {
		if IsTemplateKey(f.Key) {
			out = append(out, f)
		}
	}
	return out
}

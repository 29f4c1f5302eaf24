package servercfg

import "strings"

// Sentinel separates the template-managed settings from the custom dvars
// appended by the editor.
const Sentinel = "// CUSTOM DVARS H2M CFG EDITOR //"

// RotationKey holds the map rotation token stream.
const RotationKey = "sv_maprotation"

// TemplateVersion identifies the revision of DefaultTemplate.
const TemplateVersion = 1

// DefaultTemplate is the canonical server.cfg skeleton. It fixes key order,
// every recognized key's default, and the comment furniture written on save.
const DefaultTemplate = `
/////////////////////////////////////////////////////////////////////////
//  Call of duty: Modern Warfare Remastered MP Dedicated Server Config //
//                              H1-MOD                                 //
/////////////////////////////////////////////////////////////////////////

set sv_hostname "CHANGE ME - COLORS --->"
set g_password ""
set sv_maxclients "18"
set sv_timeout "20"
set sv_reconnectlimit "3"
set g_inactivity "420"
set sv_kickBanTime "3600"
seta g_allowVote "1"
seta g_deadChat "0"

seta sv_privateClients 0
seta sv_privatePassword ""

set logfile "2"
set g_logSync "1"
set g_log "logs\games_mp.log"
set rcon_password "CHANGEME"
set sv_sayName "^7Server^7"

set scr_dm_scorelimit "1500"
set scr_dm_timelimit "10"
set scr_dm_playerrespawndelay "0"
set scr_dm_numlives "0"
set scr_dm_roundlimit "1"
set scr_dm_winlimit "1"

set scr_war_scorelimit "7500"
set scr_war_timelimit "10"
set scr_war_playerrespawndelay "0"
set scr_war_waverespawndelay "0"
set scr_war_numlives "0"
set scr_war_roundlimit "1"
set scr_war_winlimit "1"

set scr_conf_scorelimit "7500"
set scr_conf_timelimit "10"
set scr_conf_playerrespawndelay "0"
set scr_conf_waverespawndelay "0"
set scr_conf_numlives "0"
set scr_conf_roundlimit "1"
set scr_conf_winlimit "1"

set scr_dom_scorelimit "200"
set scr_dom_timelimit "0"
set scr_dom_playerrespawndelay "0"
set scr_dom_waverespawndelay "0"
set scr_dom_numlives "0"
set scr_dom_roundlimit "1"
set scr_dom_winlimit "1"

set scr_sd_scorelimit "1"
set scr_sd_timelimit "2.5"
set scr_sd_playerrespawndelay "0"
set scr_sd_waverespawndelay "0"
set scr_sd_numlives "1"
set scr_sd_roundlimit "0"
set scr_sd_winlimit "4"
set scr_sd_roundswitch "3"
set scr_sd_bombtimer "45"
set scr_sd_defusetime "5"
set scr_sd_multibomb "0"
set scr_sd_planttime "5"

set scr_sab_scorelimit "0"
set scr_sab_timelimit "20"
set scr_sab_bombtimer "30"
set scr_sab_defusetime "5"
set scr_sab_hotpotato "0"
set scr_sab_numlives "0"
set scr_sab_planttime "2.5"
set scr_sab_playerrespawndelay "7.5"
set scr_sab_roundlimit "1"
set scr_sab_roundswitch "1"
set scr_sab_waverespawndelay "0"

set g_gametype "dom"
set sv_maprotation "gametype dom map mp_farm map mp_bog map mp_crash map mp_vacant"

// CUSTOM DVARS H2M CFG EDITOR //
`

var (
	templateLines    = strings.Split(DefaultTemplate, "\n")
	templateDefaults = map[string]string{}
	templateKeys     []string
)

func init() {
	for _, line := range templateLines {
		if key, val, ok := parseSetLine(line); ok {
			if _, dup := templateDefaults[key]; !dup {
				templateKeys = append(templateKeys, key)
			}
			templateDefaults[key] = val
		}
	}
}

// IsTemplateKey reports whether key is one of the recognized settings.
func IsTemplateKey(key string) bool {
	_, ok := templateDefaults[key]
	return ok
}

// TemplateDefault returns the template's default for key.
func TemplateDefault(key string) (string, bool) {
	v, ok := templateDefaults[key]
	return v, ok
}

// TemplateKeys returns the recognized keys in template order.
func TemplateKeys() []string {
	out := make([]string, len(templateKeys))
	copy(out, templateKeys)
	return out
}

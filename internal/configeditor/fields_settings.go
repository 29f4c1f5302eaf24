package configeditor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stlalpha/h2mcfg/internal/rotation"
	"github.com/stlalpha/h2mcfg/internal/servercfg"
)

// numericKeys are the general settings edited as numbers.
var numericKeys = map[string]bool{
	"sv_maxclients": true,
	"sv_timeout":    true,
	"g_inactivity":  true,
}

// valueField binds a servercfg field to the session.
func (m Model) valueField(f servercfg.Field, typ fieldType, width int) fieldDef {
	sess := m.sess
	key := f.Key
	return fieldDef{
		Label: f.Label,
		Key:   key,
		Help:  f.Help,
		Type:  typ,
		Width: width,
		Get:   func() string { return sess.Value(key) },
		Set: func(val string) error {
			if typ == ftNumber {
				if _, err := strconv.ParseFloat(val, 64); err != nil {
					return fmt.Errorf("%q is not a number", val)
				}
			}
			return sess.SetValue(key, val)
		},
	}
}

// buildGeneralFields returns the General Settings screen.
func (m Model) buildGeneralFields() []fieldDef {
	var fields []fieldDef
	for _, f := range servercfg.GeneralFields {
		typ, width := ftString, 40
		if numericKeys[f.Key] {
			typ, width = ftNumber, 8
		}
		fields = append(fields, m.valueField(f, typ, width))
		if f.Key == "sv_hostname" {
			fields = append(fields, m.hostColorField())
		}
	}
	return fields
}

// hostColorField is a picker that recolours sv_hostname.
func (m Model) hostColorField() fieldDef {
	sess := m.sess
	return fieldDef{
		Label: "Name Color",
		Help:  "Colour prefix applied to the server name",
		Type:  ftLookup,
		Width: 16,
		Get:   func() string { return hostColorName(sess.Value("sv_hostname")) },
		Set: func(val string) error {
			return sess.SetValue("sv_hostname", servercfg.ApplyHostColor(sess.Value("sv_hostname"), val))
		},
		LookupItems: func() []LookupItem {
			items := make([]LookupItem, 0, len(servercfg.HostColors))
			for _, c := range servercfg.HostColors {
				display := c.Name
				if c.Code != "" {
					display = fmt.Sprintf("%-12s %s", c.Name, c.Code)
				}
				items = append(items, LookupItem{Value: c.Name, Display: display})
			}
			return items
		},
	}
}

// hostColorName names the colour code that prefixes name.
func hostColorName(name string) string {
	for _, c := range servercfg.HostColors {
		if c.Code != "" && strings.HasPrefix(name, c.Code) {
			return c.Name
		}
	}
	return servercfg.HostColors[0].Name
}

// buildGametypeFields returns the rules screen for gametype.
func (m Model) buildGametypeFields(gametype string) []fieldDef {
	var fields []fieldDef
	for _, f := range servercfg.GametypeFields(gametype) {
		fields = append(fields, m.valueField(f, ftNumber, 8))
	}
	return fields
}

// gametypeItems lists the gametypes for a picker.
func gametypeItems() []LookupItem {
	items := make([]LookupItem, 0, len(rotation.Gametypes))
	for _, g := range rotation.Gametypes {
		items = append(items, LookupItem{Value: g.Code, Display: fmt.Sprintf("%-4s %s", g.Label, g.Code)})
	}
	return items
}

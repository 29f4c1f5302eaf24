// Package jsonexport converts an editing session to and from a JSON
// document, for scripting and for moving settings between servers.
//
// Layout:
//
//	{
//	  "template_version": 1,
//	  "settings": {"sv_hostname": "...", ...},
//	  "custom":   [{"key": "...", "value": "..."}],
//	  "rotation": [{"gametype": "dom", "map": "mp_farm", "name": "Farm"}]
//	}
package jsonexport

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/stlalpha/h2mcfg/internal/cfgsession"
	"github.com/stlalpha/h2mcfg/internal/rotation"
	"github.com/stlalpha/h2mcfg/internal/servercfg"
)

// ErrInvalidJSON reports input that is not a JSON object.
var ErrInvalidJSON = errors.New("invalid JSON document")

type customJSON struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type rotationJSON struct {
	Gametype string `json:"gametype"`
	Map      string `json:"map"`
	Name     string `json:"name,omitempty"`
}

// pathEscaper escapes gjson/sjson path metacharacters in dvar names.
var pathEscaper = strings.NewReplacer(`\`, `\\`, `.`, `\.`, `*`, `\*`, `?`, `\?`)

// Export renders the session as JSON. Settings appear in template order.
func Export(s *cfgsession.Session) ([]byte, error) {
	data := []byte(`{}`)
	var err error

	if data, err = sjson.SetBytes(data, "template_version", servercfg.TemplateVersion); err != nil {
		return nil, err
	}
	if data, err = sjson.SetRawBytes(data, "settings", []byte(`{}`)); err != nil {
		return nil, err
	}
	values := s.Values()
	for _, key := range servercfg.TemplateKeys() {
		v, ok := values[key]
		if !ok {
			continue
		}
		if data, err = sjson.SetBytes(data, "settings."+pathEscaper.Replace(key), v); err != nil {
			return nil, fmt.Errorf("exporting %s: %w", key, err)
		}
	}

	if data, err = sjson.SetRawBytes(data, "custom", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, c := range s.Custom() {
		if data, err = sjson.SetBytes(data, "custom.-1", customJSON{Key: c.Key, Value: c.Value}); err != nil {
			return nil, fmt.Errorf("exporting custom %s: %w", c.Key, err)
		}
	}

	if data, err = sjson.SetRawBytes(data, "rotation", []byte(`[]`)); err != nil {
		return nil, err
	}
	for _, e := range s.Rotation() {
		entry := rotationJSON{Gametype: e.Gametype, Map: e.Map}
		if name := s.DisplayName(e.Map); name != e.Map {
			entry.Name = name
		}
		if data, err = sjson.SetBytes(data, "rotation.-1", entry); err != nil {
			return nil, fmt.Errorf("exporting rotation: %w", err)
		}
	}
	return data, nil
}

// Import applies a document produced by Export to the session. Settings
// present in the document overwrite the session's; "custom", when present,
// replaces every custom dvar; "rotation", when present, replaces the
// rotation. Nothing is applied if the document is invalid.
func Import(s *cfgsession.Session, data []byte) error {
	if !gjson.ValidBytes(data) || !gjson.ParseBytes(data).IsObject() {
		return ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)

	settings := map[string]string{}
	var order []string
	root.Get("settings").ForEach(func(k, v gjson.Result) bool {
		settings[k.String()] = v.String()
		order = append(order, k.String())
		return true
	})

	for _, k := range order {
		if err := servercfg.ValidateValue(k, settings[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}

	custom := root.Get("custom")
	var customs []customJSON
	var customErr error
	custom.ForEach(func(_, v gjson.Result) bool {
		key, value, err := servercfg.ValidateCustom(v.Get("key").String(), v.Get("value").String())
		if err != nil {
			customErr = fmt.Errorf("custom %q: %w", v.Get("key").String(), err)
			return false
		}
		customs = append(customs, customJSON{Key: key, Value: value})
		return true
	})
	if customErr != nil {
		return customErr
	}

	rot := root.Get("rotation")
	var r rotation.Rotation
	var rotErr error
	rot.ForEach(func(_, v gjson.Result) bool {
		rotErr = r.Append(v.Get("gametype").String(), v.Get("map").String())
		return rotErr == nil
	})
	if rotErr != nil {
		return fmt.Errorf("rotation entry %d: %w", len(r), rotErr)
	}

	for _, k := range order {
		if k == servercfg.RotationKey && rot.Exists() {
			continue
		}
		if err := s.SetValue(k, settings[k]); err != nil {
			return fmt.Errorf("setting %s: %w", k, err)
		}
	}
	if custom.Exists() {
		for _, c := range s.Custom() {
			if err := s.RemoveCustom(c.Key); err != nil {
				return err
			}
		}
		for _, c := range customs {
			if err := s.AddCustom(c.Key, c.Value); err != nil {
				return fmt.Errorf("custom %q: %w", c.Key, err)
			}
		}
	}
	if rot.Exists() {
		s.SetRotation(r)
	}
	return nil
}

// Package prefs reads the editor's own preferences file (h2mcfg.ini).
package prefs

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/ini.v1"
)

// DefaultFile is the preferences file looked up in the working directory.
const DefaultFile = "h2mcfg.ini"

// Prefs are the editor preferences. Command-line flags override them.
type Prefs struct {
	ConfigPath      string `ini:"config" validate:"required"`
	MapsPath        string `ini:"maps" validate:"required"`
	DefaultGametype string `ini:"default_gametype" validate:"omitempty,oneof=dm war conf dom sd sab"`
	MaxRandom       int    `ini:"max_random" validate:"min=1,max=1000"`
	Schedule        string `ini:"schedule"`
	Watch           bool   `ini:"watch"`
	LogFile         string `ini:"log_file"`
}

// Default returns the built-in preferences.
func Default() Prefs {
	return Prefs{
		ConfigPath:      "server.cfg",
		MapsPath:        "maps.txt",
		DefaultGametype: "dom",
		MaxRandom:       54,
		Schedule:        "0 0 4 * * *",
		Watch:           true,
	}
}

var validate = validator.New()

// Validate checks field constraints.
func (p Prefs) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Prefs, error) {
	p := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return p, nil
	}

	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections:     true,
		InsensitiveKeys:         true,
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return p, fmt.Errorf("loading %s: %w", path, err)
	}

	paths := f.Section("paths")
	readString(paths, "config", &p.ConfigPath)
	readString(paths, "maps", &p.MapsPath)

	rot := f.Section("rotation")
	readString(rot, "default_gametype", &p.DefaultGametype)
	p.MaxRandom = rot.Key("max_random").MustInt(p.MaxRandom)
	readString(rot, "schedule", &p.Schedule)

	ed := f.Section("editor")
	p.Watch = ed.Key("watch").MustBool(p.Watch)
	readString(ed, "log_file", &p.LogFile)

	if err := p.Validate(); err != nil {
		return p, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// readString copies a key that is present, even when empty, so that an
// explicitly blank value is seen by validation.
func readString(sec *ini.Section, key string, dst *string) {
	if sec.HasKey(key) {
		*dst = sec.Key(key).String()
	}
}

// Save writes p to path.
func Save(path string, p Prefs) error {
	if err := p.Validate(); err != nil {
		return err
	}
	f := ini.Empty()
	paths := f.Section("paths")
	paths.Key("config").SetValue(p.ConfigPath)
	paths.Key("maps").SetValue(p.MapsPath)

	rot := f.Section("rotation")
	rot.Key("default_gametype").SetValue(p.DefaultGametype)
	rot.Key("max_random").SetValue(fmt.Sprint(p.MaxRandom))
	rot.Key("schedule").SetValue(p.Schedule)

	ed := f.Section("editor")
	ed.Key("watch").SetValue(fmt.Sprint(p.Watch))
	ed.Key("log_file").SetValue(p.LogFile)

	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

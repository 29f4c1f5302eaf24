// Package servercfg reads and writes the game server's server.cfg: a
// sequence of `set <key> "<value>"` lines following a fixed template, with
// free-form custom dvars appended after a sentinel comment.
package servercfg

import (
	"errors"
	"fmt"
	"strings"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

var (
	// ErrInvalidSetting reports a custom dvar without a name or value.
	ErrInvalidSetting = errors.New("invalid setting")
	// ErrUnknownSetting reports an operation on a key that is not present.
	ErrUnknownSetting = errors.New("unknown setting")
)

// Setting is a single key/value pair.
type Setting struct {
	Key   string
	Value string
}

// Document is the in-memory form of a server.cfg. Recognized settings are
// keyed; custom settings keep insertion order. A key lives in at most one of
// the two.
type Document struct {
	values map[string]string
	custom []Setting

	rot         rotation.Rotation
	rotRaw      string
	rotErr      error
	rotModified bool
}

// NewDocument returns a document seeded with the template defaults. The
// rotation starts empty; only a rotation value read from a file or set
// explicitly fills it.
func NewDocument() *Document {
	d := &Document{values: make(map[string]string, len(templateDefaults))}
	for k, v := range templateDefaults {
		d.values[k] = v
	}
	return d
}

// ValidateValue checks that value can be written inside a quoted set line.
func ValidateValue(key, value string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidSetting)
	}
	if strings.Contains(value, `"`) {
		return fmt.Errorf("%w: value for %s contains a quote", ErrInvalidSetting, key)
	}
	return nil
}

// ValidateCustom checks a custom dvar the way AddCustom does and returns
// the trimmed key and value.
func ValidateCustom(key, value string) (string, string, error) {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", fmt.Errorf("%w: name and value are required", ErrInvalidSetting)
	}
	if strings.ContainsAny(key, " \t\"") {
		return "", "", fmt.Errorf("%w: name %q contains whitespace or quotes", ErrInvalidSetting, key)
	}
	if err := ValidateValue(key, value); err != nil {
		return "", "", err
	}
	return key, value, nil
}

// Value returns the current value of key, looking at recognized settings
// first and then custom ones. The rotation key reflects the live rotation.
func (d *Document) Value(key string) (string, bool) {
	if key == RotationKey {
		if _, ok := d.values[key]; ok {
			return d.RotationString(), true
		}
	}
	if v, ok := d.values[key]; ok {
		return v, true
	}
	for _, s := range d.custom {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// SetValue stores a setting. Template keys are recognized settings; any
// other key is stored as a custom dvar so it is written on save. Setting the
// rotation key re-parses the rotation.
func (d *Document) SetValue(key, value string) error {
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	if !IsTemplateKey(key) {
		d.putCustom(key, value)
		return nil
	}
	d.removeCustom(key)
	d.values[key] = value
	if key == RotationKey {
		d.setRotationRaw(value)
		d.rotModified = d.rotErr == nil
	}
	return nil
}

// Values returns a copy of the recognized settings with the rotation key
// rendered from the live rotation.
func (d *Document) Values() map[string]string {
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	if _, ok := out[RotationKey]; ok {
		out[RotationKey] = d.RotationString()
	}
	return out
}

// Custom returns the custom settings in insertion order.
func (d *Document) Custom() []Setting {
	out := make([]Setting, len(d.custom))
	copy(out, d.custom)
	return out
}

// AddCustom adds a custom dvar, or overwrites it in place when the key
// already exists. Surrounding whitespace is trimmed; both parts are required.
// The rotation key is never custom: it replaces the rotation instead.
func (d *Document) AddCustom(key, value string) error {
	key, value, err := ValidateCustom(key, value)
	if err != nil {
		return err
	}
	if key == RotationKey {
		return d.SetValue(key, value)
	}
	d.putCustom(key, value)
	return nil
}

// EditCustom replaces the value of an existing custom dvar.
func (d *Document) EditCustom(key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return fmt.Errorf("%w: value is required", ErrInvalidSetting)
	}
	if err := ValidateValue(key, value); err != nil {
		return err
	}
	for i := range d.custom {
		if d.custom[i].Key == key {
			d.custom[i].Value = value
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
}

// RemoveCustom deletes a custom dvar.
func (d *Document) RemoveCustom(key string) error {
	if !d.removeCustom(key) {
		return fmt.Errorf("%w: %s", ErrUnknownSetting, key)
	}
	return nil
}

// Rotation returns the live rotation. Mutations through the returned pointer
// must be followed by MarkRotationModified.
func (d *Document) Rotation() *rotation.Rotation {
	return &d.rot
}

// MarkRotationModified records that the rotation was edited, so save writes
// it out even when the loaded rotation string could not be parsed.
func (d *Document) MarkRotationModified() {
	d.rotModified = true
}

// RotationErr returns the parse error of the loaded rotation string, if any.
func (d *Document) RotationErr() error {
	return d.rotErr
}

// RotationPreserved reports whether an unreadable rotation string is still
// being carried verbatim.
func (d *Document) RotationPreserved() bool {
	return d.rotErr != nil && !d.rotModified
}

// RotationString renders the rotation for the config file. A rotation that
// failed to parse and was never edited is written back verbatim.
func (d *Document) RotationString() string {
	if d.RotationPreserved() {
		return d.rotRaw
	}
	return d.rot.String()
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	c := &Document{
		values:      make(map[string]string, len(d.values)),
		custom:      d.Custom(),
		rot:         d.rot.Clone(),
		rotRaw:      d.rotRaw,
		rotErr:      d.rotErr,
		rotModified: d.rotModified,
	}
	for k, v := range d.values {
		c.values[k] = v
	}
	return c
}

func (d *Document) setRotationRaw(raw string) {
	d.rotRaw = raw
	r, err := rotation.Parse(raw)
	if err != nil {
		d.rot = nil
		d.rotErr = err
		return
	}
	d.rot = r
	d.rotErr = nil
}

func (d *Document) putCustom(key, value string) {
	delete(d.values, key)
	for i := range d.custom {
		if d.custom[i].Key == key {
			d.custom[i].Value = value
			return
		}
	}
	d.custom = append(d.custom, Setting{Key: key, Value: value})
}

func (d *Document) removeCustom(key string) bool {
	for i := range d.custom {
		if d.custom[i].Key == key {
			d.custom = append(d.custom[:i], d.custom[i+1:]...)
			return true
		}
	}
	return false
}

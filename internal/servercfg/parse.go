package servercfg

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/stlalpha/h2mcfg/internal/logging"
)

// setLineRe matches `set <key> "<value>"`; the quotes are optional.
var setLineRe = regexp.MustCompile(`^set\s+(\S+)\s+"?([^"]*)"?`)

// parseSetLine extracts key and value from a set line. seta lines, comments
// and blank lines are not set lines.
func parseSetLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "set ") {
		return "", "", false
	}
	m := setLineRe.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// Parse reads a server.cfg on top of the template defaults.
func Parse(r io.Reader) (*Document, error) {
	d := NewDocument()
	if err := d.Apply(r); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseString is Parse for in-memory text.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Apply overlays the settings read from r onto d. Lines after the sentinel
// are custom dvars, except the rotation key, which always feeds the
// rotation. A key that is not part of the template is always kept
// as a custom dvar so that it survives a save. The last occurrence of a key
// anywhere in the file wins.
func (d *Document) Apply(r io.Reader) error {
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	inCustom := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == Sentinel {
			inCustom = true
			continue
		}
		key, value, ok := parseSetLine(line)
		if !ok {
			continue
		}
		switch {
		case inCustom && key != RotationKey:
			d.putCustom(key, value)
		case !IsTemplateKey(key):
			logging.Debug("server.cfg line %d: %s is not a template key, kept as custom", lineNo, key)
			d.putCustom(key, value)
		default:
			d.removeCustom(key)
			d.values[key] = value
			if key == RotationKey {
				d.setRotationRaw(value)
				d.rotModified = false
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}
	return nil
}

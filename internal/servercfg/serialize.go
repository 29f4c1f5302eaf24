package servercfg

import (
	"fmt"
	"strings"
)

// Serialize renders d through the template: every template set line gets
// the document's current value, the rotation line gets the live rotation,
// and the custom dvars follow the sentinel. Lines are joined with "\n".
func Serialize(d *Document) string {
	lines := make([]string, 0, len(templateLines)+len(d.custom))
	for _, line := range templateLines {
		if strings.TrimSpace(line) == Sentinel {
			lines = append(lines, Sentinel)
			break
		}
		key, _, ok := parseSetLine(line)
		if !ok {
			lines = append(lines, line)
			continue
		}
		value, present := d.values[key]
		if !present {
			// Keep the template default.
			lines = append(lines, line)
			continue
		}
		if key == RotationKey {
			value = d.RotationString()
		}
		lines = append(lines, formatSet(key, value))
	}
	for _, s := range d.custom {
		lines = append(lines, formatSet(s.Key, s.Value))
	}
	return strings.Join(lines, "\n")
}

func formatSet(key, value string) string {
	return fmt.Sprintf("set %s \"%s\"", key, value)
}

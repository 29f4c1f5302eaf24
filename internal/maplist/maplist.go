// Package maplist loads the map reference listing (maps.txt) that pairs
// display names with the map codes used in sv_maprotation.
package maplist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/stlalpha/h2mcfg/internal/logging"
)

// headerSuffix marks a category header line, e.g. "FFA ROTATION LIST".
const headerSuffix = "ROTATION LIST"

// nameSeparator splits a detail line into display name and map code.
const nameSeparator = " - "

// ErrCatalogMissing is returned (wrapped) by Load when the listing file does
// not exist. The returned catalog is empty and usable.
var ErrCatalogMissing = errors.New("map catalog file not found")

// Entry is a single map in the catalog.
type Entry struct {
	Name string // display name, e.g. "Crash"
	Code string // engine code, e.g. "mp_crash"
}

// Catalog maps category names to their ordered map entries. Categories keep
// the order in which their headers appear in the file.
type Catalog struct {
	order   []string
	entries map[string][]Entry
}

// Load reads the catalog at path. A missing file yields an empty catalog and
// an error wrapping ErrCatalogMissing; callers treat it as a warning.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Catalog{entries: map[string][]Entry{}}, fmt.Errorf("%w: %s", ErrCatalogMissing, path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	logging.Debug("loaded %d maps in %d categories from %s", c.Len(), len(c.order), path)
	return c, nil
}

// Parse builds a catalog from the listing text. A byte order mark, if any, is
// honoured and removed. Lines that are neither headers nor "name - code"
// details are ignored.
func Parse(r io.Reader) (*Catalog, error) {
	c := &Catalog{entries: map[string][]Entry{}}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	sc := bufio.NewScanner(transform.NewReader(r, dec))

	current := ""
	haveCategory := false
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		switch {
		case strings.HasSuffix(line, headerSuffix):
			current, _, _ = strings.Cut(line, " ")
			haveCategory = true
			if _, seen := c.entries[current]; !seen {
				c.order = append(c.order, current)
			}
			// A repeated header starts the category over.
			c.entries[current] = nil
		case strings.Contains(line, nameSeparator):
			if !haveCategory {
				logging.Debug("maps line %d: entry before any category header, skipped", lineNo)
				continue
			}
			name, code, _ := strings.Cut(line, nameSeparator)
			c.entries[current] = append(c.entries[current], Entry{
				Name: strings.TrimSpace(name),
				Code: strings.TrimSpace(code),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return c, nil
}

// Categories returns category names in file order.
func (c *Catalog) Categories() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Maps returns the entries of one category, or nil if it is unknown.
func (c *Catalog) Maps(category string) []Entry {
	src := c.entries[category]
	if src == nil {
		return nil
	}
	out := make([]Entry, len(src))
	copy(out, src)
	return out
}

// All returns every entry of every category, categories in file order.
func (c *Catalog) All() []Entry {
	var out []Entry
	for _, cat := range c.order {
		out = append(out, c.entries[cat]...)
	}
	return out
}

// Len returns the total number of entries across all categories.
func (c *Catalog) Len() int {
	n := 0
	for _, cat := range c.order {
		n += len(c.entries[cat])
	}
	return n
}

// DisplayName returns the first display name whose code matches, searching
// categories in file order. Unknown codes are returned unchanged.
func (c *Catalog) DisplayName(code string) string {
	if c == nil {
		return code
	}
	for _, cat := range c.order {
		for _, e := range c.entries[cat] {
			if e.Code == code {
				return e.Name
			}
		}
	}
	return code
}

// Code looks up the code for a display name within one category.
func (c *Catalog) Code(category, name string) (string, bool) {
	for _, e := range c.entries[category] {
		if e.Name == name {
			return e.Code, true
		}
	}
	return "", false
}

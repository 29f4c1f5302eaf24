package maplist

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleMaps = `FFA ROTATION LIST
Farm - mp_farm
Bog - mp_bog

DLC ROTATION LIST
Crash - mp_crash
Winter Crash - mp_crash_snow
some note without separator
`

func TestParse_Categories(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleMaps))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cats := c.Categories()
	if len(cats) != 2 || cats[0] != "FFA" || cats[1] != "DLC" {
		t.Fatalf("unexpected categories: %v", cats)
	}
	ffa := c.Maps("FFA")
	if len(ffa) != 2 {
		t.Fatalf("expected 2 FFA maps, got %d", len(ffa))
	}
	if ffa[0] != (Entry{Name: "Farm", Code: "mp_farm"}) {
		t.Errorf("unexpected first entry: %+v", ffa[0])
	}
	if c.Len() != 4 {
		t.Errorf("expected 4 maps total, got %d", c.Len())
	}
}

func TestParse_SplitsOnFirstSeparator(t *testing.T) {
	c, err := Parse(strings.NewReader("X ROTATION LIST\nBog - Night - mp_bog_n\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := c.Maps("X")
	if len(got) != 1 || got[0].Name != "Bog" || got[0].Code != "Night - mp_bog_n" {
		t.Errorf("unexpected entry: %+v", got)
	}
}

func TestParse_EntryBeforeHeaderSkipped(t *testing.T) {
	c, err := Parse(strings.NewReader("Farm - mp_farm\nFFA ROTATION LIST\nBog - mp_bog\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 map, got %d", c.Len())
	}
}

func TestParse_StripsBOM(t *testing.T) {
	c, err := Parse(strings.NewReader("\ufeffFFA ROTATION LIST\nFarm - mp_farm\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cats := c.Categories(); len(cats) != 1 || cats[0] != "FFA" {
		t.Errorf("expected category FFA, got %q", cats)
	}
}

func TestParse_RepeatedHeaderRestarts(t *testing.T) {
	c, _ := Parse(strings.NewReader("A ROTATION LIST\nOne - mp_one\nA ROTATION LIST\nTwo - mp_two\n"))
	got := c.Maps("A")
	if len(got) != 1 || got[0].Code != "mp_two" {
		t.Errorf("expected only mp_two, got %+v", got)
	}
	if len(c.Categories()) != 1 {
		t.Errorf("category listed twice: %v", c.Categories())
	}
}

func TestDisplayName(t *testing.T) {
	c, _ := Parse(strings.NewReader(sampleMaps))
	tests := []struct {
		code, want string
	}{
		{"mp_farm", "Farm"},
		{"mp_crash_snow", "Winter Crash"},
		{"mp_unknown", "mp_unknown"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := c.DisplayName(tt.code); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}

	var nilCat *Catalog
	if got := nilCat.DisplayName("mp_farm"); got != "mp_farm" {
		t.Errorf("nil catalog DisplayName = %q", got)
	}
}

func TestCode(t *testing.T) {
	c, _ := Parse(strings.NewReader(sampleMaps))
	if code, ok := c.Code("DLC", "Crash"); !ok || code != "mp_crash" {
		t.Errorf("Code(DLC, Crash) = %q, %v", code, ok)
	}
	if _, ok := c.Code("FFA", "Crash"); ok {
		t.Error("expected Crash to be absent from FFA")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "maps.txt"))
	if !errors.Is(err, ErrCatalogMissing) {
		t.Fatalf("expected ErrCatalogMissing, got %v", err)
	}
	if c == nil || c.Len() != 0 || len(c.All()) != 0 {
		t.Errorf("expected empty catalog, got %+v", c)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.txt")
	if err := os.WriteFile(path, []byte(sampleMaps), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	all := c.All()
	if len(all) != 4 || all[2].Code != "mp_crash" {
		t.Errorf("unexpected flattened catalog: %+v", all)
	}
}

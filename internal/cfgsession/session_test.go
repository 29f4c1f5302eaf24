package cfgsession

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stlalpha/h2mcfg/internal/maplist"
	"github.com/stlalpha/h2mcfg/internal/rotation"
	"github.com/stlalpha/h2mcfg/internal/servercfg"
)

const testMaps = `FFA ROTATION LIST
Farm - mp_farm
Bog - mp_bog
DLC ROTATION LIST
Crash - mp_crash
Vacant - mp_vacant
`

// setupSession writes the given files into a temp dir and opens a session.
// An empty content string leaves the file absent.
func setupSession(t *testing.T, cfg, maps string) (*Session, string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "server.cfg")
	mapsPath := filepath.Join(dir, "maps.txt")
	if cfg != "" {
		if err := os.WriteFile(cfgPath, []byte(cfg), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if maps != "" {
		if err := os.WriteFile(mapsPath, []byte(maps), 0644); err != nil {
			t.Fatal(err)
		}
	}
	s, err := Open(Options{ConfigPath: cfgPath, MapsPath: mapsPath, Rand: rand.New(rand.NewPCG(3, 4))})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s, cfgPath
}

func TestOpen_MissingFiles(t *testing.T) {
	s, _ := setupSession(t, "", "")
	warns := s.Warnings()
	if len(warns) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warns)
	}
	if !errors.Is(warns[0], maplist.ErrCatalogMissing) {
		t.Errorf("first warning should be the catalog: %v", warns[0])
	}
	if !errors.Is(warns[1], ErrConfigMissing) {
		t.Errorf("second warning should be the config: %v", warns[1])
	}
	if s.Value("sv_maxclients") != "18" {
		t.Errorf("expected template default, got %q", s.Value("sv_maxclients"))
	}
	if len(s.Custom()) != 0 {
		t.Errorf("expected no custom dvars, got %v", s.Custom())
	}
	if s.Catalog().Len() != 0 {
		t.Error("expected empty catalog")
	}
	if s.MapCount() != 0 || s.Value(servercfg.RotationKey) != "" {
		t.Errorf("expected empty rotation, got %d maps %q", s.MapCount(), s.Value(servercfg.RotationKey))
	}
}

func TestOpen_NoRotationLine(t *testing.T) {
	s, _ := setupSession(t, `set sv_hostname "x"`, testMaps)
	if s.MapCount() != 0 {
		t.Errorf("expected empty rotation, got %v", s.Rotation())
	}
	if !strings.Contains(s.Serialize(), `set sv_maprotation ""`) {
		t.Error("empty rotation should be saved as an empty value")
	}
}

func TestOpen_RequiresPath(t *testing.T) {
	if _, err := Open(Options{}); err == nil {
		t.Error("expected error for empty config path")
	}
}

func TestOpen_MalformedRotationWarns(t *testing.T) {
	s, _ := setupSession(t, `set sv_maprotation "map mp_bog"`, testMaps)
	warns := s.Warnings()
	if len(warns) != 1 || !errors.Is(warns[0], rotation.ErrMalformedToken) {
		t.Fatalf("expected malformed rotation warning, got %v", warns)
	}
	if s.MapCount() != 0 {
		t.Errorf("expected empty rotation, got %d", s.MapCount())
	}
	if !s.RotationPreserved() {
		t.Error("unreadable rotation should be preserved")
	}
	if err := s.AddMap("dom", "mp_farm"); err != nil {
		t.Fatal(err)
	}
	if s.RotationPreserved() {
		t.Error("editing the rotation should replace the preserved value")
	}
}

func TestSaveAndReload(t *testing.T) {
	s, cfgPath := setupSession(t, "", testMaps)

	if err := s.SetValue("sv_hostname", "^1Server"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddCustom("my_custom", "1"); err != nil {
		t.Fatal(err)
	}
	if !s.Dirty() {
		t.Error("expected dirty session")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if s.Dirty() {
		t.Error("expected clean session after save")
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(string(data), servercfg.Sentinel+"\n"+`set my_custom "1"`) {
		t.Errorf("unexpected custom section:\n%s", data)
	}

	again, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatal(err)
	}
	if again.Value("sv_hostname") != "^1Server" || again.Value("my_custom") != "1" {
		t.Errorf("values lost on reload: %q %q", again.Value("sv_hostname"), again.Value("my_custom"))
	}

	entries, _ := os.ReadDir(filepath.Dir(cfgPath))
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file left behind: %s", e.Name())
		}
	}
}

func TestSave_FailureKeepsState(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "missing-dir", "server.cfg")
	s, err := Open(Options{ConfigPath: cfgPath})
	if err != nil {
		t.Fatal(err)
	}
	s.SetValue("sv_timeout", "99")
	if err := s.Save(); err == nil {
		t.Fatal("expected save into a missing directory to fail")
	}
	if !s.Dirty() || s.Value("sv_timeout") != "99" {
		t.Error("failed save must leave the session unchanged")
	}
}

func TestSetValue_NoChangeNotDirty(t *testing.T) {
	s, _ := setupSession(t, "", "")
	if err := s.SetValue("sv_timeout", "20"); err != nil {
		t.Fatal(err)
	}
	if s.Dirty() {
		t.Error("setting the current value should not dirty the session")
	}
}

func TestRotationOps(t *testing.T) {
	s, _ := setupSession(t, `set sv_maprotation "gametype dom map mp_farm map mp_bog"`, testMaps)

	if got := s.Rotation(); len(got) != 2 || got[1].Map != "mp_bog" {
		t.Fatalf("unexpected rotation: %v", got)
	}
	if s.DisplayName("mp_farm") != "Farm" || s.DisplayName("mp_x") != "mp_x" {
		t.Error("unexpected display names")
	}

	if err := s.AddMapByName("war", "DLC", "Crash"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddMapByName("war", "FFA", "Crash"); !errors.Is(err, rotation.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if err := s.AddMapByName("", "DLC", "Crash"); !errors.Is(err, rotation.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if got := s.Value(servercfg.RotationKey); got != "gametype dom map mp_farm map mp_bog gametype war map mp_crash" {
		t.Errorf("rotation value = %q", got)
	}

	idx, err := s.MoveMapUp(2)
	if err != nil || idx != 1 {
		t.Fatalf("MoveMapUp = %d, %v", idx, err)
	}
	idx, err = s.MoveMapDown(0)
	if err != nil || idx != 1 {
		t.Fatalf("MoveMapDown = %d, %v", idx, err)
	}
	want := rotation.Rotation{{Gametype: "war", Map: "mp_crash"}, {Gametype: "dom", Map: "mp_farm"}, {Gametype: "dom", Map: "mp_bog"}}
	got := s.Rotation()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rotation = %v, want %v", got, want)
		}
	}

	if err := s.RemoveMap(5); !errors.Is(err, rotation.ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if s.MapCount() != 3 {
		t.Errorf("failed remove changed the rotation: %d", s.MapCount())
	}
	if err := s.RemoveMap(0); err != nil {
		t.Fatal(err)
	}
	if s.MapCount() != 2 {
		t.Errorf("expected 2 maps, got %d", s.MapCount())
	}
}

func TestRandomize(t *testing.T) {
	s, _ := setupSession(t, "", testMaps)
	n, err := s.Randomize("sab", 200)
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || s.MapCount() != 4 {
		t.Fatalf("expected 4 maps, got n=%d count=%d", n, s.MapCount())
	}
	seen := map[string]bool{}
	for _, e := range s.Rotation() {
		if e.Gametype != "sab" || seen[e.Map] {
			t.Errorf("unexpected entry %v", e)
		}
		seen[e.Map] = true
	}
	if _, err := s.Randomize("sab", 0); !errors.Is(err, rotation.ErrInvalidSelection) {
		t.Errorf("expected ErrInvalidSelection, got %v", err)
	}
	if s.MapCount() != 4 {
		t.Error("failed randomize changed the rotation")
	}
}

func TestChangedOnDiskAndReload(t *testing.T) {
	s, cfgPath := setupSession(t, `set sv_timeout "30"`, "")
	changed, err := s.ChangedOnDisk()
	if err != nil || changed {
		t.Fatalf("fresh session reported change: %v %v", changed, err)
	}

	s.SetValue("sv_timeout", "45")
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if changed, _ := s.ChangedOnDisk(); changed {
		t.Error("own save reported as external change")
	}

	if err := os.WriteFile(cfgPath, []byte(`set sv_timeout "60"`), 0644); err != nil {
		t.Fatal(err)
	}
	if changed, _ := s.ChangedOnDisk(); !changed {
		t.Error("external write not detected")
	}
	s.SetValue("sv_timeout", "1")
	if err := s.Reload(); err != nil {
		t.Fatal(err)
	}
	if s.Value("sv_timeout") != "60" || s.Dirty() {
		t.Errorf("reload: value %q dirty %v", s.Value("sv_timeout"), s.Dirty())
	}
}

func TestCustomOps(t *testing.T) {
	s, _ := setupSession(t, "", "")
	if err := s.AddCustom("", "1"); !errors.Is(err, servercfg.ErrInvalidSetting) {
		t.Errorf("expected ErrInvalidSetting, got %v", err)
	}
	if s.Dirty() {
		t.Error("failed add dirtied the session")
	}
	s.AddCustom("a", "1")
	if err := s.EditCustom("a", "2"); err != nil {
		t.Fatal(err)
	}
	if s.Value("a") != "2" {
		t.Errorf("edit lost: %q", s.Value("a"))
	}
	if err := s.RemoveCustom("a"); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveCustom("a"); !errors.Is(err, servercfg.ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
}

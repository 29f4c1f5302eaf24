package servercfg

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

func TestNewDocument_TemplateDefaults(t *testing.T) {
	d := NewDocument()
	tests := map[string]string{
		"sv_hostname":      "CHANGE ME - COLORS --->",
		"g_password":       "",
		"g_log":            `logs\games_mp.log`,
		"sv_sayName":       "^7Server^7",
		"scr_sd_timelimit": "2.5",
		RotationKey:        "",
	}
	for k, want := range tests {
		got, ok := d.Value(k)
		if !ok || got != want {
			t.Errorf("Value(%q) = %q, %v; want %q", k, got, ok, want)
		}
	}
	if _, ok := d.Value("g_allowVote"); ok {
		t.Error("seta lines must not become settings")
	}
	if len(*d.Rotation()) != 0 {
		t.Errorf("rotation must start empty, got %v", *d.Rotation())
	}
}

func TestSerialize_DefaultsMatchTemplate(t *testing.T) {
	got := Serialize(NewDocument())
	want := strings.Replace(strings.TrimSuffix(DefaultTemplate, "\n"),
		`set sv_maprotation "gametype dom map mp_farm map mp_bog map mp_crash map mp_vacant"`,
		`set sv_maprotation ""`, 1)
	if got != want {
		t.Errorf("serializing defaults changed the template:\n%s", got)
	}
}

func TestParse_OverridesAndCustom(t *testing.T) {
	in := strings.Join([]string{
		"// my server",
		`set sv_hostname "^1Server"`,
		`set sv_maxclients 12`,
		`set sv_maprotation "gametype war map mp_crash gametype dom map mp_bog"`,
		`seta g_allowVote "0"`,
		Sentinel,
		`set my_custom "1"`,
		`set other "two words"`,
	}, "\r\n")

	d, err := ParseString(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := d.Value("sv_hostname"); v != "^1Server" {
		t.Errorf("sv_hostname = %q", v)
	}
	if v, _ := d.Value("sv_maxclients"); v != "12" {
		t.Errorf("unquoted value = %q", v)
	}
	if v, _ := d.Value("sv_timeout"); v != "20" {
		t.Errorf("untouched key lost its default: %q", v)
	}
	want := rotation.Rotation{{Gametype: "war", Map: "mp_crash"}, {Gametype: "dom", Map: "mp_bog"}}
	if !reflect.DeepEqual(*d.Rotation(), want) {
		t.Errorf("rotation = %v, want %v", *d.Rotation(), want)
	}
	custom := d.Custom()
	wantCustom := []Setting{{"my_custom", "1"}, {"other", "two words"}}
	if !reflect.DeepEqual(custom, wantCustom) {
		t.Errorf("custom = %v, want %v", custom, wantCustom)
	}
}

func TestParse_Disjoint(t *testing.T) {
	in := strings.Join([]string{
		`set sv_hostname "main"`,
		`set hand_added "x"`,
		Sentinel,
		`set sv_hostname "custom wins"`,
		`set extra "1"`,
	}, "\n")
	d, err := ParseString(in)
	if err != nil {
		t.Fatal(err)
	}
	values := d.Values()
	for _, s := range d.Custom() {
		if _, both := values[s.Key]; both {
			t.Errorf("key %q present in both namespaces", s.Key)
		}
	}
	if v, _ := d.Value("sv_hostname"); v != "custom wins" {
		t.Errorf("last occurrence should win, got %q", v)
	}
	if v, _ := d.Value("hand_added"); v != "x" {
		t.Errorf("non-template key lost: %q", v)
	}

	// The template line falls back to its default; the custom line carries
	// the value, so a reparse keeps it.
	out := Serialize(d)
	if !strings.Contains(out, `set sv_hostname "CHANGE ME - COLORS --->"`) {
		t.Errorf("expected template default for moved key:\n%s", out)
	}
	again, err := ParseString(out)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := again.Value("sv_hostname"); v != "custom wins" {
		t.Errorf("after round trip sv_hostname = %q", v)
	}
	if v, _ := again.Value("hand_added"); v != "x" {
		t.Errorf("after round trip hand_added = %q", v)
	}
}

func TestRoundTrip(t *testing.T) {
	d := NewDocument()
	d.SetValue("sv_hostname", "^5Round ^7Trip")
	d.SetValue("scr_dom_scorelimit", "250")
	d.SetValue("g_password", "")
	r := d.Rotation()
	*r = nil
	r.Append("sd", "mp_crash")
	r.Append("sd", "mp_bog")
	r.Append("dm", "mp_farm")
	d.MarkRotationModified()
	if err := d.AddCustom("sv_cheats", "0"); err != nil {
		t.Fatal(err)
	}

	again, err := ParseString(Serialize(d))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(again.Values(), d.Values()) {
		t.Errorf("values differ after round trip:\n%v\n%v", again.Values(), d.Values())
	}
	if !reflect.DeepEqual(again.Custom(), d.Custom()) {
		t.Errorf("custom differ after round trip: %v vs %v", again.Custom(), d.Custom())
	}
	if !reflect.DeepEqual(*again.Rotation(), *d.Rotation()) {
		t.Errorf("rotation differs: %v vs %v", *again.Rotation(), *d.Rotation())
	}
}

func TestSerialize_CustomSection(t *testing.T) {
	d := NewDocument()
	d.SetValue("sv_hostname", "^1Server")
	if err := d.AddCustom("my_custom", "1"); err != nil {
		t.Fatal(err)
	}
	out := Serialize(d)
	_, tail, found := strings.Cut(out, `set sv_maprotation`)
	if !found {
		t.Fatal("rotation line missing")
	}
	idx := strings.Index(tail, Sentinel)
	if idx < 0 {
		t.Fatal("sentinel missing")
	}
	want := Sentinel + "\n" + `set my_custom "1"`
	if got := tail[idx:]; got != want {
		t.Errorf("custom section = %q, want %q", got, want)
	}
	if !strings.Contains(out, "\nset sv_hostname \"^1Server\"\n") {
		t.Error("hostname not written")
	}
}

func TestMalformedRotationPreserved(t *testing.T) {
	raw := "map mp_farm gametype dom map mp_bog"
	d, err := ParseString(`set sv_maprotation "` + raw + `"`)
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(d.RotationErr(), rotation.ErrMalformedToken) {
		t.Fatalf("expected malformed rotation error, got %v", d.RotationErr())
	}
	if len(*d.Rotation()) != 0 {
		t.Errorf("expected empty rotation, got %v", *d.Rotation())
	}
	if !d.RotationPreserved() {
		t.Error("RotationPreserved should be true before any edit")
	}
	if !strings.Contains(Serialize(d), `set sv_maprotation "`+raw+`"`) {
		t.Error("unedited malformed rotation must be written back verbatim")
	}

	d.Rotation().Append("dom", "mp_crash")
	d.MarkRotationModified()
	if d.RotationPreserved() {
		t.Error("RotationPreserved should be false after an edit")
	}
	if !strings.Contains(Serialize(d), `set sv_maprotation "gametype dom map mp_crash"`) {
		t.Error("edited rotation must replace the malformed value")
	}
}

func TestParse_NoRotationLine(t *testing.T) {
	d, err := ParseString(`set sv_hostname "x"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(*d.Rotation()) != 0 {
		t.Errorf("expected empty rotation, got %v", *d.Rotation())
	}
	if !strings.Contains(Serialize(d), `set sv_maprotation ""`) {
		t.Error("empty rotation should be written as an empty value")
	}
}

func TestParse_RotationBelowSentinel(t *testing.T) {
	d, err := ParseString(Sentinel + "\n" + `set sv_maprotation "gametype war map mp_bog"` + "\n" + `set extra "1"`)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range d.Custom() {
		if c.Key == RotationKey {
			t.Fatal("rotation key must not be stored as a custom dvar")
		}
	}
	if want := (rotation.Rotation{{Gametype: "war", Map: "mp_bog"}}); !reflect.DeepEqual(*d.Rotation(), want) {
		t.Fatalf("rotation = %v, want %v", *d.Rotation(), want)
	}

	d.Rotation().Append("dom", "mp_crash")
	d.MarkRotationModified()
	again, err := ParseString(Serialize(d))
	if err != nil {
		t.Fatal(err)
	}
	if got := again.RotationString(); got != "gametype war map mp_bog gametype dom map mp_crash" {
		t.Errorf("rotation edit lost on save: %q", got)
	}

	if err := d.AddCustom(RotationKey, "gametype sd map mp_farm"); err != nil {
		t.Fatal(err)
	}
	if len(d.Custom()) != 1 || d.RotationString() != "gametype sd map mp_farm" {
		t.Errorf("adding the rotation key as custom: custom=%v rotation=%q", d.Custom(), d.RotationString())
	}
}

func TestQuotedValuesRejected(t *testing.T) {
	d := NewDocument()
	d.AddCustom("k", "plain")
	if err := d.AddCustom("k2", `a"b`); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("AddCustom: expected ErrInvalidSetting, got %v", err)
	}
	if err := d.EditCustom("k", `a"b`); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("EditCustom: expected ErrInvalidSetting, got %v", err)
	}
	if err := d.SetValue("sv_hostname", `say "hi"`); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("SetValue: expected ErrInvalidSetting, got %v", err)
	}
	if v, _ := d.Value("k"); v != "plain" {
		t.Errorf("rejected edit changed the value: %q", v)
	}
	if v, _ := d.Value("sv_hostname"); v != "CHANGE ME - COLORS --->" {
		t.Errorf("rejected set changed the value: %q", v)
	}
}

func TestCustomOps(t *testing.T) {
	d := NewDocument()
	if err := d.AddCustom("  a  ", " 1 "); err != nil {
		t.Fatal(err)
	}
	d.AddCustom("b", "2")
	d.AddCustom("a", "3")
	want := []Setting{{"a", "3"}, {"b", "2"}}
	if !reflect.DeepEqual(d.Custom(), want) {
		t.Errorf("custom = %v, want %v", d.Custom(), want)
	}

	for _, in := range [][2]string{{"", "1"}, {"x", " "}, {"has space", "1"}} {
		if err := d.AddCustom(in[0], in[1]); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("AddCustom(%q, %q): expected ErrInvalidSetting, got %v", in[0], in[1], err)
		}
	}

	if err := d.EditCustom("b", "20"); err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Value("b"); v != "20" {
		t.Errorf("edited value = %q", v)
	}
	if err := d.EditCustom("nope", "1"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
	if err := d.RemoveCustom("a"); err != nil {
		t.Fatal(err)
	}
	if err := d.RemoveCustom("a"); !errors.Is(err, ErrUnknownSetting) {
		t.Errorf("expected ErrUnknownSetting, got %v", err)
	}
	if len(d.Custom()) != 1 {
		t.Errorf("unexpected custom: %v", d.Custom())
	}
}

func TestAddCustomTemplateKey(t *testing.T) {
	d := NewDocument()
	if err := d.AddCustom("sv_timeout", "30"); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Values()["sv_timeout"]; ok {
		t.Error("key must leave the recognized namespace")
	}
	if err := d.SetValue("sv_timeout", "40"); err != nil {
		t.Fatal(err)
	}
	if len(d.Custom()) != 0 {
		t.Errorf("key must leave the custom namespace: %v", d.Custom())
	}
}

func TestSetValueRotation(t *testing.T) {
	d := NewDocument()
	if err := d.SetValue(RotationKey, "gametype sab map mp_crash"); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*d.Rotation(), rotation.Rotation{{Gametype: "sab", Map: "mp_crash"}}) {
		t.Errorf("rotation = %v", *d.Rotation())
	}
	if err := d.SetValue("", "x"); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	d := NewDocument()
	c := d.Clone()
	c.SetValue("sv_hostname", "changed")
	c.AddCustom("k", "v")
	c.Rotation().Append("dm", "mp_bog")
	if v, _ := d.Value("sv_hostname"); v == "changed" {
		t.Error("clone shares values")
	}
	if len(d.Custom()) != 0 || len(*d.Rotation()) != 0 {
		t.Error("clone shares custom or rotation")
	}
}

func TestApplyHostColor(t *testing.T) {
	tests := []struct {
		name, color, want string
	}{
		{"My Server", "Red", "^1My Server"},
		{"^3My ^5Server", "Blue", "^4My Server"},
		{"^1Server", "No Color", "Server"},
		{"Server", "Rainbow", "^:Server"},
		{"^2Server", "Mauve", "Server"},
	}
	for _, tt := range tests {
		if got := ApplyHostColor(tt.name, tt.color); got != tt.want {
			t.Errorf("ApplyHostColor(%q, %q) = %q, want %q", tt.name, tt.color, got, tt.want)
		}
	}
}

func TestFieldsAreTemplateKeys(t *testing.T) {
	for _, f := range GeneralFields {
		if !IsTemplateKey(f.Key) {
			t.Errorf("general field %s is not in the template", f.Key)
		}
	}
	for _, g := range rotation.Gametypes {
		fields := GametypeFields(g.Code)
		if len(fields) < 5 {
			t.Errorf("gametype %s has only %d fields", g.Code, len(fields))
		}
		for _, f := range fields {
			if !IsTemplateKey(f.Key) {
				t.Errorf("gametype field %s is not in the template", f.Key)
			}
		}
	}
}

func TestTemplateKeysOrder(t *testing.T) {
	keys := TemplateKeys()
	if keys[0] != "sv_hostname" || keys[len(keys)-1] != RotationKey {
		t.Errorf("unexpected key order: first %q last %q", keys[0], keys[len(keys)-1])
	}
}

func TestSetValueNonTemplateKey(t *testing.T) {
	d := NewDocument()
	if err := d.SetValue("sv_custom_thing", "5"); err != nil {
		t.Fatal(err)
	}
	if _, ok := d.Values()["sv_custom_thing"]; ok {
		t.Error("non-template key stored as recognized")
	}
	if !strings.HasSuffix(Serialize(d), `set sv_custom_thing "5"`) {
		t.Error("non-template key not written to the custom section")
	}
}

// Package cfgsession is the editing session over one server.cfg and its map
// catalog: it loads both files, exposes value, custom dvar and rotation
// operations, and saves the result atomically.
package cfgsession

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/stlalpha/h2mcfg/internal/logging"
	"github.com/stlalpha/h2mcfg/internal/maplist"
	"github.com/stlalpha/h2mcfg/internal/rotation"
	"github.com/stlalpha/h2mcfg/internal/servercfg"
)

// ErrConfigMissing is reported as a warning when the settings file does not
// exist yet; the session starts from the template defaults.
var ErrConfigMissing = errors.New("settings file not found")

// Options selects the files a session works on.
type Options struct {
	ConfigPath string     // server.cfg
	MapsPath   string     // maps.txt
	Rand       *rand.Rand // random source for Randomize; nil seeds from the clock
}

// Session owns the document and rotation for one editing run. It is not
// safe for concurrent use.
type Session struct {
	opts     Options
	doc      *servercfg.Document
	catalog  *maplist.Catalog
	rng      *rand.Rand
	warnings []error
	dirty    bool

	diskDigest [sha256.Size]byte // digest of the file as last loaded or saved
}

// Open loads the catalog and the settings file. Missing files and an
// unreadable rotation are recorded as warnings; only I/O failures abort.
func Open(opts Options) (*Session, error) {
	if opts.ConfigPath == "" {
		return nil, fmt.Errorf("config path is required")
	}
	rng := opts.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1|1))
	}
	s := &Session{opts: opts, rng: rng}

	cat, err := maplist.Load(opts.MapsPath)
	switch {
	case errors.Is(err, maplist.ErrCatalogMissing):
		s.warn(err)
	case err != nil:
		return nil, fmt.Errorf("loading map catalog: %w", err)
	}
	s.catalog = cat

	if err := s.loadDocument(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) loadDocument() error {
	data, err := os.ReadFile(s.opts.ConfigPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("reading %s: %w", s.opts.ConfigPath, err)
		}
		s.warn(fmt.Errorf("%w: %s (using defaults)", ErrConfigMissing, s.opts.ConfigPath))
		s.doc = servercfg.NewDocument()
		s.diskDigest = [sha256.Size]byte{}
		return nil
	}

	doc, err := servercfg.Parse(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.opts.ConfigPath, err)
	}
	if rerr := doc.RotationErr(); rerr != nil {
		s.warn(fmt.Errorf("%s: %w (kept unchanged until edited)", servercfg.RotationKey, rerr))
	}
	s.doc = doc
	s.diskDigest = sha256.Sum256(data)
	logging.Debug("loaded %s: %d settings, %d custom, %d maps in rotation",
		s.opts.ConfigPath, len(doc.Values()), len(doc.Custom()), len(*doc.Rotation()))
	return nil
}

func (s *Session) warn(err error) {
	log.Printf("WARN: %v", err)
	s.warnings = append(s.warnings, err)
}

// Warnings returns the non-fatal problems met while loading.
func (s *Session) Warnings() []error {
	out := make([]error, len(s.warnings))
	copy(out, s.warnings)
	return out
}

// Catalog returns the map catalog (possibly empty).
func (s *Session) Catalog() *maplist.Catalog { return s.catalog }

// ConfigPath returns the settings file path.
func (s *Session) ConfigPath() string { return s.opts.ConfigPath }

// Dirty reports unsaved changes.
func (s *Session) Dirty() bool { return s.dirty }

// Value returns the current value of key, or "" when it is unset.
func (s *Session) Value(key string) string {
	v, _ := s.doc.Value(key)
	return v
}

// SetValue stores a recognized setting.
func (s *Session) SetValue(key, value string) error {
	if cur, ok := s.doc.Value(key); ok && cur == value {
		return nil
	}
	if err := s.doc.SetValue(key, value); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Values returns a copy of all recognized settings.
func (s *Session) Values() map[string]string { return s.doc.Values() }

// Custom returns the custom dvars in order.
func (s *Session) Custom() []servercfg.Setting { return s.doc.Custom() }

// AddCustom adds or overwrites a custom dvar.
func (s *Session) AddCustom(key, value string) error {
	return s.mutate(func() error { return s.doc.AddCustom(key, value) })
}

// EditCustom changes the value of an existing custom dvar.
func (s *Session) EditCustom(key, value string) error {
	return s.mutate(func() error { return s.doc.EditCustom(key, value) })
}

// RemoveCustom deletes a custom dvar.
func (s *Session) RemoveCustom(key string) error {
	return s.mutate(func() error { return s.doc.RemoveCustom(key) })
}

func (s *Session) mutate(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	s.dirty = true
	return nil
}

// Serialize renders the current document as server.cfg text.
func (s *Session) Serialize() string {
	return servercfg.Serialize(s.doc)
}

// Document returns a copy of the current document.
func (s *Session) Document() *servercfg.Document { return s.doc.Clone() }

// Rotation returns a copy of the current rotation.
func (s *Session) Rotation() rotation.Rotation {
	return s.doc.Rotation().Clone()
}

// RotationPreserved reports whether the loaded rotation could not be read
// and is being kept verbatim until the rotation is edited.
func (s *Session) RotationPreserved() bool { return s.doc.RotationPreserved() }

// Save writes the document to the settings file through a temporary file
// and a rename, so a failed write leaves the old file intact. The session
// is unchanged on failure.
func (s *Session) Save() error {
	data := []byte(s.Serialize())
	if err := writeFileAtomic(s.opts.ConfigPath, data); err != nil {
		return err
	}
	s.diskDigest = sha256.Sum256(data)
	s.dirty = false
	log.Printf("INFO: saved %s (%d custom dvars, %d maps in rotation)",
		s.opts.ConfigPath, len(s.doc.Custom()), len(*s.doc.Rotation()))
	return nil
}

// Reload discards unsaved changes and re-reads the settings file.
func (s *Session) Reload() error {
	prev, prevDigest := s.doc, s.diskDigest
	if err := s.loadDocument(); err != nil {
		s.doc, s.diskDigest = prev, prevDigest
		return err
	}
	s.dirty = false
	return nil
}

// ChangedOnDisk reports whether the settings file differs from what this
// session last loaded or saved.
func (s *Session) ChangedOnDisk() (bool, error) {
	data, err := os.ReadFile(s.opts.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return s.diskDigest != [sha256.Size]byte{}, nil
		}
		return false, err
	}
	return sha256.Sum256(data) != s.diskDigest, nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmpPath := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), uuid.NewString()))
	f, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, mode)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp to %s: %w", path, err)
	}
	return nil
}

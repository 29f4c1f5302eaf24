package cfgsession

import (
	"fmt"

	"github.com/stlalpha/h2mcfg/internal/rotation"
)

// MapCount returns the number of entries in the rotation.
func (s *Session) MapCount() int { return len(*s.doc.Rotation()) }

// DisplayName resolves a map code to its catalog name, or returns the code.
func (s *Session) DisplayName(code string) string {
	return rotation.DisplayName(code, s.catalog)
}

// AddMap appends (gametype, code) to the rotation.
func (s *Session) AddMap(gametype, code string) error {
	return s.editRotation(func(r *rotation.Rotation) error {
		return r.Append(gametype, code)
	})
}

// AddMapByName appends the map named name from category.
func (s *Session) AddMapByName(gametype, category, name string) error {
	if gametype == "" || category == "" || name == "" {
		return fmt.Errorf("%w: select a gametype, map category and map", rotation.ErrInvalidSelection)
	}
	code, ok := s.catalog.Code(category, name)
	if !ok {
		return fmt.Errorf("%w: no map %q in category %q", rotation.ErrInvalidSelection, name, category)
	}
	return s.AddMap(gametype, code)
}

// RemoveMap deletes the rotation entry at idx.
func (s *Session) RemoveMap(idx int) error {
	return s.editRotation(func(r *rotation.Rotation) error {
		return r.RemoveAt(idx)
	})
}

// MoveMapUp moves the entry at idx one place earlier and returns its new
// index.
func (s *Session) MoveMapUp(idx int) (int, error) {
	var out int
	err := s.editRotation(func(r *rotation.Rotation) error {
		var err error
		out, err = r.MoveUp(idx)
		return err
	})
	return out, err
}

// MoveMapDown moves the entry at idx one place later and returns its new
// index.
func (s *Session) MoveMapDown(idx int) (int, error) {
	var out int
	err := s.editRotation(func(r *rotation.Rotation) error {
		var err error
		out, err = r.MoveDown(idx)
		return err
	})
	return out, err
}

// Randomize replaces the rotation with count random catalog maps, all
// played as gametype, and returns how many were added.
func (s *Session) Randomize(gametype string, count int) (int, error) {
	var n int
	err := s.editRotation(func(r *rotation.Rotation) error {
		var err error
		n, err = r.RandomizeFill(gametype, count, s.catalog, s.rng)
		return err
	})
	return n, err
}

// SetRotation replaces the whole rotation.
func (s *Session) SetRotation(r rotation.Rotation) {
	*s.doc.Rotation() = r.Clone()
	s.doc.MarkRotationModified()
	s.dirty = true
}

// editRotation applies fn to a copy of the rotation and commits it only on
// success, so failed operations leave the model untouched.
func (s *Session) editRotation(fn func(r *rotation.Rotation) error) error {
	work := s.doc.Rotation().Clone()
	if err := fn(&work); err != nil {
		return err
	}
	*s.doc.Rotation() = work
	s.doc.MarkRotationModified()
	s.dirty = true
	return nil
}

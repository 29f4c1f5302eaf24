package rotation

import (
	"fmt"
	"math/rand/v2"

	"github.com/stlalpha/h2mcfg/internal/maplist"
)

// Insert places a new entry at pos; a negative pos or one past the end
// appends.
func (r *Rotation) Insert(gametype, mapCode string, pos int) error {
	if gametype == "" || mapCode == "" {
		return fmt.Errorf("%w: gametype and map are required", ErrInvalidSelection)
	}
	e := Entry{Gametype: gametype, Map: mapCode}
	if pos < 0 || pos >= len(*r) {
		*r = append(*r, e)
		return nil
	}
	*r = append(*r, Entry{})
	copy((*r)[pos+1:], (*r)[pos:])
	(*r)[pos] = e
	return nil
}

// Append adds an entry at the end.
func (r *Rotation) Append(gametype, mapCode string) error {
	return r.Insert(gametype, mapCode, -1)
}

// RemoveAt deletes the entry at idx.
func (r *Rotation) RemoveAt(idx int) error {
	if idx < 0 || idx >= len(*r) {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(*r))
	}
	*r = append((*r)[:idx], (*r)[idx+1:]...)
	return nil
}

// MoveUp swaps the entry at idx with its predecessor and returns the entry's
// new index. The first entry stays put.
func (r Rotation) MoveUp(idx int) (int, error) {
	if idx < 0 || idx >= len(r) {
		return idx, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(r))
	}
	if idx == 0 {
		return 0, nil
	}
	r[idx], r[idx-1] = r[idx-1], r[idx]
	return idx - 1, nil
}

// MoveDown swaps the entry at idx with its successor and returns the entry's
// new index. The last entry stays put.
func (r Rotation) MoveDown(idx int) (int, error) {
	if idx < 0 || idx >= len(r) {
		return idx, fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, idx, len(r))
	}
	if idx == len(r)-1 {
		return idx, nil
	}
	r[idx], r[idx+1] = r[idx+1], r[idx]
	return idx + 1, nil
}

// RandomizeFill replaces the rotation with up to count distinct maps drawn
// without replacement from every category of cat, all using gametype, in
// draw order. count is clamped to the catalog size. A nil rng uses the
// global source. It returns the number of entries written.
func (r *Rotation) RandomizeFill(gametype string, count int, cat *maplist.Catalog, rng *rand.Rand) (int, error) {
	if gametype == "" {
		return 0, fmt.Errorf("%w: gametype is required", ErrInvalidSelection)
	}
	if count < 1 {
		return 0, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidSelection, count)
	}
	var pool []maplist.Entry
	if cat != nil {
		pool = cat.All()
	}
	n := min(count, len(pool))

	perm := rand.Perm
	if rng != nil {
		perm = rng.Perm
	}
	out := make(Rotation, 0, n)
	for _, i := range perm(len(pool))[:n] {
		out = append(out, Entry{Gametype: gametype, Map: pool[i].Code})
	}
	*r = out
	return n, nil
}

// DisplayName resolves a map code through the catalog, falling back to the
// code itself.
func DisplayName(code string, cat *maplist.Catalog) string {
	return cat.DisplayName(code)
}

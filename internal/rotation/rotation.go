// Package rotation models the sv_maprotation play order: an ordered list of
// (gametype, map code) pairs, its token-stream text form, and the editing
// operations the editor offers on it.
package rotation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMalformedToken reports a rotation string that cannot be read
	// without inventing data (a map before any gametype, or a keyword
	// missing its value).
	ErrMalformedToken = errors.New("malformed rotation token")
	// ErrInvalidSelection reports an operation attempted without its
	// required inputs.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrIndexOutOfRange reports an operation on a position that does
	// not exist.
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Entry is one step of the rotation.
type Entry struct {
	Gametype string
	Map      string
}

// Rotation is the play order. Duplicates are allowed.
type Rotation []Entry

// ParseError locates a malformed token within a rotation string.
type ParseError struct {
	Index int    // position of the offending token
	Token string // the offending token
	Msg   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("rotation token %d (%q): %s", e.Index, e.Token, e.Msg)
}

// Unwrap lets errors.Is match ErrMalformedToken.
func (e *ParseError) Unwrap() error { return ErrMalformedToken }

// Parse reads a rotation string such as
// "gametype dom map mp_farm map mp_bog gametype war map mp_crash".
// A gametype stays in effect until the next gametype keyword. Unknown tokens
// are skipped. On a malformed stream Parse returns nil and a *ParseError.
func Parse(s string) (Rotation, error) {
	tokens := strings.Fields(s)
	var (
		r        Rotation
		gametype string
	)
	for i := 0; i < len(tokens); i++ {
		switch tokens[i] {
		case "gametype":
			if i+1 >= len(tokens) {
				return nil, &ParseError{Index: i, Token: tokens[i], Msg: "gametype without a value"}
			}
			gametype = tokens[i+1]
			i++
		case "map":
			if i+1 >= len(tokens) {
				return nil, &ParseError{Index: i, Token: tokens[i], Msg: "map without a value"}
			}
			if gametype == "" {
				return nil, &ParseError{Index: i, Token: tokens[i+1], Msg: "map before any gametype"}
			}
			r = append(r, Entry{Gametype: gametype, Map: tokens[i+1]})
			i++
		}
	}
	return r, nil
}

// String renders the rotation, emitting a gametype keyword only when the
// gametype changes from the previous entry.
func (r Rotation) String() string {
	parts := make([]string, 0, len(r)*3)
	current := ""
	for i, e := range r {
		if i == 0 || e.Gametype != current {
			parts = append(parts, "gametype", e.Gametype)
			current = e.Gametype
		}
		parts = append(parts, "map", e.Map)
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy.
func (r Rotation) Clone() Rotation {
	if r == nil {
		return nil
	}
	out := make(Rotation, len(r))
	copy(out, r)
	return out
}

// Package rng provides the deterministic random sources the replay engine
// is built on. Every draw is a pure function of the generator state, and
// the full state can be exported to an opaque string and restored later,
// which is what lets a recorded command be re-executed with the exact
// randomness it saw the first time.
package rng

import "errors"

var (
	// ErrEmptyCollection is returned when picking from an empty list.
	ErrEmptyCollection = errors.New("rng: cannot pick from empty collection")

	// ErrMalformedDiceNotation is returned for dice strings that do not
	// match NdS[+M|-M].
	ErrMalformedDiceNotation = errors.New("rng: malformed dice notation")

	// ErrMalformedState is returned when RestoreState cannot parse the
	// given state string.
	ErrMalformedState = errors.New("rng: malformed state string")
)

// Source is the capability contract shared by the production generator
// and the scripted test generator.
type Source interface {
	// NextInt returns an integer in [min, max] inclusive.
	NextInt(min, max int) int

	// Roll evaluates dice notation like "2d6+1".
	Roll(notation string) (int, error)

	// Chance returns true with long-run frequency p.
	// p=1.0 always returns true, p=0.0 always returns false.
	Chance(p float64) bool

	// ExportState returns an opaque encoding of the full generator state.
	ExportState() string

	// RestoreState rewinds the generator so that future draws repeat the
	// draws that followed the matching ExportState call.
	RestoreState(state string) error
}

// Pick returns one random element of items.
func Pick[T any](src Source, items []T) (T, error) {
	var zero T
	if len(items) == 0 {
		return zero, ErrEmptyCollection
	}
	return items[src.NextInt(0, len(items)-1)], nil
}

// Shuffle returns a new uniformly shuffled copy of items (Fisher-Yates).
// The input slice is never mutated.
func Shuffle[T any](src Source, items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	for i := len(out) - 1; i > 0; i-- {
		j := src.NextInt(0, i)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

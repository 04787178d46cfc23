package rng

import (
	"encoding/json"
	"fmt"
)

// Scripted is a test-only source that replays a fixed list of values
// instead of computing them. Drawing past the end of the list panics:
// that is a fixture authoring bug, not a runtime condition to recover
// from, and it should fail the test loudly.
type Scripted struct {
	values []int
	cursor int
}

// NewScripted creates a scripted source over the given values.
func NewScripted(values ...int) *Scripted {
	return &Scripted{values: values}
}

type scriptedState struct {
	Cursor int   `json:"cursor"`
	Values []int `json:"values"`
}

func (s *Scripted) next() int {
	if s.cursor >= len(s.values) {
		panic(fmt.Sprintf("rng: scripted source exhausted after %d draws (fixture needs more values)", len(s.values)))
	}
	v := s.values[s.cursor]
	s.cursor++
	return v
}

// NextInt consumes one scripted value, clamped into [min, max].
func (s *Scripted) NextInt(min, max int) int {
	if max < min {
		min, max = max, min
	}
	v := s.next()
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// Roll evaluates dice notation, consuming one scripted value per die.
func (s *Scripted) Roll(notation string) (int, error) {
	return rollDice(s, notation)
}

// Chance consumes one scripted value and treats non-zero as success.
// The guaranteed boundaries consume nothing, matching LCG.
func (s *Scripted) Chance(p float64) bool {
	if p >= 1.0 {
		return true
	}
	if p <= 0.0 {
		return false
	}
	return s.next() != 0
}

// ExportState serialises the cursor and remaining script.
func (s *Scripted) ExportState() string {
	b, err := json.Marshal(scriptedState{Cursor: s.cursor, Values: s.values})
	if err != nil {
		panic("rng: failed to export scripted state: " + err.Error())
	}
	return string(b)
}

// RestoreState replaces cursor and values from an exported state.
func (s *Scripted) RestoreState(state string) error {
	var st scriptedState
	if err := json.Unmarshal([]byte(state), &st); err != nil {
		return fmt.Errorf("%w: %q", ErrMalformedState, state)
	}
	s.cursor = st.Cursor
	s.values = st.Values
	return nil
}

// Reset replaces the value list and rewinds the cursor to zero.
func (s *Scripted) Reset(values ...int) {
	s.values = values
	s.cursor = 0
}

// Remaining reports how many scripted values are left to draw.
func (s *Scripted) Remaining() int {
	return len(s.values) - s.cursor
}

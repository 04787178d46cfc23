package rng

import (
	"fmt"
	"regexp"
	"strconv"
)

// Dice notation: NdS with an optional signed flat modifier, e.g. "1d20", "2d6+3".
var diceRe = regexp.MustCompile(`^(\d+)d(\d+)([+-]\d+)?$`)

type intSource interface {
	NextInt(min, max int) int
}

// rollDice parses and evaluates dice notation against the given source.
// Shared by both generator kinds so they agree on draw order: one NextInt
// call per die, modifier applied last.
func rollDice(src intSource, notation string) (int, error) {
	m := diceRe.FindStringSubmatch(notation)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDiceNotation, notation)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDiceNotation, notation)
	}
	sides, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDiceNotation, notation)
	}
	if count < 1 || sides < 1 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedDiceNotation, notation)
	}

	modifier := 0
	if m[3] != "" {
		modifier, err = strconv.Atoi(m[3])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrMalformedDiceNotation, notation)
		}
	}

	total := modifier
	for i := 0; i < count; i++ {
		total += src.NextInt(1, sides)
	}
	return total, nil
}

// apps/go-solver/internal/solver/constraints.go
//
// Constraint tracking for one solving session.
// Three accumulators are kept:
//   - Absent:  letters confirmed absent from the solution.
//   - Present: letter → positions where it was marked present (so it is in the
//              word, but not at any of those positions).
//   - Correct: position → letter confirmed exactly there.
//
// Correct is keyed by position, so one letter may be recorded as correct at
// several positions (repeated letters). Letter multiplicity is not tracked.

package solver

import (
	"sort"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// Constraints accumulates what a session has learned about the solution.
type Constraints struct {
	Absent  map[byte]struct{}
	Present map[byte]map[int]struct{}
	Correct map[int]byte
}

// NewConstraints returns empty constraints.
func NewConstraints() *Constraints {
	c := &Constraints{}
	c.Reset()
	return c
}

// Reset clears every accumulator, for the start of a new session.
func (c *Constraints) Reset() {
	c.Absent = make(map[byte]struct{})
	c.Present = make(map[byte]map[int]struct{})
	c.Correct = make(map[int]byte)
}

// Absorb folds one row of feedback into the accumulators.
//
// Per clue, in board order:
//   - Correct → Correct[pos] = letter.
//   - Present → pos is added to Present[letter].
//   - Absent  → letter is added to Absent unless it is already a Present key
//     or a Correct value.
//
// Absorbing the same row twice leaves the state unchanged.
func (c *Constraints) Absorb(row feedback.Row) {
	for _, clue := range row {
		switch clue.Judgment {
		case feedback.Correct:
			c.Correct[clue.Position] = clue.Letter
		case feedback.Present:
			set, ok := c.Present[clue.Letter]
			if !ok {
				set = make(map[int]struct{})
				c.Present[clue.Letter] = set
			}
			set[clue.Position] = struct{}{}
		case feedback.Absent:
			if c.known(clue.Letter) {
				continue
			}
			c.Absent[clue.Letter] = struct{}{}
		}
	}
}

// known reports whether letter is confirmed in the solution by a Present or
// Correct fact.
func (c *Constraints) known(letter byte) bool {
	if _, ok := c.Present[letter]; ok {
		return true
	}
	for _, l := range c.Correct {
		if l == letter {
			return true
		}
	}
	return false
}

// AbsentLetters returns the absent letters in alphabetical order.
func (c *Constraints) AbsentLetters() string {
	b := make([]byte, 0, len(c.Absent))
	for l := range c.Absent {
		b = append(b, l)
	}
	sort.Slice(b, func(i, j int) bool { return b[i] < b[j] })
	return string(b)
}

// Pattern renders the Correct facts over width columns, '_' for unknown.
func (c *Constraints) Pattern(width int) string {
	b := make([]byte, width)
	for i := range b {
		b[i] = '_'
		if l, ok := c.Correct[i]; ok {
			b[i] = l
		}
	}
	return string(b)
}

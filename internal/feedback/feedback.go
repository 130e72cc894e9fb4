// apps/go-solver/internal/feedback/feedback.go
//
// Value types for per-letter game feedback.
// Defines:
//   - Judgment: evaluation of one tile (correct/present/absent).
//   - Clue:     one letter's judgment at one board position.
//   - Row:      the clues of one guessed word, left to right.
//   - Board:    every accepted row of a game, top to bottom.
//
// Letters are stored as uppercase ASCII bytes. A judgment only has meaning
// inside the row it came from: with repeated letters, Absent for one tile does
// not rule the letter out if another tile of the same row marks it.

package feedback

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Judgment is the evaluation of a single tile.
// Values match the "evaluation" attribute used by web game boards.
type Judgment string

const (
	Correct Judgment = "correct"
	Present Judgment = "present"
	Absent  Judgment = "absent"
)

// ParseJudgment converts a surface attribute value into a Judgment.
func ParseJudgment(s string) (Judgment, error) {
	switch j := Judgment(strings.ToLower(strings.TrimSpace(s))); j {
	case Correct, Present, Absent:
		return j, nil
	default:
		return "", fmt.Errorf("feedback: unknown judgment %q", s)
	}
}

// Clue is one tile of a row.
type Clue struct {
	Position int      // 0-based column
	Letter   byte     // uppercase A–Z
	Judgment Judgment // tile evaluation
}

// NewClue builds a clue, upper-casing the letter.
func NewClue(pos int, letter byte, j Judgment) Clue {
	if letter >= 'a' && letter <= 'z' {
		letter -= 'a' - 'A'
	}
	return Clue{Position: pos, Letter: letter, Judgment: j}
}

type clueJSON struct {
	Position int      `json:"position"`
	Letter   string   `json:"letter"`
	Judgment Judgment `json:"judgment"`
}

// MarshalJSON encodes the letter as a one-character string.
func (c Clue) MarshalJSON() ([]byte, error) {
	return json.Marshal(clueJSON{Position: c.Position, Letter: string(c.Letter), Judgment: c.Judgment})
}

// UnmarshalJSON decodes the form written by MarshalJSON.
func (c *Clue) UnmarshalJSON(b []byte) error {
	var v clueJSON
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if len(v.Letter) != 1 {
		return fmt.Errorf("feedback: letter %q is not one character", v.Letter)
	}
	j, err := ParseJudgment(string(v.Judgment))
	if err != nil {
		return err
	}
	*c = NewClue(v.Position, v.Letter[0], j)
	return nil
}

func (c Clue) String() string {
	return fmt.Sprintf("%c:%s@%d", c.Letter, c.Judgment, c.Position)
}

// Row is the feedback for one guessed word, in board order.
type Row []Clue

// Word returns the guessed letters of the row.
func (r Row) Word() string {
	b := make([]byte, len(r))
	for i, c := range r {
		b[i] = c.Letter
	}
	return string(b)
}

// Solved reports whether every clue in a non-empty row is Correct.
func (r Row) Solved() bool {
	if len(r) == 0 {
		return false
	}
	for _, c := range r {
		if c.Judgment != Correct {
			return false
		}
	}
	return true
}

// Validate checks the row has exactly width clues with positions 0..width-1
// in order and uppercase letters.
func (r Row) Validate(width int) error {
	if len(r) != width {
		return fmt.Errorf("feedback: row has %d clues, want %d", len(r), width)
	}
	for i, c := range r {
		if c.Position != i {
			return fmt.Errorf("feedback: clue %d has position %d", i, c.Position)
		}
		if c.Letter < 'A' || c.Letter > 'Z' {
			return fmt.Errorf("feedback: clue %d has letter %q", i, c.Letter)
		}
		switch c.Judgment {
		case Correct, Present, Absent:
		default:
			return fmt.Errorf("feedback: clue %d has judgment %q", i, c.Judgment)
		}
	}
	return nil
}

// Board holds the accepted rows of one game.
type Board []Row

// Last returns the most recent row, or nil for an empty board.
func (b Board) Last() Row {
	if len(b) == 0 {
		return nil
	}
	return b[len(b)-1]
}

// Solved reports whether the most recent row is all Correct.
func (b Board) Solved() bool { return b.Last().Solved() }

// Clone returns a deep copy of the board.
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	for i, r := range b {
		out[i] = append(Row(nil), r...)
	}
	return out
}

package game

import (
	"errors"
	"testing"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

func judgments(r feedback.Row) string {
	b := make([]byte, len(r))
	for i, c := range r {
		switch c.Judgment {
		case feedback.Correct:
			b[i] = 'G'
		case feedback.Present:
			b[i] = 'Y'
		default:
			b[i] = '.'
		}
	}
	return string(b)
}

func TestScore(t *testing.T) {
	tests := []struct {
		answer, guess, want string
	}{
		{"CRANE", "CRANE", "GGGGG"},
		{"SLATE", "CRANE", "..G.G"},
		{"TRACE", "CRANE", "YGG.G"},
		// ABBEY has a single E, so only the first E of the guess is marked.
		{"ABBEY", "EERIE", "Y...."},
		{"LLAMA", "HELLO", "..YY."},
		{"ROBOT", "FLOOR", "..YGY"},
	}
	for _, tt := range tests {
		got := judgments(Score(tt.answer, tt.guess))
		if got != tt.want {
			t.Errorf("Score(%s, %s) = %s, want %s", tt.answer, tt.guess, got, tt.want)
		}
	}
}

func TestScorePositions(t *testing.T) {
	row := Score("CRANE", "SLATE")
	if err := row.Validate(5); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if row.Word() != "SLATE" {
		t.Errorf("expected SLATE, got %s", row.Word())
	}
}

func TestApplyGuessWin(t *testing.T) {
	g := New("crane")
	if g.Answer != "CRANE" {
		t.Fatalf("expected uppercase answer, got %q", g.Answer)
	}
	_, st, err := g.ApplyGuess("slate", nil)
	if err != nil || st != StateRunning {
		t.Fatalf("first guess: state %s err %v", st, err)
	}
	_, st, err = g.ApplyGuess("CRANE", nil)
	if err != nil {
		t.Fatalf("second guess: %v", err)
	}
	if st != StateWin || !g.Won || !g.Finished {
		t.Errorf("expected win, got %s", st)
	}
	if _, _, err := g.ApplyGuess("CRANE", nil); !errors.Is(err, ErrFinished) {
		t.Errorf("expected ErrFinished, got %v", err)
	}
}

func TestApplyGuessLoss(t *testing.T) {
	g := New("CRANE")
	for i := 0; i < DefaultRows; i++ {
		if _, _, err := g.ApplyGuess("SLATE", nil); err != nil {
			t.Fatalf("guess %d: %v", i, err)
		}
	}
	if g.State() != StateLost {
		t.Errorf("expected lost, got %s", g.State())
	}
	if len(g.Board) != DefaultRows {
		t.Errorf("expected %d rows, got %d", DefaultRows, len(g.Board))
	}
}

func TestApplyGuessRejected(t *testing.T) {
	g := New("CRANE")
	allowed := func(w string) bool { return w == "SLATE" }

	if _, _, err := g.ApplyGuess("XXXXX", allowed); !errors.Is(err, ErrNotAllowed) {
		t.Errorf("expected ErrNotAllowed, got %v", err)
	}
	if _, _, err := g.ApplyGuess("TOOLONG", allowed); !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("expected ErrInvalidGuess, got %v", err)
	}
	if _, _, err := g.ApplyGuess("AB1DE", nil); !errors.Is(err, ErrInvalidGuess) {
		t.Errorf("expected ErrInvalidGuess for digits, got %v", err)
	}
	if len(g.Board) != 0 {
		t.Errorf("rejected guesses must not add rows, got %d", len(g.Board))
	}
}

package solver

import (
	"strings"
)

// Filter returns the candidates consistent with c. The input slice is not
// modified.
//
// Passes, in order:
//  1. Absent letters that are not also Present keys or Correct values drop any
//     word containing them.
//  2. Each Present letter must appear in the word, and not at any recorded
//     position.
//  3. Each Correct position must hold its letter.
//
// Filter is sound when every recorded fact is true of the solution: it never
// drops the solution. It does not enforce letter counts, so it is not
// complete for words with repeated letters.
func Filter(candidates []string, c *Constraints) []string {
	out := append([]string(nil), candidates...)

	for letter := range c.Absent {
		if c.known(letter) {
			continue
		}
		out = keep(out, func(w string) bool {
			return strings.IndexByte(w, letter) < 0
		})
	}

	for letter, excluded := range c.Present {
		out = keep(out, func(w string) bool {
			if strings.IndexByte(w, letter) < 0 {
				return false
			}
			for pos := range excluded {
				if pos < len(w) && w[pos] == letter {
					return false
				}
			}
			return true
		})
	}

	for pos, letter := range c.Correct {
		out = keep(out, func(w string) bool {
			return pos < len(w) && w[pos] == letter
		})
	}
	return out
}

// keep filters words in place, preserving order.
func keep(words []string, pred func(string) bool) []string {
	n := 0
	for _, w := range words {
		if pred(w) {
			words[n] = w
			n++
		}
	}
	return words[:n]
}

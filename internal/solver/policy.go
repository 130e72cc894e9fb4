// apps/go-solver/internal/solver/policy.go
//
// Guess selection.
//   - Rounds below len(openers) play the scripted opener for that round,
//     regardless of the live candidates.
//   - Later rounds draw uniformly from the remaining candidates.
//
// Every word handed out is removed from the candidate store and remembered
// until Reset, so nothing is guessed twice in one session.

package solver

import (
	"errors"
	"math/rand/v2"
	"strings"
)

// DefaultOpeners cover every letter except Q and X across six rounds.
var DefaultOpeners = []string{"SLATE", "BRICK", "JUMPY", "VOZHD", "FUNGI", "WRECK"}

// ErrNoCandidates is returned when no candidate is left to guess.
var ErrNoCandidates = errors.New("no candidates left")

// Kind tags how a guess was chosen.
type Kind string

const (
	Scripted Kind = "scripted"
	Random   Kind = "random"
)

// Guess is a chosen word and the rule that produced it.
type Guess struct {
	Word string
	Kind Kind
}

// Policy picks guesses for a session.
type Policy struct {
	openers []string
	rng     *rand.Rand
	used    map[string]struct{}
}

// NewPolicy builds a policy from the opener list and a random source.
// Openers are upper-cased and deduplicated, keeping first occurrence.
func NewPolicy(openers []string, src rand.Source) *Policy {
	seen := make(map[string]struct{}, len(openers))
	var list []string
	for _, o := range openers {
		o = strings.ToUpper(strings.TrimSpace(o))
		if o == "" {
			continue
		}
		if _, dup := seen[o]; dup {
			continue
		}
		seen[o] = struct{}{}
		list = append(list, o)
	}
	return &Policy{openers: list, rng: rand.New(src), used: make(map[string]struct{})}
}

// Openers returns the scripted opener sequence.
func (p *Policy) Openers() []string { return append([]string(nil), p.openers...) }

// Reset forgets the words handed out in the previous session.
func (p *Policy) Reset() { p.used = make(map[string]struct{}) }

// Select returns the guess for round (0-based) and removes it from store.
// A scripted opener already used this session falls through to Random.
func (p *Policy) Select(round int, store *CandidateStore) (Guess, error) {
	if round >= 0 && round < len(p.openers) {
		w := p.openers[round]
		if _, done := p.used[w]; !done {
			p.take(w, store)
			return Guess{Word: w, Kind: Scripted}, nil
		}
	}
	return p.Random(store)
}

// Random draws a candidate uniformly from store and removes it.
func (p *Policy) Random(store *CandidateStore) (Guess, error) {
	for store.Len() > 0 {
		w := store.At(p.rng.IntN(store.Len()))
		if _, done := p.used[w]; done {
			store.Remove(w)
			continue
		}
		p.take(w, store)
		return Guess{Word: w, Kind: Random}, nil
	}
	return Guess{}, ErrNoCandidates
}

func (p *Policy) take(w string, store *CandidateStore) {
	p.used[w] = struct{}{}
	store.Remove(w)
}
